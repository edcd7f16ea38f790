package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/deepmodak79/AskMate/internal/models"
	"github.com/deepmodak79/AskMate/internal/notify"
	"github.com/deepmodak79/AskMate/internal/service"
)

// Handler combines all handler types
type Handler struct {
	Auth     *AuthHandler
	Question *QuestionHandler
	Answer   *AnswerHandler
	Comment  *CommentHandler
	User     *UserHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(db *gorm.DB, log *logrus.Logger) *Handler {
	notifier := notify.New(log)

	votes := service.NewVoteService(db, log)
	questions := service.NewQuestionService(db, log)
	answers := service.NewAnswerService(db, log, notifier)
	comments := service.NewCommentService(db, log)

	return &Handler{
		Auth:     NewAuthHandler(db, log),
		Question: NewQuestionHandler(db, questions, votes),
		Answer:   NewAnswerHandler(db, answers, votes),
		Comment:  NewCommentHandler(db, comments, votes),
		User:     NewUserHandler(db),
	}
}

// actorFrom builds the service-level caller identity from what the auth
// middleware stored on the context. Anonymous requests yield a zero Actor.
func actorFrom(c *gin.Context) service.Actor {
	raw, exists := c.Get("user_id")
	if !exists {
		return service.Actor{}
	}
	userID, ok := raw.(int)
	if !ok {
		return service.Actor{}
	}

	role := models.RoleUser
	if r, ok := c.Get("role"); ok {
		if s, ok := r.(string); ok && s != "" {
			role = models.Role(s)
		}
	}
	return service.Actor{UserID: userID, Role: role}
}
