package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/deepmodak79/AskMate/internal/models"
	"github.com/deepmodak79/AskMate/internal/repository"
	"github.com/deepmodak79/AskMate/internal/service"
)

type AnswerHandler struct {
	answers *repository.Answers
	svc     *service.AnswerService
	votes   *service.VoteService
}

func NewAnswerHandler(db *gorm.DB, svc *service.AnswerService, votes *service.VoteService) *AnswerHandler {
	return &AnswerHandler{
		answers: repository.NewAnswers(db),
		svc:     svc,
		votes:   votes,
	}
}

// CreateAnswer posts an answer to a question (PROTECTED)
func (h *AnswerHandler) CreateAnswer(c *gin.Context) {
	questionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question id"})
		return
	}

	var input models.CreateAnswerRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Body is required"})
		return
	}

	answer, err := h.svc.Create(c.Request.Context(), actorFrom(c), questionID, input.Body)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnauthenticated):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrQuestionNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create answer"})
		}
		return
	}

	c.JSON(http.StatusCreated, answer)
}

// GetAnswer returns a single answer by ID
func (h *AnswerHandler) GetAnswer(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid answer id"})
		return
	}

	answer, err := h.answers.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch answer"})
		return
	}
	if answer == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Answer not found"})
		return
	}

	c.JSON(http.StatusOK, answer)
}

// GetAnswersForQuestion lists a question's answers, accepted first.
func (h *AnswerHandler) GetAnswersForQuestion(c *gin.Context) {
	questionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question id"})
		return
	}

	answers, err := h.answers.ByQuestion(c.Request.Context(), questionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch answers"})
		return
	}
	if answers == nil {
		answers = []models.Answer{}
	}

	c.JSON(http.StatusOK, answers)
}

// VoteAnswer casts an up or down vote on an answer (PROTECTED)
func (h *AnswerHandler) VoteAnswer(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid answer id"})
		return
	}

	var input models.VoteRequest
	_ = c.ShouldBindJSON(&input)

	score, err := h.votes.Cast(c.Request.Context(), actorFrom(c),
		models.AnswerTarget(id), models.ParseVoteValue(input.VoteType))
	if err != nil {
		voteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"voteScore": score})
}

// AcceptAnswer marks an answer as the question's solution (PROTECTED,
// question author or moderator/admin only).
func (h *AnswerHandler) AcceptAnswer(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid answer id"})
		return
	}

	switch err := h.svc.Accept(c.Request.Context(), actorFrom(c), id); {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Answer accepted"})
	case errors.Is(err, service.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAnswerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrQuestionNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept answer"})
	}
}
