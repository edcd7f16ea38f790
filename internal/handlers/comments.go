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

type CommentHandler struct {
	comments *repository.Comments
	svc      *service.CommentService
	votes    *service.VoteService
}

func NewCommentHandler(db *gorm.DB, svc *service.CommentService, votes *service.VoteService) *CommentHandler {
	return &CommentHandler{
		comments: repository.NewComments(db),
		svc:      svc,
		votes:    votes,
	}
}

// CreateQuestionComment posts a comment on a question (PROTECTED)
func (h *CommentHandler) CreateQuestionComment(c *gin.Context) {
	h.create(c, models.TargetQuestion)
}

// CreateAnswerComment posts a comment on an answer (PROTECTED)
func (h *CommentHandler) CreateAnswerComment(c *gin.Context) {
	h.create(c, models.TargetAnswer)
}

func (h *CommentHandler) create(c *gin.Context, kind models.TargetKind) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	var input models.CreateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Body is required"})
		return
	}

	comment, err := h.svc.Create(c.Request.Context(), actorFrom(c),
		models.VoteTarget{Kind: kind, ID: id}, input.Body)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnauthenticated):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrQuestionNotFound), errors.Is(err, service.ErrAnswerNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		}
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// GetQuestionComments lists comments on a question.
func (h *CommentHandler) GetQuestionComments(c *gin.Context) {
	h.list(c, models.TargetQuestion)
}

// GetAnswerComments lists comments on an answer.
func (h *CommentHandler) GetAnswerComments(c *gin.Context) {
	h.list(c, models.TargetAnswer)
}

func (h *CommentHandler) list(c *gin.Context, kind models.TargetKind) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	comments, err := h.comments.ForTarget(c.Request.Context(), models.VoteTarget{Kind: kind, ID: id})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}

	c.JSON(http.StatusOK, comments)
}

// VoteComment casts an up or down vote on a comment (PROTECTED)
func (h *CommentHandler) VoteComment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment id"})
		return
	}

	var input models.VoteRequest
	_ = c.ShouldBindJSON(&input)

	score, err := h.votes.Cast(c.Request.Context(), actorFrom(c),
		models.CommentTarget(id), models.ParseVoteValue(input.VoteType))
	if err != nil {
		voteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"voteScore": score})
}
