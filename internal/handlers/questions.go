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

type QuestionHandler struct {
	questions *repository.Questions
	answers   *repository.Answers
	svc       *service.QuestionService
	votes     *service.VoteService
}

func NewQuestionHandler(db *gorm.DB, svc *service.QuestionService, votes *service.VoteService) *QuestionHandler {
	return &QuestionHandler{
		questions: repository.NewQuestions(db),
		answers:   repository.NewAnswers(db),
		svc:       svc,
		votes:     votes,
	}
}

// GetQuestions returns a page of questions with search, tag, status and
// sort filters.
func (h *QuestionHandler) GetQuestions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}

	filter := repository.ListFilter{
		Search: c.Query("q"),
		Status: models.QuestionStatus(c.Query("status")),
		Tag:    c.Query("tag"),
		SortBy: c.DefaultQuery("sortBy", "newest"),
		Page:   page,
		Size:   size,
	}

	questions, total, err := h.questions.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch questions"})
		return
	}

	items := make([]gin.H, 0, len(questions))
	for _, q := range questions {
		items = append(items, questionListItem(&q))
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      items,
		"totalCount": total,
		"page":       page,
		"pageSize":   size,
	})
}

// GetQuestion returns a single question with its tags and answers and bumps
// the view counter.
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question id"})
		return
	}

	question, err := h.questions.GetWithAuthor(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch question"})
		return
	}
	if question == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	if err := h.svc.RecordView(c.Request.Context(), question.ID); err == nil {
		question.ViewCount++
	}

	tags, err := h.questions.TagsFor(c.Request.Context(), question.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch question"})
		return
	}
	answers, err := h.answers.ByQuestion(c.Request.Context(), question.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch question"})
		return
	}

	item := questionListItem(question)
	item["body"] = question.Body
	item["tags"] = tags
	item["answers"] = answers

	c.JSON(http.StatusOK, item)
}

// CreateQuestion creates a new question (PROTECTED)
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var input models.CreateQuestionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and body are required"})
		return
	}

	question, err := h.svc.Ask(c.Request.Context(), actorFrom(c), input.Title, input.Body, input.Tags)
	if err != nil {
		if errors.Is(err, service.ErrUnauthenticated) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create question"})
		return
	}

	c.JSON(http.StatusCreated, question)
}

// VoteQuestion casts an up or down vote on a question (PROTECTED). The
// response carries the question's new score.
func (h *QuestionHandler) VoteQuestion(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question id"})
		return
	}

	// Missing or malformed body defaults to an upvote.
	var input models.VoteRequest
	_ = c.ShouldBindJSON(&input)

	score, err := h.votes.Cast(c.Request.Context(), actorFrom(c),
		models.QuestionTarget(id), models.ParseVoteValue(input.VoteType))
	if err != nil {
		voteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"voteScore": score})
}

// Moderation transitions (PROTECTED, moderator/admin only).

func (h *QuestionHandler) CloseQuestion(c *gin.Context) {
	h.lifecycle(c, func(id int) error {
		return h.svc.Close(c.Request.Context(), actorFrom(c), id)
	})
}

func (h *QuestionHandler) ReopenQuestion(c *gin.Context) {
	h.lifecycle(c, func(id int) error {
		return h.svc.Reopen(c.Request.Context(), actorFrom(c), id)
	})
}

func (h *QuestionHandler) LockQuestion(c *gin.Context) {
	var input struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&input)

	h.lifecycle(c, func(id int) error {
		return h.svc.Lock(c.Request.Context(), actorFrom(c), id, input.Reason)
	})
}

func (h *QuestionHandler) UnlockQuestion(c *gin.Context) {
	h.lifecycle(c, func(id int) error {
		return h.svc.Unlock(c.Request.Context(), actorFrom(c), id)
	})
}

func (h *QuestionHandler) MarkDuplicate(c *gin.Context) {
	var input struct {
		DuplicateOfID int `json:"duplicate_of_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "duplicate_of_id is required"})
		return
	}

	h.lifecycle(c, func(id int) error {
		return h.svc.MarkAsDuplicate(c.Request.Context(), actorFrom(c), id, input.DuplicateOfID)
	})
}

func (h *QuestionHandler) lifecycle(c *gin.Context, op func(id int) error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question id"})
		return
	}

	switch err := op(id); {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	case errors.Is(err, service.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrQuestionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Operation failed"})
	}
}

// voteError maps vote-cast failures onto the endpoint contract: precondition
// failures (no such target, not logged in) come back as 400 with a message.
func voteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthenticated),
		errors.Is(err, service.ErrQuestionNotFound),
		errors.Is(err, service.ErrAnswerNotFound),
		errors.Is(err, service.ErrCommentNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to vote"})
	}
}

func questionListItem(q *models.Question) gin.H {
	return gin.H{
		"id":                 q.ID,
		"title":              q.Title,
		"status":             q.Status,
		"author":             q.Author,
		"accepted_answer_id": q.AcceptedAnswerID,
		"view_count":         q.ViewCount,
		"vote_score":         q.VoteScore,
		"answer_count":       q.AnswerCount,
		"is_locked":          q.IsLocked,
		"created_at":         q.CreatedAt,
		"updated_at":         q.UpdatedAt,
		"last_activity_at":   q.LastActivityAt,
	}
}
