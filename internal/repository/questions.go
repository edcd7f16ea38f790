package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/deepmodak79/AskMate/internal/models"
)

type Questions struct {
	db *gorm.DB
}

func NewQuestions(db *gorm.DB) *Questions {
	return &Questions{db: db}
}

func (r *Questions) Get(ctx context.Context, id int) (*models.Question, error) {
	var question models.Question
	err := r.db.WithContext(ctx).First(&question, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// GetWithAuthor loads a question together with its author for read paths.
func (r *Questions) GetWithAuthor(ctx context.Context, id int) (*models.Question, error) {
	var question models.Question
	err := r.db.WithContext(ctx).Preload("Author").First(&question, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *Questions) Create(ctx context.Context, question *models.Question) error {
	return r.db.WithContext(ctx).Create(question).Error
}

func (r *Questions) Save(ctx context.Context, question *models.Question) error {
	return r.db.WithContext(ctx).Save(question).Error
}

// IncrementViewCount bumps the counter in place without racing a full-row
// save against concurrent readers.
func (r *Questions) IncrementViewCount(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).
		Model(&models.Question{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// ListFilter narrows and orders the question list.
type ListFilter struct {
	Search string
	Status models.QuestionStatus
	Tag    string
	SortBy string // newest, votes, active, unanswered
	Page   int
	Size   int
}

// List returns one page of questions plus the total match count.
func (r *Questions) List(ctx context.Context, filter ListFilter) ([]models.Question, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Question{}).Preload("Author")

	if term := strings.TrimSpace(filter.Search); term != "" {
		like := "%" + term + "%"
		q = q.Where("title LIKE ? OR body LIKE ?", like, like)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if tag := strings.TrimSpace(filter.Tag); tag != "" {
		q = q.Where("id IN (?)", r.db.Model(&models.QuestionTag{}).
			Select("question_tags.question_id").
			Joins("JOIN tags ON tags.id = question_tags.tag_id").
			Where("tags.name = ?", strings.ToLower(tag)))
	}

	if filter.SortBy == "unanswered" {
		q = q.Where("answer_count = 0")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch filter.SortBy {
	case "votes":
		q = q.Order("vote_score DESC").Order("last_activity_at DESC")
	case "active":
		q = q.Order("last_activity_at DESC")
	default:
		q = q.Order("created_at DESC")
	}

	var questions []models.Question
	err := q.Offset((filter.Page - 1) * filter.Size).Limit(filter.Size).Find(&questions).Error
	if err != nil {
		return nil, 0, err
	}
	return questions, total, nil
}

// TagsFor returns the tags attached to a question.
func (r *Questions) TagsFor(ctx context.Context, questionID int) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.WithContext(ctx).
		Joins("JOIN question_tags ON question_tags.tag_id = tags.id").
		Where("question_tags.question_id = ?", questionID).
		Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// AttachTag upserts the named tag, links it to the question and bumps its
// usage counter.
func (r *Questions) AttachTag(ctx context.Context, questionID int, name string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil
	}

	var tag models.Tag
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		tag = models.Tag{Name: name}
		if err := r.db.WithContext(ctx).Create(&tag).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	link := models.QuestionTag{QuestionID: questionID, TagID: tag.ID}
	if err := r.db.WithContext(ctx).Create(&link).Error; err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Model(&models.Tag{}).
		Where("id = ?", tag.ID).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1")).Error
}
