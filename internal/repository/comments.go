package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/deepmodak79/AskMate/internal/models"
)

type Comments struct {
	db *gorm.DB
}

func NewComments(db *gorm.DB) *Comments {
	return &Comments{db: db}
}

func (r *Comments) Get(ctx context.Context, id int) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).First(&comment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *Comments) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *Comments) Save(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

// ForTarget lists comments on a question or answer, oldest first.
func (r *Comments) ForTarget(ctx context.Context, target models.VoteTarget) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("target_kind = ? AND target_id = ?", target.Kind, target.ID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
