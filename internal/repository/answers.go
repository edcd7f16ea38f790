package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/deepmodak79/AskMate/internal/models"
)

type Answers struct {
	db *gorm.DB
}

func NewAnswers(db *gorm.DB) *Answers {
	return &Answers{db: db}
}

func (r *Answers) Get(ctx context.Context, id int) (*models.Answer, error) {
	var answer models.Answer
	err := r.db.WithContext(ctx).First(&answer, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *Answers) Create(ctx context.Context, answer *models.Answer) error {
	return r.db.WithContext(ctx).Create(answer).Error
}

func (r *Answers) Save(ctx context.Context, answer *models.Answer) error {
	return r.db.WithContext(ctx).Save(answer).Error
}

// ByQuestion lists a question's answers, accepted one first, then by score.
func (r *Answers) ByQuestion(ctx context.Context, questionID int) ([]models.Answer, error) {
	var answers []models.Answer
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("question_id = ?", questionID).
		Order("is_accepted DESC").
		Order("vote_score DESC").
		Order("created_at ASC").
		Find(&answers).Error
	if err != nil {
		return nil, err
	}
	return answers, nil
}
