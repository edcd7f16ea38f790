package service

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/deepmodak79/AskMate/internal/models"
	"github.com/deepmodak79/AskMate/internal/repository"
)

// CommentService posts comments against questions and answers.
type CommentService struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewCommentService(db *gorm.DB, log *logrus.Logger) *CommentService {
	return &CommentService{db: db, log: log}
}

func (s *CommentService) Create(ctx context.Context, actor Actor, target models.VoteTarget, body string) (*models.Comment, error) {
	if !actor.Authenticated() {
		return nil, ErrUnauthenticated
	}

	var comment *models.Comment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		switch target.Kind {
		case models.TargetQuestion:
			question, err := repository.NewQuestions(tx).Get(ctx, target.ID)
			if err != nil {
				return err
			}
			if question == nil {
				return ErrQuestionNotFound
			}
		case models.TargetAnswer:
			answers := repository.NewAnswers(tx)
			answer, err := answers.Get(ctx, target.ID)
			if err != nil {
				return err
			}
			if answer == nil {
				return ErrAnswerNotFound
			}
			answer.CommentCount++
			if err := answers.Save(ctx, answer); err != nil {
				return err
			}
		default:
			return ErrInvalidTarget
		}

		comment = &models.Comment{
			Body:       strings.TrimSpace(body),
			AuthorID:   actor.UserID,
			TargetKind: target.Kind,
			TargetID:   target.ID,
		}
		return repository.NewComments(tx).Create(ctx, comment)
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}
