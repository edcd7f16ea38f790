package service

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/deepmodak79/AskMate/internal/models"
	"github.com/deepmodak79/AskMate/internal/repository"
)

// QuestionService owns question creation and the lifecycle transitions
// (close, reopen, lock, duplicate). The Resolved transition is driven by
// the acceptance workflow, not here.
type QuestionService struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewQuestionService(db *gorm.DB, log *logrus.Logger) *QuestionService {
	return &QuestionService{db: db, log: log}
}

// Ask creates a question with its tags.
func (s *QuestionService) Ask(ctx context.Context, actor Actor, title, body string, tags []string) (*models.Question, error) {
	if !actor.Authenticated() {
		return nil, ErrUnauthenticated
	}

	question := &models.Question{
		Title:    strings.TrimSpace(title),
		Body:     strings.TrimSpace(body),
		AuthorID: actor.UserID,
	}
	question.UpdateActivity()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		questions := repository.NewQuestions(tx)
		if err := questions.Create(ctx, question); err != nil {
			return err
		}
		for _, tag := range tags {
			if err := questions.AttachTag(ctx, question.ID, tag); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return question, nil
}

// RecordView bumps the question's view counter. Monotonic, no business rule.
func (s *QuestionService) RecordView(ctx context.Context, questionID int) error {
	return repository.NewQuestions(s.db).IncrementViewCount(ctx, questionID)
}

// Close moves the question to the closed state. Moderators only.
func (s *QuestionService) Close(ctx context.Context, actor Actor, questionID int) error {
	return s.transition(ctx, actor, questionID, func(q *models.Question) {
		q.Close()
	})
}

// Reopen returns a closed or duplicate question to the open state.
func (s *QuestionService) Reopen(ctx context.Context, actor Actor, questionID int) error {
	return s.transition(ctx, actor, questionID, func(q *models.Question) {
		q.Reopen()
	})
}

// Lock freezes a question against further edits. Independent of acceptance.
func (s *QuestionService) Lock(ctx context.Context, actor Actor, questionID int, reason string) error {
	return s.transition(ctx, actor, questionID, func(q *models.Question) {
		q.Lock(actor.UserID, reason)
	})
}

func (s *QuestionService) Unlock(ctx context.Context, actor Actor, questionID int) error {
	return s.transition(ctx, actor, questionID, func(q *models.Question) {
		q.Unlock()
	})
}

// MarkAsDuplicate flags the question as a duplicate of another one.
func (s *QuestionService) MarkAsDuplicate(ctx context.Context, actor Actor, questionID, duplicateOfID int) error {
	if !actor.Authenticated() {
		return ErrUnauthenticated
	}
	if !actor.Role.CanModerate() {
		return ErrForbidden
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		questions := repository.NewQuestions(tx)
		question, err := questions.Get(ctx, questionID)
		if err != nil {
			return err
		}
		if question == nil {
			return ErrQuestionNotFound
		}
		original, err := questions.Get(ctx, duplicateOfID)
		if err != nil {
			return err
		}
		if original == nil {
			return ErrQuestionNotFound
		}
		question.MarkAsDuplicate(original.ID)
		return questions.Save(ctx, question)
	})
}

func (s *QuestionService) transition(ctx context.Context, actor Actor, questionID int, apply func(*models.Question)) error {
	if !actor.Authenticated() {
		return ErrUnauthenticated
	}
	if !actor.Role.CanModerate() {
		return ErrForbidden
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		questions := repository.NewQuestions(tx)
		question, err := questions.Get(ctx, questionID)
		if err != nil {
			return err
		}
		if question == nil {
			return ErrQuestionNotFound
		}
		apply(question)
		return questions.Save(ctx, question)
	})
}
