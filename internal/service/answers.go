package service

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/deepmodak79/AskMate/internal/models"
	"github.com/deepmodak79/AskMate/internal/notify"
	"github.com/deepmodak79/AskMate/internal/repository"
)

// AnswerService creates answers and runs the acceptance workflow.
type AnswerService struct {
	db       *gorm.DB
	log      *logrus.Logger
	notifier *notify.Notifier
}

func NewAnswerService(db *gorm.DB, log *logrus.Logger, notifier *notify.Notifier) *AnswerService {
	return &AnswerService{db: db, log: log, notifier: notifier}
}

// Create posts a new answer and bumps the question's answer count and
// activity in the same transaction.
func (s *AnswerService) Create(ctx context.Context, actor Actor, questionID int, body string) (*models.Answer, error) {
	if !actor.Authenticated() {
		return nil, ErrUnauthenticated
	}

	var answer *models.Answer
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		questions := repository.NewQuestions(tx)
		question, err := questions.Get(ctx, questionID)
		if err != nil {
			return err
		}
		if question == nil {
			return ErrQuestionNotFound
		}

		answer = &models.Answer{
			QuestionID: question.ID,
			Body:       strings.TrimSpace(body),
			AuthorID:   actor.UserID,
		}
		if err := repository.NewAnswers(tx).Create(ctx, answer); err != nil {
			return err
		}

		question.AnswerCount++
		question.UpdateActivity()
		return questions.Save(ctx, question)
	})
	if err != nil {
		return nil, err
	}
	return answer, nil
}

// Accept marks the answer as the question's accepted solution. Only the
// question's author or a moderator/admin may accept. If a different answer
// was previously accepted it is unaccepted first; the unaccept, the accept
// and the question update commit as one transaction so a partial state with
// two accepted answers is never observable. Re-accepting the already
// accepted answer is a no-op.
func (s *AnswerService) Accept(ctx context.Context, actor Actor, answerID int) error {
	if !actor.Authenticated() {
		return ErrUnauthenticated
	}

	var (
		accepted *models.Answer
		question *models.Question
		notified bool
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		answers := repository.NewAnswers(tx)
		questions := repository.NewQuestions(tx)

		answer, err := answers.Get(ctx, answerID)
		if err != nil {
			return err
		}
		if answer == nil {
			return ErrAnswerNotFound
		}

		q, err := questions.Get(ctx, answer.QuestionID)
		if err != nil {
			return err
		}
		if q == nil {
			return ErrQuestionNotFound
		}

		if q.AuthorID != actor.UserID && !actor.Role.CanModerate() {
			return ErrForbidden
		}

		if q.AcceptedAnswerID != nil && *q.AcceptedAnswerID == answer.ID {
			// Already the accepted answer.
			return nil
		}

		if q.AcceptedAnswerID != nil {
			previous, err := answers.Get(ctx, *q.AcceptedAnswerID)
			if err != nil {
				return err
			}
			if previous != nil {
				previous.Unaccept()
				if err := answers.Save(ctx, previous); err != nil {
					return err
				}
				if previous.AuthorID != actor.UserID {
					err := applyReputation(ctx, tx, previous.AuthorID, -models.RepAnswerAccepted,
						"answer_unaccepted", models.AnswerTarget(previous.ID))
					if err != nil {
						return err
					}
				}
			}
		}

		answer.Accept()
		if err := answers.Save(ctx, answer); err != nil {
			return err
		}

		q.AcceptAnswer(answer.ID)
		if err := questions.Save(ctx, q); err != nil {
			return err
		}

		if answer.AuthorID != actor.UserID {
			err := applyReputation(ctx, tx, answer.AuthorID, models.RepAnswerAccepted,
				"answer_accepted", models.AnswerTarget(answer.ID))
			if err != nil {
				return err
			}
			err = applyReputation(ctx, tx, actor.UserID, models.RepAcceptAnswer,
				"accept_answer", models.AnswerTarget(answer.ID))
			if err != nil {
				return err
			}
			if s.notifier != nil {
				if err := s.notifier.RecordAnswerAccepted(ctx, tx, q, answer); err != nil {
					return err
				}
				notified = true
			}
		}

		accepted, question = answer, q
		return nil
	})
	if err != nil {
		return err
	}

	if notified {
		s.notifier.NotifyAnswerAccepted(ctx, s.db, question, accepted)
	}
	if accepted != nil {
		s.log.WithFields(logrus.Fields{
			"question_id": question.ID,
			"answer_id":   accepted.ID,
			"user_id":     actor.UserID,
		}).Info("answer accepted")
	}
	return nil
}
