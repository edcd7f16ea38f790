package service

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/deepmodak79/AskMate/internal/models"
	"github.com/deepmodak79/AskMate/internal/repository"
)

// VoteService orchestrates a single vote cast end-to-end: resolve the
// target, upsert the ledger row, recompute the denormalized score and
// adjust the target author's reputation, all in one transaction.
type VoteService struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewVoteService(db *gorm.DB, log *logrus.Logger) *VoteService {
	return &VoteService{db: db, log: log}
}

// Cast records the actor's vote on the target and returns the target's new
// score. Casting the same direction twice is an idempotent no-op returning
// the current score; there is no toggle-off. A vote in the other direction
// flips the existing row in place.
func (s *VoteService) Cast(ctx context.Context, actor Actor, target models.VoteTarget, value int) (int, error) {
	if !actor.Authenticated() {
		return 0, ErrUnauthenticated
	}

	var score int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		votes := repository.NewVotes(tx)

		var (
			question *models.Question
			answer   *models.Answer
			comment  *models.Comment
			authorID int
		)
		switch target.Kind {
		case models.TargetQuestion:
			q, err := repository.NewQuestions(tx).Get(ctx, target.ID)
			if err != nil {
				return err
			}
			if q == nil {
				return ErrQuestionNotFound
			}
			question, authorID = q, q.AuthorID
		case models.TargetAnswer:
			a, err := repository.NewAnswers(tx).Get(ctx, target.ID)
			if err != nil {
				return err
			}
			if a == nil {
				return ErrAnswerNotFound
			}
			answer, authorID = a, a.AuthorID
		case models.TargetComment:
			c, err := repository.NewComments(tx).Get(ctx, target.ID)
			if err != nil {
				return err
			}
			if c == nil {
				return ErrCommentNotFound
			}
			comment, authorID = c, c.AuthorID
		default:
			return ErrInvalidTarget
		}

		existing, err := votes.Find(ctx, actor.UserID, target)
		if err != nil {
			return err
		}
		if existing != nil && existing.Value == value {
			// Same direction again: report the current score, write nothing.
			score, err = votes.ScoreFor(ctx, target)
			return err
		}

		// A flip reverses the reputation the old direction granted.
		var reversal int
		if existing != nil {
			reversal = -models.VoteReputation(target.Kind, existing.Value)
		}

		if _, _, err := votes.Record(ctx, actor.UserID, target, value); err != nil {
			return err
		}

		score, err = votes.ScoreFor(ctx, target)
		if err != nil {
			return err
		}

		switch {
		case question != nil:
			question.VoteScore = score
			question.UpdateActivity()
			if err := repository.NewQuestions(tx).Save(ctx, question); err != nil {
				return err
			}
		case answer != nil:
			answer.VoteScore = score
			if err := repository.NewAnswers(tx).Save(ctx, answer); err != nil {
				return err
			}
		case comment != nil:
			comment.VoteScore = score
			if err := repository.NewComments(tx).Save(ctx, comment); err != nil {
				return err
			}
		}

		if authorID != actor.UserID {
			delta := reversal + models.VoteReputation(target.Kind, value)
			if err := applyReputation(ctx, tx, authorID, delta, voteReason(target.Kind, value), target); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.WithFields(logrus.Fields{
		"user_id": actor.UserID,
		"target":  target.String(),
		"value":   value,
		"score":   score,
	}).Debug("vote cast")

	return score, nil
}

// Score returns the live signed sum of votes on the target.
func (s *VoteService) Score(ctx context.Context, target models.VoteTarget) (int, error) {
	return repository.NewVotes(s.db).ScoreFor(ctx, target)
}
