package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/deepmodak79/AskMate/internal/models"
)

// Votes is the vote ledger: at most one row per (user, target) tuple.
type Votes struct {
	db *gorm.DB
}

func NewVotes(db *gorm.DB) *Votes {
	return &Votes{db: db}
}

// Find returns the caller's vote on the target, or nil when none exists.
func (r *Votes) Find(ctx context.Context, userID int, target models.VoteTarget) (*models.Vote, error) {
	var vote models.Vote
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND target_kind = ? AND target_id = ?", userID, target.Kind, target.ID).
		First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

// Record upserts the user's vote on the target. A missing row is inserted;
// an existing row has its value flipped in place. Casting the same value
// again is a no-op, not a toggle-off. Returns the stored vote and whether
// anything changed.
func (r *Votes) Record(ctx context.Context, userID int, target models.VoteTarget, value int) (*models.Vote, bool, error) {
	existing, err := r.Find(ctx, userID, target)
	if err != nil {
		return nil, false, err
	}

	if existing != nil {
		if existing.Value == value {
			return existing, false, nil
		}
		existing.Value = value
		existing.UpdatedAt = time.Now().UTC()
		if err := r.db.WithContext(ctx).Save(existing).Error; err != nil {
			return nil, false, err
		}
		return existing, true, nil
	}

	vote := models.Vote{
		UserID:     userID,
		TargetKind: target.Kind,
		TargetID:   target.ID,
		Value:      value,
	}
	if err := r.db.WithContext(ctx).Create(&vote).Error; err != nil {
		return nil, false, err
	}
	return &vote, true, nil
}

// ScoreFor computes the signed sum of all votes on the target. It always
// reads live rows so a write earlier in the same transaction is visible.
func (r *Votes) ScoreFor(ctx context.Context, target models.VoteTarget) (int, error) {
	var score int
	err := r.db.WithContext(ctx).
		Model(&models.Vote{}).
		Where("target_kind = ? AND target_id = ?", target.Kind, target.ID).
		Select("COALESCE(SUM(value), 0)").
		Scan(&score).Error
	if err != nil {
		return 0, err
	}
	return score, nil
}
