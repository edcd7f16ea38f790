package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/deepmodak79/AskMate/internal/models"
	"github.com/deepmodak79/AskMate/internal/repository"
)

// applyReputation adjusts a user's reputation inside the caller's
// transaction and appends a ledger entry. A zero delta writes nothing.
func applyReputation(ctx context.Context, tx *gorm.DB, userID, delta int, reason string, target models.VoteTarget) error {
	if delta == 0 {
		return nil
	}

	users := repository.NewUsers(tx)
	user, err := users.Get(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	user.AddReputation(delta)
	if err := users.Save(ctx, user); err != nil {
		return err
	}

	event := models.ReputationEvent{
		UserID:     userID,
		Delta:      delta,
		Reason:     reason,
		TargetKind: target.Kind,
		TargetID:   target.ID,
	}
	return tx.WithContext(ctx).Create(&event).Error
}

func voteReason(kind models.TargetKind, value int) string {
	direction := "upvoted"
	if value == models.Downvote {
		direction = "downvoted"
	}
	return string(kind) + "_" + direction
}
