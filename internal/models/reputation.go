package models

import "time"

// Reputation deltas awarded for community actions.
const (
	RepQuestionUpvoted   = 5
	RepQuestionDownvoted = -2
	RepAnswerUpvoted     = 10
	RepAnswerDownvoted   = -2
	RepAnswerAccepted    = 15
	RepAcceptAnswer      = 2
)

// ReputationEvent is one entry in the per-user reputation ledger.
type ReputationEvent struct {
	ID         int        `gorm:"primaryKey" json:"id"`
	UserID     int        `gorm:"index;not null" json:"user_id"`
	Delta      int        `gorm:"not null" json:"delta"`
	Reason     string     `gorm:"not null" json:"reason"`
	TargetKind TargetKind `json:"target_kind"`
	TargetID   int        `json:"target_id"`
	CreatedAt  time.Time  `json:"created_at"`
}

// VoteReputation returns the author delta for a vote value landing on the
// given target kind. Comment votes carry no reputation.
func VoteReputation(kind TargetKind, value int) int {
	switch kind {
	case TargetQuestion:
		if value == Upvote {
			return RepQuestionUpvoted
		}
		return RepQuestionDownvoted
	case TargetAnswer:
		if value == Upvote {
			return RepAnswerUpvoted
		}
		return RepAnswerDownvoted
	default:
		return 0
	}
}
