package models

import (
	"fmt"
	"strings"
	"time"
)

// TargetKind identifies which entity a vote or comment is attached to.
type TargetKind string

const (
	TargetQuestion TargetKind = "question"
	TargetAnswer   TargetKind = "answer"
	TargetComment  TargetKind = "comment"
)

// VoteTarget pairs a target kind with a strongly-typed entity id, replacing
// the loose "type string + id" pairs floating through the call stack.
type VoteTarget struct {
	Kind TargetKind
	ID   int
}

func QuestionTarget(id int) VoteTarget { return VoteTarget{Kind: TargetQuestion, ID: id} }
func AnswerTarget(id int) VoteTarget   { return VoteTarget{Kind: TargetAnswer, ID: id} }
func CommentTarget(id int) VoteTarget  { return VoteTarget{Kind: TargetComment, ID: id} }

func (t VoteTarget) String() string {
	return fmt.Sprintf("%s/%d", t.Kind, t.ID)
}

// Vote values: +1 for an upvote, -1 for a downvote.
const (
	Upvote   = 1
	Downvote = -1
)

// ParseVoteValue maps the request-level voteType string to a vote value.
// Anything other than "downvote" counts as an upvote; malformed input is
// deliberately lenient rather than an error.
func ParseVoteValue(voteType string) int {
	if strings.EqualFold(voteType, "downvote") {
		return Downvote
	}
	return Upvote
}

// Vote model - one row per (user, target) pair, direction flipped in place
type Vote struct {
	ID         int        `gorm:"primaryKey" json:"id"`
	UserID     int        `gorm:"uniqueIndex:idx_votes_user_target;not null" json:"user_id"`
	TargetKind TargetKind `gorm:"uniqueIndex:idx_votes_user_target;not null" json:"target_kind"`
	TargetID   int        `gorm:"uniqueIndex:idx_votes_user_target;not null" json:"target_id"`
	Value      int        `gorm:"not null" json:"value"` // +1 or -1
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type VoteRequest struct {
	VoteType string `json:"voteType"` // "upvote" or "downvote", defaults to upvote
}
