package models

import "time"

// Comment attaches to a question or an answer through the same typed target
// used by votes.
type Comment struct {
	ID         int        `gorm:"primaryKey" json:"id"`
	Body       string     `gorm:"not null" json:"body"`
	AuthorID   int        `gorm:"index;not null" json:"author_id"`
	Author     User       `gorm:"foreignKey:AuthorID" json:"author"`
	TargetKind TargetKind `gorm:"index:idx_comments_target;not null" json:"target_kind"`
	TargetID   int        `gorm:"index:idx_comments_target;not null" json:"target_id"`
	VoteScore  int        `gorm:"default:0" json:"vote_score"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type CreateCommentRequest struct {
	Body string `json:"body" binding:"required"`
}
