package models

import "time"

type Answer struct {
	ID         int    `gorm:"primaryKey" json:"id"`
	QuestionID int    `gorm:"index;not null" json:"question_id"`
	Body       string `gorm:"not null" json:"body"`
	AuthorID   int    `gorm:"index;not null" json:"author_id"`
	Author     User   `gorm:"foreignKey:AuthorID" json:"author"`

	IsAccepted bool       `gorm:"default:false" json:"is_accepted"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`

	VoteScore    int `gorm:"default:0" json:"vote_score"`
	CommentCount int `gorm:"default:0" json:"comment_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Accept marks the answer as the chosen solution.
func (a *Answer) Accept() {
	now := time.Now().UTC()
	a.IsAccepted = true
	a.AcceptedAt = &now
}

// Unaccept clears acceptance when a different answer takes its place.
func (a *Answer) Unaccept() {
	a.IsAccepted = false
	a.AcceptedAt = nil
}

type CreateAnswerRequest struct {
	Body string `json:"body" binding:"required"`
}
