package models

import "time"

// QuestionStatus is the lifecycle state of a question.
type QuestionStatus string

const (
	StatusOpen      QuestionStatus = "open"
	StatusClosed    QuestionStatus = "closed"
	StatusDuplicate QuestionStatus = "duplicate"
	StatusOffTopic  QuestionStatus = "offtopic"
	StatusResolved  QuestionStatus = "resolved"
)

type Question struct {
	ID       int    `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"not null" json:"title"`
	Body     string `json:"body"`
	AuthorID int    `gorm:"index;not null" json:"author_id"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author"`

	Status           QuestionStatus `gorm:"default:open" json:"status"`
	AcceptedAnswerID *int           `json:"accepted_answer_id,omitempty"`
	DuplicateOfID    *int           `json:"duplicate_of_id,omitempty"`

	// Engagement counters. VoteScore is denormalized from the vote ledger
	// and rewritten inside every vote transaction.
	ViewCount   int `gorm:"default:0" json:"view_count"`
	VoteScore   int `gorm:"default:0" json:"vote_score"`
	AnswerCount int `gorm:"default:0" json:"answer_count"`

	// Moderation
	IsLocked   bool   `gorm:"default:false" json:"is_locked"`
	LockedByID *int   `json:"locked_by_id,omitempty"`
	LockReason string `json:"lock_reason,omitempty"`

	LastActivityAt time.Time `json:"last_activity_at"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UpdateActivity touches the activity timestamp, called after any vote,
// answer or accept against this question.
func (q *Question) UpdateActivity() {
	q.LastActivityAt = time.Now().UTC()
}

// AcceptAnswer points the question at its accepted answer and resolves it.
func (q *Question) AcceptAnswer(answerID int) {
	q.AcceptedAnswerID = &answerID
	q.Status = StatusResolved
	q.UpdateActivity()
}

func (q *Question) Lock(moderatorID int, reason string) {
	q.IsLocked = true
	q.LockedByID = &moderatorID
	q.LockReason = reason
}

func (q *Question) Unlock() {
	q.IsLocked = false
	q.LockedByID = nil
	q.LockReason = ""
}

func (q *Question) MarkAsDuplicate(duplicateOfID int) {
	q.Status = StatusDuplicate
	q.DuplicateOfID = &duplicateOfID
}

func (q *Question) Close() {
	q.Status = StatusClosed
}

func (q *Question) Reopen() {
	q.Status = StatusOpen
}

type CreateQuestionRequest struct {
	Title string   `json:"title" binding:"required"`
	Body  string   `json:"body" binding:"required"`
	Tags  []string `json:"tags"`
}
