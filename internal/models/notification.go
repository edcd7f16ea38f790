package models

import "time"

type NotificationType string

const (
	NotifyAnswerAccepted NotificationType = "answer_accepted"
)

type Notification struct {
	ID         int              `gorm:"primaryKey" json:"id"`
	UserID     int              `gorm:"index;not null" json:"user_id"`
	Type       NotificationType `gorm:"not null" json:"type"`
	Message    string           `gorm:"not null" json:"message"`
	QuestionID *int             `json:"question_id,omitempty"`
	IsRead     bool             `gorm:"default:false" json:"is_read"`
	CreatedAt  time.Time        `json:"created_at"`
}
