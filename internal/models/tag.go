package models

import "time"

type Tag struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"unique;not null" json:"name"`
	Description string    `json:"description,omitempty"`
	UsageCount  int       `gorm:"default:0" json:"usage_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// QuestionTag is the join row between questions and tags.
type QuestionTag struct {
	ID         int `gorm:"primaryKey" json:"id"`
	QuestionID int `gorm:"uniqueIndex:idx_question_tag;not null" json:"question_id"`
	TagID      int `gorm:"uniqueIndex:idx_question_tag;not null" json:"tag_id"`
	Tag        Tag `gorm:"foreignKey:TagID" json:"tag"`
}
