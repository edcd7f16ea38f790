package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/deepmodak79/AskMate/internal/models"
)

type Notifications struct {
	db *gorm.DB
}

func NewNotifications(db *gorm.DB) *Notifications {
	return &Notifications{db: db}
}

func (r *Notifications) Create(ctx context.Context, n *models.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

// ForUser lists a user's notifications, newest first.
func (r *Notifications) ForUser(ctx context.Context, userID int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead flips one of the user's notifications to read.
func (r *Notifications) MarkRead(ctx context.Context, userID, notificationID int) error {
	return r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true).Error
}
