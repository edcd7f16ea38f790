package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/deepmodak79/AskMate/internal/models"
	"github.com/deepmodak79/AskMate/internal/repository"
)

type UserHandler struct {
	db            *gorm.DB
	users         *repository.Users
	notifications *repository.Notifications
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{
		db:            db,
		users:         repository.NewUsers(db),
		notifications: repository.NewNotifications(db),
	}
}

// GetUserProfile returns a user's public profile
func (h *UserHandler) GetUserProfile(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           user.ID,
		"username":     user.Username,
		"display_name": user.DisplayName,
		"bio":          user.Bio,
		"avatar_url":   user.AvatarURL,
		"department":   user.Department,
		"role":         user.Role,
		"reputation":   user.Reputation,
		"created_at":   user.CreatedAt,
	})
}

// GetReputationHistory lists a user's reputation ledger, newest first.
func (h *UserHandler) GetReputationHistory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	var events []models.ReputationEvent
	err = h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", id).
		Order("created_at DESC").
		Limit(100).
		Find(&events).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reputation history"})
		return
	}

	c.JSON(http.StatusOK, events)
}

// GetMyNotifications lists the caller's notifications (PROTECTED)
func (h *UserHandler) GetMyNotifications(c *gin.Context) {
	actor := actorFrom(c)
	if !actor.Authenticated() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	notifications, err := h.notifications.ForUser(c.Request.Context(), actor.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}

	c.JSON(http.StatusOK, notifications)
}

// MarkNotificationRead flips one of the caller's notifications to read
// (PROTECTED)
func (h *UserHandler) MarkNotificationRead(c *gin.Context) {
	actor := actorFrom(c)
	if !actor.Authenticated() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification id"})
		return
	}

	if err := h.notifications.MarkRead(c.Request.Context(), actor.UserID, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}
