package handlers

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/deepmodak79/AskMate/internal/models"
	"github.com/deepmodak79/AskMate/internal/repository"
)

type AuthHandler struct {
	db    *gorm.DB
	users *repository.Users
	log   *logrus.Logger
}

func NewAuthHandler(db *gorm.DB, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{db: db, users: repository.NewUsers(db), log: log}
}

// jwtSecret is read per call rather than at package init so it cannot race
// the godotenv autoload.
func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

func issueToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"email":    user.Email,
		"role":     string(user.Role),
		"exp":      time.Now().Add(72 * time.Hour).Unix(),
	})
	return token.SignedString(jwtSecret())
}

// Register handles user registration
func (h *AuthHandler) Register(c *gin.Context) {
	var input struct {
		Username    string `json:"username" binding:"required"`
		Email       string `json:"email" binding:"required,email"`
		Password    string `json:"password" binding:"required,min=6"`
		DisplayName string `json:"display_name"`
		Department  string `json:"department"`
		Phone       string `json:"phone"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	exists, err := h.users.UsernameOrEmailExists(c.Request.Context(), input.Username, input.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username or email already exists"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	displayName := strings.TrimSpace(input.DisplayName)
	if displayName == "" {
		displayName = input.Username
	}

	user := models.User{
		Username:    input.Username,
		Email:       strings.TrimSpace(input.Email),
		Password:    string(hashedPassword),
		DisplayName: displayName,
		Department:  strings.TrimSpace(input.Department),
		Phone:       strings.TrimSpace(input.Phone),
		Role:        models.RoleUser,
	}

	if err := h.users.Create(c.Request.Context(), &user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	tokenString, err := issueToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":       "User registered successfully",
		"token":         tokenString,
		"refresh_token": uuid.NewString(),
		"user": gin.H{
			"id":           user.ID,
			"username":     user.Username,
			"email":        user.Email,
			"display_name": user.DisplayName,
			"role":         user.Role,
			"reputation":   user.Reputation,
		},
	})
}

// Login handles user login with lockout after repeated failures.
func (h *AuthHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.ByEmail(c.Request.Context(), strings.TrimSpace(input.Email))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if user.IsLocked() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account is temporarily locked. Try again later."})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		user.RecordFailedLogin()
		if err := h.users.Save(c.Request.Context(), user); err != nil {
			h.log.WithError(err).Warn("failed to record failed login")
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	user.RecordLogin()
	if err := h.users.Save(c.Request.Context(), user); err != nil {
		h.log.WithError(err).Warn("failed to record login")
	}

	tokenString, err := issueToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Login successful",
		"token":         tokenString,
		"refresh_token": uuid.NewString(),
		"user": gin.H{
			"id":           user.ID,
			"username":     user.Username,
			"email":        user.Email,
			"display_name": user.DisplayName,
			"role":         user.Role,
			"reputation":   user.Reputation,
			"department":   user.Department,
		},
	})
}

// GetMe returns the current authenticated user
func (h *AuthHandler) GetMe(c *gin.Context) {
	actor := actorFrom(c)
	if !actor.Authenticated() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.users.Get(c.Request.Context(), actor.UserID)
	if err != nil || user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           user.ID,
		"username":     user.Username,
		"email":        user.Email,
		"display_name": user.DisplayName,
		"bio":          user.Bio,
		"avatar_url":   user.AvatarURL,
		"department":   user.Department,
		"role":         user.Role,
		"reputation":   user.Reputation,
		"created_at":   user.CreatedAt,
	})
}
