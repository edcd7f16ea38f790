package models

import "time"

// Role controls what a user may moderate.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// CanModerate reports whether the role may act on content it does not own.
func (r Role) CanModerate() bool {
	return r == RoleModerator || r == RoleAdmin
}

const (
	maxFailedLogins = 5
	lockoutDuration = 15 * time.Minute
)

type User struct {
	ID          int    `gorm:"primaryKey" json:"id"`
	Username    string `gorm:"unique;not null" json:"username"`
	Email       string `gorm:"unique;not null" json:"email"`
	Password    string `gorm:"not null" json:"-"`
	DisplayName string `json:"display_name"`
	Bio         string `json:"bio"`
	AvatarURL   string `json:"avatar_url"`
	Department  string `json:"department"`
	Phone       string `json:"-"` // optional, for SMS notifications

	Role       Role `gorm:"default:user" json:"role"`
	Reputation int  `gorm:"default:0" json:"reputation"`

	// Login security
	FailedLoginAttempts int        `json:"-"`
	LockedUntil         *time.Time `json:"-"`
	LastLoginAt         *time.Time `json:"last_login_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AddReputation applies a delta with a floor of zero.
func (u *User) AddReputation(points int) {
	u.Reputation += points
	if u.Reputation < 0 {
		u.Reputation = 0
	}
}

// IsLocked reports whether the account is inside a lockout window.
func (u *User) IsLocked() bool {
	return u.LockedUntil != nil && u.LockedUntil.After(time.Now().UTC())
}

// RecordFailedLogin counts a failed attempt and locks the account after the
// fifth one in a row.
func (u *User) RecordFailedLogin() {
	u.FailedLoginAttempts++
	if u.FailedLoginAttempts >= maxFailedLogins {
		until := time.Now().UTC().Add(lockoutDuration)
		u.LockedUntil = &until
	}
}

// RecordLogin resets the failure counter and stamps the login time.
func (u *User) RecordLogin() {
	now := time.Now().UTC()
	u.LastLoginAt = &now
	u.FailedLoginAttempts = 0
	u.LockedUntil = nil
}

type RegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	Department  string `json:"department"`
	Phone       string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
