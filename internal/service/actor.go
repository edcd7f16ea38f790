package service

import "github.com/deepmodak79/AskMate/internal/models"

// Actor is the authenticated caller of a service operation. It is passed
// explicitly into every operation instead of being pulled from an ambient
// request context, so the services stay testable without a fake request.
// The zero Actor is anonymous.
type Actor struct {
	UserID int
	Role   models.Role
}

func (a Actor) Authenticated() bool {
	return a.UserID != 0
}
