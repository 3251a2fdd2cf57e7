package service

import "github.com/google/uuid"

const (
	RoleAuditor = "auditor"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

// Session is the authenticated caller, resolved upstream and passed
// explicitly into every operation that acts on behalf of a user.
type Session struct {
	UserID uuid.UUID
	Role   string
}

func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }

func (s Session) valid() bool { return s.UserID != uuid.Nil }
