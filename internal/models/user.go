package models

import (
	"time"

	"github.com/google/uuid"
)

// Role represents a user's permission level in the system.
type Role string

const (
	RoleMember  Role = "member"
	RoleManager Role = "manager"
)

// User represents a platform user with authentication and 2FA fields.
// Managers belong to an organization and may change its theme; any
// authenticated user can publish posts.
type User struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	PasswordHash   string     `json:"-"` // Never serialize the hash
	DisplayName    string     `json:"display_name"`
	Role           Role       `json:"role"`
	OrganizationID *uuid.UUID `json:"organization_id,omitempty"` // Set for managers
	TOTPSecret     *string    `json:"-"`                         // Nullable; set during 2FA setup
	TOTPEnabled    bool       `json:"totp_enabled"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// IsManager returns true if the user has the manager role.
func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

// ManagerOf returns true if the user manages the given organization.
func (u *User) ManagerOf(orgID uuid.UUID) bool {
	return u.Role == RoleManager && u.OrganizationID != nil && *u.OrganizationID == orgID
}

// Needs2FASetup returns true if the user has not completed 2FA enrollment.
// All users must set up 2FA on their first login.
func (u *User) Needs2FASetup() bool {
	return !u.TOTPEnabled
}
