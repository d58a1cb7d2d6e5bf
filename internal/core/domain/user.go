package domain

import "time"

// User represents an authenticated member of one of the four organizational roles.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"` // Fixed per identity; a change takes effect on next credential issuance
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Soft delete

	// Refresh token fields
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}

// Identity projects the user into the request-scoped acting identity.
func (u *User) Identity() Identity {
	return Identity{UserID: u.UserID, Email: u.Email, Role: u.Role}
}
