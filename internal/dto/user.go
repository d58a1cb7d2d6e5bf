package dto

import (
	"time"

	"github.com/opsdesk/caseflow_app/internal/core/domain"
)

// RegisterUserRequest creates a new user with one of the four closed roles.
// The caserole validation is registered at router setup.
type RegisterUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,caserole"`
}

// LoginRequest authenticates by email and password.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the API shape of a user.
type UserResponse struct {
	UserID    string    `json:"userID"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// OfficerResponse is one roster entry of a valid forward target.
type OfficerResponse struct {
	UserID string `json:"userID"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// ListOfficersResponse wraps the treasury officer roster.
type ListOfficersResponse struct {
	Officers []OfficerResponse `json:"officers"`
}

// ToUserResponse converts a domain User to its API shape.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

// ToListOfficersResponse converts the roster to its API shape.
func ToListOfficersResponse(officers []domain.User) ListOfficersResponse {
	out := make([]OfficerResponse, len(officers))
	for i, o := range officers {
		out[i] = OfficerResponse{UserID: o.UserID, Name: o.Name, Email: o.Email}
	}
	return ListOfficersResponse{Officers: out}
}
