package repositories

import (
	"context"
	"time"

	"github.com/opsdesk/caseflow_app/internal/core/domain"
)

// UserRepository defines persistence operations for users and the officer roster.
type UserRepository interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListUsersByRole backs the officer roster lookup for forward targets.
	ListUsersByRole(ctx context.Context, role domain.Role) ([]domain.User, error)

	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error
	ClearRefreshToken(ctx context.Context, userID string) error
}
