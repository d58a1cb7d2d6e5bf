package services

import (
	"context"

	"github.com/opsdesk/caseflow_app/internal/core/domain"
	"github.com/opsdesk/caseflow_app/internal/dto"
)

// UserSvcFacade covers user management and the officer roster directory.
type UserSvcFacade interface {
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListOfficers supplies the valid forward_to_officer targets.
	ListOfficers(ctx context.Context) ([]domain.User, error)

	StoreRefreshToken(ctx context.Context, userID string, refreshToken string) error
	ClearRefreshToken(ctx context.Context, userID string) error
}
