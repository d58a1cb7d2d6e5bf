package services

import (
	"context"
	"time"

	"github.com/opsdesk/caseflow_app/internal/core/domain"
)

// TokenSvcFacade mints and validates the opaque credentials the identity
// context resolves. The workflow core trusts the role claim verbatim and
// never re-derives it.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshTokenString string) (*domain.User, error)
}
