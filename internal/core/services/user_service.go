package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/opsdesk/caseflow_app/internal/apperrors"
	"github.com/opsdesk/caseflow_app/internal/core/domain"
	portsrepo "github.com/opsdesk/caseflow_app/internal/core/ports/repositories"
	portssvc "github.com/opsdesk/caseflow_app/internal/core/ports/services"
	"github.com/opsdesk/caseflow_app/internal/dto"
	"github.com/opsdesk/caseflow_app/internal/middleware"
	"github.com/opsdesk/caseflow_app/internal/utils"
)

// userService implements user management and the officer roster directory.
type userService struct {
	userRepo           portsrepo.UserRepository
	refreshTokenExpiry time.Duration
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepository, refreshTokenExpiry time.Duration) portssvc.UserSvcFacade {
	return &userService{
		userRepo:           userRepo,
		refreshTokenExpiry: refreshTokenExpiry,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// RegisterUser creates a user with one of the four closed roles. The role
// string is parsed strictly: anything outside the enum is a validation error,
// never a silent default.
func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check for existing user", slog.String("error", err.Error()))
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email already registered", apperrors.ErrDuplicate)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	userID := uuid.NewString()
	user := domain.User{
		UserID:       userID,
		Name:         req.Name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
			Version:       1,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		logger.Error("Failed to save user", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("User registered", slog.String("user_id", user.UserID), slog.String("role", string(user.Role)))
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.userRepo.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

// ListOfficers returns the roster of valid forward targets.
func (s *userService) ListOfficers(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.ListUsersByRole(ctx, domain.RoleTreasuryOfficer)
}

// StoreRefreshToken hashes and persists a refresh token with its expiry.
func (s *userService) StoreRefreshToken(ctx context.Context, userID string, refreshToken string) error {
	hash := utils.HashRefreshToken(refreshToken)
	expiry := time.Now().UTC().Add(s.refreshTokenExpiry)
	return s.userRepo.UpdateRefreshToken(ctx, userID, hash, expiry)
}

// ClearRefreshToken removes the stored refresh token, ending the session.
func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	return s.userRepo.ClearRefreshToken(ctx, userID)
}
