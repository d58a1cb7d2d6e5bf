package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/opsdesk/caseflow_app/internal/apperrors"
	"github.com/opsdesk/caseflow_app/internal/core/domain"
	portssvc "github.com/opsdesk/caseflow_app/internal/core/ports/services"
	"github.com/opsdesk/caseflow_app/internal/core/services"
	"github.com/opsdesk/caseflow_app/internal/dto"
	"github.com/opsdesk/caseflow_app/internal/utils"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo, 7*24*time.Hour)
}

func (suite *UserServiceTestSuite) TestRegisterUser_Success() {
	ctx := context.Background()
	req := dto.RegisterUserRequest{
		Name:     "Tariq Officer",
		Email:    "Tariq.Officer@Example.com",
		Password: "str0ngpassword",
		Role:     "TREASURY_OFFICER",
	}

	suite.mockUserRepo.On("FindUserByEmail", mock.Anything, "tariq.officer@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", mock.Anything, mock.AnythingOfType("domain.User")).Return(nil).Once()

	user, err := suite.service.RegisterUser(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.NotEmpty(user.UserID)
	suite.Equal("tariq.officer@example.com", user.Email)
	suite.Equal(domain.RoleTreasuryOfficer, user.Role)
	suite.Equal(int64(1), user.Version)
	suite.NotEqual(req.Password, user.PasswordHash)
	suite.True(utils.CheckPasswordHash(req.Password, user.PasswordHash))

	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegisterUser_UnknownRole() {
	ctx := context.Background()
	req := dto.RegisterUserRequest{
		Name:     "Nobody",
		Email:    "nobody@example.com",
		Password: "str0ngpassword",
		Role:     "SUPER_ADMIN",
	}

	user, err := suite.service.RegisterUser(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(user)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestRegisterUser_DuplicateEmail() {
	ctx := context.Background()
	req := dto.RegisterUserRequest{
		Name:     "Second Account",
		Email:    "taken@example.com",
		Password: "str0ngpassword",
		Role:     "AGENT_OPS",
	}

	existing := &domain.User{UserID: uuid.NewString(), Email: "taken@example.com", Role: domain.RoleAgentOPS}
	suite.mockUserRepo.On("FindUserByEmail", mock.Anything, "taken@example.com").Return(existing, nil).Once()

	user, err := suite.service.RegisterUser(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(user)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestGetUserByEmail_Normalizes() {
	ctx := context.Background()
	found := &domain.User{UserID: uuid.NewString(), Email: "agent@example.com", Role: domain.RoleAgentOPS}

	suite.mockUserRepo.On("FindUserByEmail", mock.Anything, "agent@example.com").Return(found, nil).Once()

	user, err := suite.service.GetUserByEmail(ctx, "  Agent@Example.COM ")

	suite.Require().NoError(err)
	suite.Equal(found.UserID, user.UserID)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestListOfficers() {
	ctx := context.Background()
	roster := []domain.User{
		{UserID: uuid.NewString(), Name: "Officer A", Role: domain.RoleTreasuryOfficer},
		{UserID: uuid.NewString(), Name: "Officer B", Role: domain.RoleTreasuryOfficer},
	}

	suite.mockUserRepo.On("ListUsersByRole", mock.Anything, domain.RoleTreasuryOfficer).Return(roster, nil).Once()

	officers, err := suite.service.ListOfficers(ctx)

	suite.Require().NoError(err)
	suite.Len(officers, 2)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestStoreRefreshToken_HashesBeforePersisting() {
	ctx := context.Background()
	userID := uuid.NewString()
	rawToken := "deadbeefcafe"

	suite.mockUserRepo.On("UpdateRefreshToken", mock.Anything, userID, utils.HashRefreshToken(rawToken), mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.StoreRefreshToken(ctx, userID, rawToken)

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestClearRefreshToken() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("ClearRefreshToken", mock.Anything, userID).Return(nil).Once()

	suite.Require().NoError(suite.service.ClearRefreshToken(ctx, userID))
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
