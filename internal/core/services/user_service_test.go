package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/helvita/ledger-backend/internal/apperrors"
	"github.com/helvita/ledger-backend/internal/core/domain"
	portssvc "github.com/helvita/ledger-backend/internal/core/ports/services"
	"github.com/helvita/ledger-backend/internal/core/services"
	"github.com/helvita/ledger-backend/internal/dto"
	"github.com/helvita/ledger-backend/internal/utils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)
}

// --- Register ---

func (suite *UserServiceTestSuite) TestRegister_Success() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		Email:    "  Jordan@Example.COM ",
		Name:     "Jordan",
		Password: "correct horse battery staple",
	}

	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == "jordan@example.com" &&
			u.Name == "Jordan" &&
			u.UserID != "" &&
			u.PasswordHash != "" &&
			u.PasswordHash != req.Password &&
			utils.CheckPasswordHash(req.Password, u.PasswordHash)
	})).Return(nil).Once()

	user, err := suite.service.Register(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.Equal("jordan@example.com", user.Email)
	suite.NotEqual(req.Password, user.PasswordHash)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegister_DuplicateEmail() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		Email:    "jordan@example.com",
		Name:     "Jordan",
		Password: "correct horse battery staple",
	}

	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
		Return(apperrors.ErrDuplicate).Once()

	user, err := suite.service.Register(ctx, req)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

// --- Authenticate ---

func (suite *UserServiceTestSuite) TestAuthenticate_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("s3cret-password")
	suite.Require().NoError(err)

	stored := &domain.User{
		UserID:       uuid.NewString(),
		Email:        "jordan@example.com",
		Name:         "Jordan",
		PasswordHash: hash,
	}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "jordan@example.com").Return(stored, nil).Once()

	user, err := suite.service.Authenticate(ctx, "Jordan@Example.com ", "s3cret-password")

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.Equal(stored.UserID, user.UserID)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticate_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("s3cret-password")
	suite.Require().NoError(err)

	stored := &domain.User{
		UserID:       uuid.NewString(),
		Email:        "jordan@example.com",
		PasswordHash: hash,
	}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "jordan@example.com").Return(stored, nil).Once()

	user, err := suite.service.Authenticate(ctx, "jordan@example.com", "not-the-password")

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *UserServiceTestSuite) TestAuthenticate_UnknownEmail() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "nobody@example.com").
		Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.Authenticate(ctx, "nobody@example.com", "whatever")

	suite.Require().Error(err)
	suite.Nil(user)
	// Same error as a wrong password, so callers cannot probe for emails
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- GetUserByID ---

func (suite *UserServiceTestSuite) TestGetUserByID() {
	ctx := context.Background()
	stored := &domain.User{UserID: uuid.NewString(), Email: "jordan@example.com"}

	suite.mockUserRepo.On("FindUserByID", ctx, stored.UserID).Return(stored, nil).Once()

	user, err := suite.service.GetUserByID(ctx, stored.UserID)

	suite.Require().NoError(err)
	suite.Equal(stored, user)
}

// --- Run Suite ---
func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
