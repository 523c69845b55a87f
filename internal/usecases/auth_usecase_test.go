package usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"tujenge.backend/internal/domain/entities"
	domainerrors "tujenge.backend/internal/domain/errors"
	"tujenge.backend/internal/usecases"
	"tujenge.backend/pkg/crypto"
	"tujenge.backend/pkg/jwt"
	"tujenge.backend/pkg/logger"
)

func init() {
	logger.Init("development")
}

func newAuthFixture() (*usecases.AuthUsecase, *MockUserRepository, *MockAuditLogRepository) {
	userRepo := new(MockUserRepository)
	auditRepo := new(MockAuditLogRepository)
	auditUC := usecases.NewAuditUsecase(auditRepo)
	jwtService := jwt.NewJWTService("test-secret", 15*time.Minute, 24*time.Hour)
	return usecases.NewAuthUsecase(userRepo, auditUC, jwtService), userRepo, auditRepo
}

func TestAuthUsecase_Register_InvalidRole(t *testing.T) {
	uc, _, _ := newAuthFixture()

	_, err := uc.Register(context.Background(), usecases.Actor{}, &entities.RegisterUserInput{
		Email:       "staff@tujenge.co.tz",
		FullName:    "Neema Mushi",
		PhoneNumber: "+255712345678",
		Password:    "s3cretpass",
		Role:        entities.UserRole("superuser"),
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestAuthUsecase_Register_EmailTaken(t *testing.T) {
	uc, userRepo, _ := newAuthFixture()

	existing := &entities.User{ID: uuid.New(), Email: "staff@tujenge.co.tz"}
	userRepo.On("GetByEmail", context.Background(), "staff@tujenge.co.tz").Return(existing, nil).Once()

	_, err := uc.Register(context.Background(), usecases.Actor{}, &entities.RegisterUserInput{
		Email:       "staff@tujenge.co.tz",
		FullName:    "Neema Mushi",
		PhoneNumber: "+255712345678",
		Password:    "s3cretpass",
		Role:        entities.UserRoleTeller,
	})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
}

func TestAuthUsecase_Register_Success(t *testing.T) {
	uc, userRepo, auditRepo := newAuthFixture()

	userRepo.On("GetByEmail", context.Background(), "staff@tujenge.co.tz").Return(nil, domainerrors.ErrNotFound).Once()
	userRepo.On("Create", context.Background(), mock.Anything).Return(nil).Once()
	auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Maybe()

	user, err := uc.Register(context.Background(), usecases.Actor{}, &entities.RegisterUserInput{
		Email:       "staff@tujenge.co.tz",
		FullName:    "Neema Mushi",
		PhoneNumber: "0712345678",
		Password:    "s3cretpass",
		Role:        entities.UserRoleLoanOfficer,
		Branch:      "Kariakoo",
	})
	assert.NoError(t, err)
	assert.Equal(t, "+255712345678", user.PhoneNumber)
	assert.Equal(t, entities.UserRoleLoanOfficer, user.Role)
	assert.NotEqual(t, "s3cretpass", user.PasswordHash)
	userRepo.AssertExpectations(t)
}

func TestAuthUsecase_Login_Success(t *testing.T) {
	uc, userRepo, auditRepo := newAuthFixture()

	hash, err := crypto.HashPassword("s3cretpass")
	assert.NoError(t, err)
	user := &entities.User{
		ID:           uuid.New(),
		Email:        "staff@tujenge.co.tz",
		PasswordHash: hash,
		Role:         entities.UserRoleTeller,
	}
	userRepo.On("GetByEmail", context.Background(), "staff@tujenge.co.tz").Return(user, nil).Once()
	userRepo.On("UpdateLastLogin", context.Background(), user.ID).Return(nil).Once()
	auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Maybe()

	resp, err := uc.Login(context.Background(), &entities.LoginInput{
		Email:    "staff@tujenge.co.tz",
		Password: "s3cretpass",
	}, "10.0.0.1")
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, user.ID, resp.User.ID)
}

func TestAuthUsecase_Login_WrongPassword(t *testing.T) {
	uc, userRepo, _ := newAuthFixture()

	hash, err := crypto.HashPassword("s3cretpass")
	assert.NoError(t, err)
	user := &entities.User{ID: uuid.New(), Email: "staff@tujenge.co.tz", PasswordHash: hash}
	userRepo.On("GetByEmail", context.Background(), "staff@tujenge.co.tz").Return(user, nil).Once()

	_, err = uc.Login(context.Background(), &entities.LoginInput{
		Email:    "staff@tujenge.co.tz",
		Password: "wrongpass1",
	}, "10.0.0.1")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthUsecase_Login_UnknownEmail(t *testing.T) {
	uc, userRepo, _ := newAuthFixture()

	userRepo.On("GetByEmail", context.Background(), "ghost@tujenge.co.tz").Return(nil, domainerrors.ErrNotFound).Once()

	_, err := uc.Login(context.Background(), &entities.LoginInput{
		Email:    "ghost@tujenge.co.tz",
		Password: "s3cretpass",
	}, "10.0.0.1")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthUsecase_RefreshToken_RoundTrip(t *testing.T) {
	uc, userRepo, auditRepo := newAuthFixture()

	hash, err := crypto.HashPassword("s3cretpass")
	assert.NoError(t, err)
	user := &entities.User{
		ID:           uuid.New(),
		Email:        "staff@tujenge.co.tz",
		PasswordHash: hash,
		Role:         entities.UserRoleAdmin,
	}
	userRepo.On("GetByEmail", context.Background(), user.Email).Return(user, nil).Once()
	userRepo.On("UpdateLastLogin", context.Background(), user.ID).Return(nil).Once()
	userRepo.On("GetByID", context.Background(), user.ID).Return(user, nil).Once()
	auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Maybe()

	resp, err := uc.Login(context.Background(), &entities.LoginInput{Email: user.Email, Password: "s3cretpass"}, "")
	assert.NoError(t, err)

	pair, err := uc.RefreshToken(context.Background(), resp.RefreshToken)
	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
}

func TestAuthUsecase_ChangePassword_WrongCurrent(t *testing.T) {
	uc, userRepo, _ := newAuthFixture()

	hash, err := crypto.HashPassword("s3cretpass")
	assert.NoError(t, err)
	user := &entities.User{ID: uuid.New(), Email: "staff@tujenge.co.tz", PasswordHash: hash}
	userRepo.On("GetByID", context.Background(), user.ID).Return(user, nil).Once()

	err = uc.ChangePassword(context.Background(), user.ID, &entities.ChangePasswordInput{
		CurrentPassword: "notthepass",
		NewPassword:     "newpass123",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}
