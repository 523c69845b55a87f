package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"tujenge.backend/internal/domain/entities"
	domainerrors "tujenge.backend/internal/domain/errors"
	"tujenge.backend/internal/domain/repositories"
	"tujenge.backend/pkg/crypto"
	"tujenge.backend/pkg/jwt"
	"tujenge.backend/pkg/tanzania"
	"tujenge.backend/pkg/utils"
)

// AuthUsecase handles staff authentication business logic
type AuthUsecase struct {
	userRepo   repositories.UserRepository
	auditUC    *AuditUsecase
	jwtService *jwt.JWTService
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	auditUC *AuditUsecase,
	jwtService *jwt.JWTService,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:   userRepo,
		auditUC:    auditUC,
		jwtService: jwtService,
	}
}

var validRoles = map[entities.UserRole]bool{
	entities.UserRoleAdmin:               true,
	entities.UserRoleLoanOfficer:         true,
	entities.UserRoleDisbursementOfficer: true,
	entities.UserRoleTeller:              true,
}

// Register creates a new staff user. Admin only at the handler layer.
func (u *AuthUsecase) Register(ctx context.Context, actor Actor, input *entities.RegisterUserInput) (*entities.User, error) {
	if !validRoles[input.Role] {
		return nil, domainerrors.BadRequest("INVALID_ROLE", "unknown staff role")
	}
	if !tanzania.ValidPhoneNumber(input.PhoneNumber) {
		return nil, domainerrors.ErrInvalidPhoneNumber
	}

	_, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err == nil {
		return nil, domainerrors.ErrAlreadyExists
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entities.User{
		ID:           utils.GenerateUUIDv7(),
		Email:        input.Email,
		FullName:     input.FullName,
		PhoneNumber:  tanzania.NormalizePhoneNumber(input.PhoneNumber),
		PasswordHash: passwordHash,
		Role:         input.Role,
		Branch:       input.Branch,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	u.auditUC.Record(ctx, actor, entities.AuditActionCreate, "user", user.ID.String(), map[string]string{
		"email": user.Email,
		"role":  string(user.Role),
	})
	return user, nil
}

// Login authenticates a staff user and returns a token pair
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput, ip string) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	tokenPair, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	if err := u.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		return nil, err
	}

	u.auditUC.Record(ctx, Actor{ID: &user.ID, Email: user.Email, IP: ip}, entities.AuditActionLogin, "user", user.ID.String(), nil)

	return &entities.AuthResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		User:         user,
	}, nil
}

// RefreshToken exchanges a valid refresh token for a new token pair
func (u *AuthUsecase) RefreshToken(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	claims, err := u.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	return u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
}

// ChangePassword changes the authenticated user's password
func (u *AuthUsecase) ChangePassword(ctx context.Context, userID uuid.UUID, input *entities.ChangePasswordInput) error {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !crypto.CheckPassword(input.CurrentPassword, user.PasswordHash) {
		return domainerrors.ErrInvalidCredentials
	}

	hash, err := crypto.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash

	if err := u.userRepo.Update(ctx, user); err != nil {
		return err
	}

	u.auditUC.Record(ctx, Actor{ID: &user.ID, Email: user.Email}, entities.AuditActionUpdate, "user", user.ID.String(), map[string]string{"field": "password"})
	return nil
}

// GetUserByID gets a staff user by ID
func (u *AuthUsecase) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

// ListUsers lists staff users with optional search
func (u *AuthUsecase) ListUsers(ctx context.Context, search string) ([]*entities.User, error) {
	return u.userRepo.List(ctx, search)
}

// DeactivateUser soft deletes a staff user
func (u *AuthUsecase) DeactivateUser(ctx context.Context, actor Actor, id uuid.UUID) error {
	if err := u.userRepo.SoftDelete(ctx, id); err != nil {
		return err
	}
	u.auditUC.Record(ctx, actor, entities.AuditActionDelete, "user", id.String(), nil)
	return nil
}
