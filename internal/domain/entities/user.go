package entities

import (
	"time"

	"github.com/google/uuid"
)

// UserRole represents staff roles in the back office
type UserRole string

const (
	UserRoleAdmin               UserRole = "admin"
	UserRoleLoanOfficer         UserRole = "loan_officer"
	UserRoleDisbursementOfficer UserRole = "disbursement_officer"
	UserRoleTeller              UserRole = "teller"
)

// User represents a staff user entity
type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	FullName     string     `json:"fullName"`
	PhoneNumber  string     `json:"phoneNumber"`
	PasswordHash string     `json:"-"`
	Role         UserRole   `json:"role"`
	Branch       string     `json:"branch,omitempty"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	DeletedAt    *time.Time `json:"-"`
}

// RegisterUserInput represents input for creating a staff user
type RegisterUserInput struct {
	Email       string   `json:"email" binding:"required,email"`
	FullName    string   `json:"fullName" binding:"required,min=2,max=200"`
	PhoneNumber string   `json:"phoneNumber" binding:"required"`
	Password    string   `json:"password" binding:"required,min=8"`
	Role        UserRole `json:"role" binding:"required"`
	Branch      string   `json:"branch,omitempty"`
}

// LoginInput represents input for staff login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshInput carries a refresh token
type RefreshInput struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user"`
}

// ChangePasswordInput represents input for changing a password
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required,min=8"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}
