package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound             = errors.New("resource not found")
	ErrAlreadyExists        = errors.New("resource already exists")
	ErrInvalidInput         = errors.New("invalid input")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrTokenExpired         = errors.New("token expired")
	ErrPhoneNumberTaken     = errors.New("phone number already registered")
	ErrNIDANumberTaken      = errors.New("nida number already registered")
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidPhoneNumber   = errors.New("invalid tanzania phone number")
	ErrInvalidNIDANumber    = errors.New("invalid nida number")
	ErrCustomerNotEligible  = errors.New("customer not eligible for a loan")
	ErrMaxActiveLoans       = errors.New("customer has reached the active loan limit")
	ErrInvalidLoanStatus    = errors.New("operation not allowed in current loan status")
	ErrAmountExceedsBalance = errors.New("amount exceeds outstanding balance")
	ErrProductInactive      = errors.New("loan product is not active")
)

// AppError represents an application error with an HTTP status
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, "NOT_FOUND", message, ErrNotFound)
}

func BadRequest(code, message string) *AppError {
	return NewAppError(http.StatusBadRequest, code, message, ErrInvalidInput)
}

func Conflict(code, message string) *AppError {
	return NewAppError(http.StatusConflict, code, message, ErrAlreadyExists)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, "UNAUTHORIZED", message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, "FORBIDDEN", message, ErrForbidden)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error", err)
}
