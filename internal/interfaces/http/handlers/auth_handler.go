package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"tujenge.backend/internal/domain/entities"
	domainerrors "tujenge.backend/internal/domain/errors"
	"tujenge.backend/internal/interfaces/http/middleware"
	"tujenge.backend/internal/interfaces/http/response"
	"tujenge.backend/internal/usecases"
)

// AuthHandler handles staff authentication endpoints
type AuthHandler struct {
	authUsecase *usecases.AuthUsecase
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase *usecases.AuthUsecase) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase}
}

// Register creates a staff account
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input entities.RegisterUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("VALIDATION_ERROR", err.Error()))
		return
	}

	user, err := h.authUsecase.Register(c.Request.Context(), actorFrom(c), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, user)
}

// Login authenticates a staff user
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("VALIDATION_ERROR", err.Error()))
		return
	}

	auth, err := h.authUsecase.Login(c.Request.Context(), &input, c.ClientIP())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, auth)
}

// Refresh exchanges a refresh token for a new pair
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var input entities.RefreshInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("VALIDATION_ERROR", err.Error()))
		return
	}

	pair, err := h.authUsecase.RefreshToken(c.Request.Context(), input.RefreshToken)
	if err != nil {
		response.Error(c, domainerrors.Unauthorized("invalid refresh token"))
		return
	}

	response.Success(c, http.StatusOK, pair)
}

// Me returns the authenticated staff profile
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("not authenticated"))
		return
	}

	user, err := h.authUsecase.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}

// ChangePassword updates the authenticated staff password
// POST /api/v1/auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("not authenticated"))
		return
	}

	var input entities.ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("VALIDATION_ERROR", err.Error()))
		return
	}

	if err := h.authUsecase.ChangePassword(c.Request.Context(), userID, &input); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Password changed"})
}

// ListUsers lists staff users
// GET /api/v1/users
func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.authUsecase.ListUsers(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"items": users})
}

// DeactivateUser soft deletes a staff user
// DELETE /api/v1/users/:id
func (h *AuthHandler) DeactivateUser(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.authUsecase.DeactivateUser(c.Request.Context(), actorFrom(c), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "User deactivated"})
}
