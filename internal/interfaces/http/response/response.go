package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "tujenge.backend/internal/domain/errors"
	"tujenge.backend/pkg/utils"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Paginated sends a list response with paging metadata
func Paginated(c *gin.Context, items interface{}, total, limit, offset int) {
	c.JSON(http.StatusOK, gin.H{
		"items":      items,
		"total":      total,
		"limit":      limit,
		"offset":     offset,
		"totalPages": utils.TotalPages(int64(total), limit),
	})
}

// Error sends an error response, mapping AppError to its HTTP status.
// Bare domain sentinels fall back to a generic status for their kind.
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if e, ok := err.(*domainerrors.AppError); ok {
		appErr = e
	} else {
		appErr = mapSentinel(err)
	}

	c.JSON(appErr.Status, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}

func mapSentinel(err error) *domainerrors.AppError {
	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		return domainerrors.NotFound(err.Error())
	case errors.Is(err, domainerrors.ErrInvalidCredentials):
		return domainerrors.Unauthorized("invalid email or password")
	case errors.Is(err, domainerrors.ErrInvalidPhoneNumber),
		errors.Is(err, domainerrors.ErrInvalidNIDANumber),
		errors.Is(err, domainerrors.ErrInvalidLoanStatus),
		errors.Is(err, domainerrors.ErrAmountExceedsBalance),
		errors.Is(err, domainerrors.ErrProductInactive),
		errors.Is(err, domainerrors.ErrInvalidInput):
		return domainerrors.BadRequest("BAD_REQUEST", err.Error())
	case errors.Is(err, domainerrors.ErrPhoneNumberTaken),
		errors.Is(err, domainerrors.ErrNIDANumberTaken),
		errors.Is(err, domainerrors.ErrEmailTaken),
		errors.Is(err, domainerrors.ErrAlreadyExists):
		return domainerrors.Conflict("CONFLICT", err.Error())
	case errors.Is(err, domainerrors.ErrForbidden):
		return domainerrors.Forbidden(err.Error())
	case errors.Is(err, domainerrors.ErrUnauthorized):
		return domainerrors.Unauthorized(err.Error())
	default:
		return domainerrors.InternalError(err)
	}
}
