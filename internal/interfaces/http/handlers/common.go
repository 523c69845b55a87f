package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	domainerrors "tujenge.backend/internal/domain/errors"
	"tujenge.backend/internal/interfaces/http/middleware"
	"tujenge.backend/internal/usecases"
	"tujenge.backend/pkg/utils"
)

// actorFrom builds the audit actor from the authenticated request
func actorFrom(c *gin.Context) usecases.Actor {
	actor := usecases.Actor{IP: c.ClientIP()}
	if id, ok := middleware.GetUserID(c); ok {
		actor.ID = &id
	}
	if email, ok := middleware.GetUserEmail(c); ok {
		actor.Email = email
	}
	return actor
}

// pagination reads limit and offset query params with sane bounds
func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(utils.DefaultPageSize)))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	return utils.ClampLimit(limit), utils.ClampOffset(offset)
}

// uuidParam parses a UUID path parameter
func uuidParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerrors.BadRequest("INVALID_ID", "invalid "+name+" parameter")
	}
	return id, nil
}
