package handler

import (
	"pix-credit-service/internal/adapter/http/middleware"
	"pix-credit-service/internal/core/ports"
	"pix-credit-service/pkg/apperror"
	"pix-credit-service/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// actor returns the authenticated caller, writing a 401 when absent.
func actor(c *gin.Context) (ports.Actor, bool) {
	a, ok := middleware.ActorFrom(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
	}
	return a, ok
}

// chargeID parses the :id path parameter, writing a 400 when malformed.
func chargeID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid charge id"))
		return uuid.Nil, false
	}
	return id, true
}
