package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"joywork.app/api/internal/http/dto"
	"joywork.app/api/internal/http/middleware"
	"joywork.app/api/internal/service"
)

// writeError maps service error kinds to HTTP responses. Anything it does
// not recognise is logged and reported as a 500 without details.
func writeError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: verr.Error(),
			Code:  "validation_failed",
			Field: verr.Field,
		})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error(), Code: "not_found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: err.Error(), Code: "forbidden"})
	case errors.Is(err, service.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{Error: err.Error(), Code: "rate_limited"})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error(), Code: "conflict"})
	default:
		slog.ErrorContext(ctx, "request failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error", Code: "internal_error"})
	}
}

func badRequest(c *gin.Context, err error) {
	slog.WarnContext(c.Request.Context(), "invalid request", "error", err)
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error(), Code: "invalid_request"})
}

// currentUser reads the caller set by middleware.RequireSession.
func currentUser(c *gin.Context) (int64, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "authentication required", Code: "unauthenticated"})
		return 0, false
	}
	return userID, true
}
