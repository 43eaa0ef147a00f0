package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"joywork.app/api/common/id"
	"joywork.app/api/common/logger"
	"joywork.app/api/internal/service"
)

const (
	SessionCookieName = "joywork_session"
	SessionIDHeader   = "X-Session-ID"

	userIDKey = "user_id"
)

// RequireSession resolves the caller from the session cookie or the
// X-Session-ID header and stores the user id on the gin context.
func RequireSession(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		raw, err := c.Cookie(SessionCookieName)
		if err != nil || raw == "" {
			raw = c.GetHeader(SessionIDHeader)
		}
		if raw == "" {
			unauthenticated(c, "authentication required")
			return
		}

		sessionID, err := id.Parse(raw)
		if err != nil {
			unauthenticated(c, "invalid session")
			return
		}

		user, err := auth.ValidateSession(ctx, sessionID)
		if err != nil {
			if errors.Is(err, service.ErrSessionExpired) || errors.Is(err, service.ErrUserNotFound) {
				unauthenticated(c, "session expired")
				return
			}
			slog.ErrorContext(ctx, "failed to validate session", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "failed to validate session",
				"code":  "internal_error",
			})
			return
		}

		c.Set(userIDKey, user.ID)
		c.Request = c.Request.WithContext(logger.WithLogFields(ctx, logger.LogFields{UserID: &user.ID}))
		c.Next()
	}
}

// UserID returns the caller set by RequireSession.
func UserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	userID, ok := v.(int64)
	return userID, ok
}

func unauthenticated(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": msg,
		"code":  "unauthenticated",
	})
}
