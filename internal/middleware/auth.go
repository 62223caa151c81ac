package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/expense_tracker_app/internal/apperrors"
	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	"github.com/SscSPs/expense_tracker_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// SessionChecker resolves a session id from a token to a live identity.
type SessionChecker interface {
	ValidateSession(ctx context.Context, sessionID, userID string) (*domain.Identity, error)
}

// AuthMiddleware creates a Gin middleware handler that validates JWT tokens
// and requires the session they name to still be live.
func AuthMiddleware(jwtSecret string, sessions SessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims, err := utils.ParseAndValidateJWT(parts[1], jwtSecret)
		if err != nil {
			logger.Warn("Invalid token", slog.String("error", err.Error()))
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		if claims.Subject == "" || claims.ID == "" {
			logger.Error("Subject or session id missing from valid token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		identity, err := sessions.ValidateSession(c.Request.Context(), claims.ID, claims.Subject)
		if err != nil {
			if !errors.Is(err, apperrors.ErrUnauthorized) {
				// the session may still be live; do not sign the user out over a store failure
				logger.Error("Failed to validate session", slog.String("session_id", claims.ID), slog.String("error", err.Error()))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not verify your session. Please try again."})
				return
			}
			logger.Warn("Session is not live", slog.String("session_id", claims.ID), slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session has ended, please sign in again"})
			return
		}

		enrichedLogger := logger.With(slog.String("user_id", identity.UserID))
		ctx := WithIdentity(c.Request.Context(), *identity)
		ctx = WithLogger(ctx, enrichedLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
