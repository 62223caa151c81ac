package middleware

import (
	"context"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// identityKey is the key used to store the authenticated identity in the request context.
const identityKey = contextKey("identity")

// WithIdentity returns a copy of ctx carrying identity.
func WithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromCtx retrieves the authenticated identity from a standard context.
func IdentityFromCtx(ctx context.Context) (domain.Identity, bool) {
	if ctx == nil {
		return domain.Identity{}, false
	}
	identity, ok := ctx.Value(identityKey).(domain.Identity)
	return identity, ok
}

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	identity, ok := IdentityFromCtx(c.Request.Context())
	if !ok || identity.UserID == "" {
		return "", false
	}
	return identity.UserID, true
}
