package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/opsdesk/caseflow_app/internal/core/domain"
)

// identityKey holds the authenticated actor's resolved identity
// (user ID, email, role) in the request context.
const identityKey = contextKey("identity")

// WithIdentity returns a context carrying the resolved acting identity.
func WithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// GetIdentityFromCtx retrieves the authenticated identity from a standard
// context. The boolean reports whether an identity was present.
func GetIdentityFromCtx(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(domain.Identity)
	return identity, ok
}

// GetIdentityFromContext retrieves the authenticated identity from the Gin
// request context.
func GetIdentityFromContext(c *gin.Context) (domain.Identity, bool) {
	return GetIdentityFromCtx(c.Request.Context())
}
