package middleware

import (
	"context"

	"github.com/angelmondragon/storefront/internal/session"
)

type contextKey string

const ctxIdentity contextKey = "identity"

// IdentityFromContext returns the identity attached by the Identity middleware.
func IdentityFromContext(ctx context.Context) session.Identity {
	if ctx == nil {
		return session.Identity{}
	}
	if v, ok := ctx.Value(ctxIdentity).(session.Identity); ok {
		return v
	}
	return session.Identity{}
}

// WithIdentity injects the session identity into the context.
func WithIdentity(ctx context.Context, identity session.Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxIdentity, identity)
}
