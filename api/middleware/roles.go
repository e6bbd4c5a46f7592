package middleware

import (
	"net/http"

	"github.com/angelmondragon/storefront/api/responses"
	"github.com/angelmondragon/storefront/internal/session"
	"github.com/angelmondragon/storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
)

// Identity resolves the current session identity once per request and
// tags the request logger with its kind.
func Identity(provider session.Provider, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			identity := provider.CurrentIdentity(ctx)
			if logg != nil && identity.SignedIn() {
				ctx = logg.WithIdentityKind(ctx, string(identity.Kind))
				if v, ok := identity.VendorProfile(); ok {
					ctx = logg.WithVendorID(ctx, v.ID)
				}
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(ctx, identity)))
		})
	}
}

// RequireKind rejects requests whose identity is not of the given kind.
func RequireKind(kind enums.IdentityKind, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := IdentityFromContext(r.Context())
			if !identity.SignedIn() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in required"))
				return
			}
			if identity.Kind != kind {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, string(kind)+" identity required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
