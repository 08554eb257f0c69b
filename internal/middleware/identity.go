package middleware

import (
	"context"
	"net/http"

	"github.com/afyasync/afyasync/backend/internal/auth"
	"github.com/afyasync/afyasync/backend/pkg/utils"
)

type contextKey string

const identityKey contextKey = "identity"

// IdentityHeader carries the opaque identity token on every guarded route.
const IdentityHeader = "X-Identity"

// RequireIdentity rejects requests without a valid identity and binds the
// identity into the request context for handlers downstream.
func RequireIdentity(registry *auth.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := r.Header.Get(IdentityHeader)
			if !registry.Valid(identity) {
				utils.RespondError(w, http.StatusUnauthorized, "a valid identity is required")
				return
			}
			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext returns the identity bound by RequireIdentity.
func IdentityFromContext(ctx context.Context) string {
	identity, _ := ctx.Value(identityKey).(string)
	return identity
}
