package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"taskreg/internal/app/authz"
	"taskreg/internal/common"
	"taskreg/internal/domain/model"
)

type contextKey string

const identityCtxKey contextKey = "identity"

// SessionResolver is the slice of SessionService the middleware needs.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (model.Identity, error)
}

// TokenFromRequest extracts the bearer token, or "" when absent.
func TokenFromRequest(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Authenticator resolves the request's session into an identity and stores
// it in the context. A missing or stale session gets 401; a session-store or
// database outage gets 500, never a 401.
func Authenticator(sessions SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			identity, err := sessions.Resolve(r.Context(), token)
			if err != nil {
				if errors.Is(err, common.ErrUnauthenticated) {
					common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
				} else {
					common.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
				}
				return
			}

			ctx := context.WithValue(r.Context(), identityCtxKey, &identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireTier gates a route group on the authorization gate. Must run after
// Authenticator.
func RequireTier(tier authz.Tier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, _ := IdentityFromContext(r.Context())
			if err := authz.Authorize(identity, tier); err != nil {
				common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// IdentityFromContext returns the resolved identity, if any.
func IdentityFromContext(ctx context.Context) (*model.Identity, bool) {
	identity, ok := ctx.Value(identityCtxKey).(*model.Identity)
	return identity, ok
}
