package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/betledger/betledger/internal/apperr"
	"github.com/betledger/betledger/internal/auth"
)

type ctxKey int

const identityKey ctxKey = iota

// IdentityFrom returns the verified caller identity placed by RequireAuth.
func IdentityFrom(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey).(auth.Identity)

	return id, ok
}

// RequireAuth verifies the bearer token and injects the identity into the
// request context. 401 on missing, malformed, invalid or expired tokens.
func RequireAuth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeError(w, http.StatusUnauthorized, "missing Authorization header")
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
				writeError(w, http.StatusUnauthorized, "invalid Authorization header")
				return
			}

			id, err := auth.VerifyToken(strings.TrimSpace(parts[1]), jwtSecret)
			if err != nil {
				if errors.Is(err, auth.ErrTokenExpired) {
					writeError(w, http.StatusUnauthorized, "token expired")
					return
				}

				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// adminChecker is what RequireAdmin needs from the accounts service.
type adminChecker interface {
	IsAdmin(ctx context.Context, userID int64) (bool, error)
}

// RequireAdmin gates admin-only routes on the stored is_admin flag.
// Mount after RequireAuth. 403 when the user is absent or not an admin,
// 500 only when the lookup itself fails.
func RequireAdmin(accounts adminChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFrom(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			isAdmin, err := accounts.IsAdmin(r.Context(), id.UserID)
			if err != nil {
				// Missing user row means no admin rights, not a server fault.
				if apperr.KindOf(err) == apperr.KindNotFound {
					writeError(w, http.StatusForbidden, "admin access required")
					return
				}

				writeDomainError(w, err, http.StatusConflict)
				return
			}

			if !isAdmin {
				writeError(w, http.StatusForbidden, "admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
