// internal/api/middleware.go
package api

import (
	"log/slog"
	"net/http"
	"strings"

	"sportsbook/internal/domain"
	"sportsbook/internal/service"
	"sportsbook/internal/util"
)

// RequireAuth verifies the bearer token and attaches the resulting identity
// to the request context.
func RequireAuth(auth service.AuthService, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token := ""
			if strings.HasPrefix(header, "Bearer ") {
				token = strings.TrimPrefix(header, "Bearer ")
			}
			if token == "" {
				writeAuthError(logger, w, http.StatusUnauthorized, util.ErrMissingToken.Error())
				return
			}

			identity, err := auth.VerifyToken(token)
			if err != nil {
				writeAuthError(logger, w, http.StatusUnauthorized, util.ErrInvalidToken.Error())
				return
			}

			ctx := service.ContextWithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects non-admin identities. Must run after RequireAuth.
func RequireAdmin(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := service.IdentityFromContext(r.Context())
			if identity == nil || identity.Role != domain.RoleAdmin {
				writeAuthError(logger, w, http.StatusForbidden, util.ErrAdminRequired.Error())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeAuthError(logger *slog.Logger, w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write([]byte(`{"error":"` + message + `"}`)); err != nil {
		logger.Error("Failed to write auth error response", "error", err)
	}
}
