package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/sonuudigital/storefront/internal/auth"
	"github.com/sonuudigital/storefront/internal/logs"
	"github.com/sonuudigital/storefront/internal/web"
)

type contextKey string

const userClaimsKey contextKey = "userClaims"

// AdminAuthMiddleware guards the admin dashboard routes: a valid bearer token
// with the admin role is required.
func AdminAuthMiddleware(jwtManager *auth.JWTManager, logger logs.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				web.RespondWithError(w, logger, http.StatusUnauthorized, "Missing authorization header.")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				web.RespondWithError(w, logger, http.StatusUnauthorized, "Invalid authorization header format.")
				return
			}

			claims, err := jwtManager.ValidateToken(parts[1])
			if err != nil {
				logger.Warn("invalid token", "error", err)
				web.RespondWithError(w, logger, http.StatusUnauthorized, "Invalid or expired token.")
				return
			}

			if claims.Role != auth.RoleAdmin {
				logger.Warn("token without admin role", "subject", claims.Subject)
				web.RespondWithError(w, logger, http.StatusForbidden, "Admin access required.")
				return
			}

			ctx := context.WithValue(r.Context(), userClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUserClaims(r *http.Request) (*auth.Claims, bool) {
	claims, ok := r.Context().Value(userClaimsKey).(*auth.Claims)
	return claims, ok
}
