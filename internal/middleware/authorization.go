package middleware

import (
	"net/http"

	"shopfront/internal/domain"

	"go.uber.org/zap"
)

// RequireRole ensures the authenticated user has one of the given roles.
// It must run after AuthMiddleware.
func RequireRole(logger *zap.Logger, allowedRoles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetClaims(r.Context())
			if !ok {
				logger.Warn("Claims not found in context")
				respondWithError(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			for _, role := range allowedRoles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			logger.Warn("User role not authorized",
				zap.String("role", string(claims.Role)),
				zap.String("path", r.URL.Path),
			)
			respondWithError(w, http.StatusForbidden, "insufficient permissions")
		})
	}
}

// RequireSeller allows only sellers and admins through. The seller dashboard
// endpoints sit behind this.
func RequireSeller(logger *zap.Logger) func(http.Handler) http.Handler {
	return RequireRole(logger, domain.RoleSeller, domain.RoleAdmin)
}
