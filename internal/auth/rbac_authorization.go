package auth

import (
	"net/http"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/transport"
	"github.com/frahmantamala/employee-management/internal/user"
	"github.com/frahmantamala/employee-management/pkg/logger"
)

// RequireRole lets the request through only when the principal holds one of roles.
// It must run after AuthMiddleware.
func RequireRole(roles ...user.Role) func(http.Handler) http.Handler {
	base := transport.NewBaseHandler(nil)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFromContext(r.Context())
			if !ok {
				logger.From(r.Context()).Warn("authorization check failed: principal not found in context")
				base.WriteAppError(w, internal.ErrMissingToken)
				return
			}

			if !principal.HasRole(roles...) {
				logger.From(r.Context()).Warn("access denied: role not permitted",
					"user_id", principal.ID,
					"role", principal.Role,
					"required_roles", roles)
				base.WriteAppError(w, internal.ErrForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func RequireAdmin() func(http.Handler) http.Handler {
	return RequireRole(user.RoleAdmin)
}
