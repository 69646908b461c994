package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/paroquia-sj/crisma-system/internal/core/domain"
	"github.com/paroquia-sj/crisma-system/internal/core/ports"
)

// SignupGate guards user creation. While the bootstrap window is open (no
// accounts yet, or only the default admin) the request passes without a
// token; once a second distinct account exists the full authentication and
// permission pipeline applies. The window state is re-checked on every
// request, never cached.
func SignupGate(users ports.UserService, verifier ports.AuthService, resolver ports.PermissionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		gated := Auth(verifier)(RequirePermission(resolver, domain.PermUsersCreate, domain.PermAdmin)(next))
		return func(c echo.Context) error {
			if users.SignupOpen(c.Request().Context()) {
				return next(c)
			}
			return gated(c)
		}
	}
}
