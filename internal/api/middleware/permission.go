package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/paroquia-sj/crisma-system/internal/api/metrics"
	"github.com/paroquia-sj/crisma-system/internal/core/domain"
	"github.com/paroquia-sj/crisma-system/internal/core/ports"
)

// RequirePermission gates a route on the caller holding at least one of the
// listed permissions ("any of", not "all of"). The permission set is
// resolved live from the database on every request, so revoking a group or
// deactivating a user takes effect on the very next call even while the
// token itself is still valid.
func RequirePermission(resolver ports.PermissionResolver, required ...domain.Permission) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, _ := c.Get(IdentityKey).(*domain.Identity)
			if identity == nil || identity.UserID == "" {
				return domain.ErrUnauthenticated
			}

			perms := resolver.Resolve(c.Request().Context(), identity.UserID)
			if !perms.ContainsAny(required...) {
				metrics.PermissionChecksTotal.WithLabelValues("denied").Inc()
				return domain.ErrPermissionDenied
			}

			metrics.PermissionChecksTotal.WithLabelValues("granted").Inc()
			return next(c)
		}
	}
}
