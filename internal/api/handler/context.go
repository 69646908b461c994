package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/paroquia-sj/crisma-system/internal/api/middleware"
	"github.com/paroquia-sj/crisma-system/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware.
// Its presence proves the authentication stage ran; a handler reached
// without it answers 401 before any service call.
func ctxIdentity(c echo.Context) (*domain.Identity, error) {
	identity, _ := c.Get(middleware.IdentityKey).(*domain.Identity)
	if identity == nil || identity.UserID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return identity, nil
}
