package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/paroquia-sj/crisma-system/internal/api/metrics"
	"github.com/paroquia-sj/crisma-system/internal/core/domain"
	"github.com/paroquia-sj/crisma-system/internal/core/ports"
)

// IdentityKey is the echo context key holding the *domain.Identity decoded
// from the session token.
const IdentityKey = "identity"

// Auth validates the bearer token and injects the decoded identity into the
// request context. A missing token answers 401, a bad or expired one 403;
// both stop the pipeline before any resolver or handler runs. The status
// codes and messages come from the central error handler mapping.
func Auth(verifier ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request().Header.Get("Authorization"))
			if token == "" {
				metrics.TokenVerificationsTotal.WithLabelValues("missing").Inc()
				return domain.ErrMissingToken
			}

			identity, err := verifier.VerifyToken(token)
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
				return domain.ErrInvalidToken
			}

			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()
			c.Set(IdentityKey, identity)
			return next(c)
		}
	}
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
