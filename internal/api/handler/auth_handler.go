package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/paroquia-sj/crisma-system/internal/api/metrics"
	"github.com/paroquia-sj/crisma-system/internal/core/domain"
	"github.com/paroquia-sj/crisma-system/internal/core/ports"
	"github.com/paroquia-sj/crisma-system/internal/infrastructure/db/redis"
)

type AuthHandler struct {
	authService ports.AuthService
	users       ports.UserRepository
	resolver    ports.PermissionResolver
	throttle    *redis.LoginThrottle
}

func NewAuthHandler(authService ports.AuthService, users ports.UserRepository, resolver ports.PermissionResolver, throttle *redis.LoginThrottle) *AuthHandler {
	return &AuthHandler{authService: authService, users: users, resolver: resolver, throttle: throttle}
}

type loginRequest struct {
	Login    string `json:"usuario"`
	Password string `json:"senha"`
}

type userView struct {
	ID          string              `json:"id"`
	Login       string              `json:"usuario"`
	Name        string              `json:"nome"`
	Permissions []domain.Permission `json:"permissions"`
}

type loginResponse struct {
	Token string   `json:"token"`
	User  userView `json:"usuario"`
}

// Login authenticates a login/password pair and returns a session token plus
// the freshly resolved permission set.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      401   {object}  envelope
// @Failure      429   {object}  envelope
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Requisição inválida")
	}
	if req.Login == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, "Usuário e senha são obrigatórios")
	}

	ctx := c.Request().Context()

	if h.throttle != nil {
		blocked, err := h.throttle.Blocked(ctx, req.Login)
		if err == nil && blocked {
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
			return domain.ErrTooManyAttempts
		}
	}

	token, user, err := h.authService.Login(ctx, req.Login, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			if h.throttle != nil {
				_ = h.throttle.RecordFailure(ctx, req.Login)
			}
		} else {
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	if h.throttle != nil {
		_ = h.throttle.Reset(ctx, req.Login)
	}
	metrics.LoginsTotal.WithLabelValues("ok").Inc()

	return respond(c, http.StatusOK, "Login realizado com sucesso", loginResponse{
		Token: token,
		User: userView{
			ID:          user.ID,
			Login:       user.Login,
			Name:        user.Name,
			Permissions: h.resolver.Resolve(ctx, user.ID).Sorted(),
		},
	})
}

// VerifyToken re-checks the caller's account and returns fresh identity and
// permissions. The token was already validated by the Auth middleware; this
// endpoint confirms the account is still present and active.
//
// @Summary      Verify session token
// @Tags         auth
// @Produce      json
// @Success      200  {object}  envelope
// @Failure      401  {object}  envelope
// @Failure      403  {object}  envelope
// @Router       /verify-token [get]
func (h *AuthHandler) VerifyToken(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	user, err := h.users.FindByID(ctx, identity.UserID)
	if err != nil || !user.Active {
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		return fail(c, http.StatusUnauthorized, "Usuário não encontrado")
	}

	return respond(c, http.StatusOK, "Token válido", map[string]userView{
		"usuario": {
			ID:          user.ID,
			Login:       user.Login,
			Name:        user.Name,
			Permissions: h.resolver.Resolve(ctx, user.ID).Sorted(),
		},
	})
}
