package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/paroquia-sj/crisma-system/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"success": false, "message": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Success: false, Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Credenciais inválidas"
	case errors.Is(err, domain.ErrMissingToken):
		return http.StatusUnauthorized, "Token de acesso requerido"
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusForbidden, "Token inválido"
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "Usuário não autenticado"
	case errors.Is(err, domain.ErrPermissionDenied):
		return http.StatusForbidden, "Permissão insuficiente para acessar este recurso"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, "Muitas tentativas de login. Tente novamente mais tarde"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "Usuário não encontrado"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusBadRequest, "Usuário já existe"
	case errors.Is(err, domain.ErrGroupNotFound):
		return http.StatusNotFound, "Grupo não encontrado"
	case errors.Is(err, domain.ErrGroupExists):
		return http.StatusBadRequest, "Grupo já existe"
	case errors.Is(err, domain.ErrUnknownPermission):
		return http.StatusBadRequest, "Permissão desconhecida"
	case errors.Is(err, domain.ErrSpotNotFound):
		return http.StatusNotFound, "Spot não encontrado"
	case errors.Is(err, domain.ErrSpotOrderTaken):
		return http.StatusBadRequest, "Já existe um spot com esta ordem"
	case errors.Is(err, domain.ErrEnrollmentNotFound):
		return http.StatusNotFound, "Inscrição não encontrada"
	case errors.Is(err, domain.ErrInvalidStatus):
		return http.StatusBadRequest, "Status inválido"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Erro interno do servidor"
}
