package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/alertaclimatica/news-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors. Detalles
// is only populated outside production mode.
type errorResponse struct {
	Success  bool   `json:"success"`
	Error    string `json:"error"`
	Detalles string `json:"detalles,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client
//     in production mode.
//   - Renders a consistent JSON envelope: {"success": false, "error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger, env string) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg, detail := resolveError(err, log, c, env)
		_ = c.JSON(code, errorResponse{Success: false, Error: msg, Detalles: detail})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context, env string) (int, string, string) {
	// Echo's own errors (bind failures, 404 from the router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code == http.StatusNotFound {
			return he.Code, "Ruta no encontrada", ""
		}
		return he.Code, fmt.Sprintf("%v", he.Message), ""
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrNoticiaNotFound):
		return http.StatusNotFound, "Noticia no encontrada", ""
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "acceso no autorizado", ""
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Credenciales inválidas", ""
	case errors.Is(err, domain.ErrUserInactive):
		return http.StatusUnauthorized, "Usuario inactivo. Contacta al administrador.", ""
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "Usuario no encontrado", ""
	case errors.Is(err, domain.ErrEmailRegistered):
		return http.StatusBadRequest, "El email ya está registrado", ""
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	detail := ""
	if env != "production" {
		detail = err.Error()
	}
	return http.StatusInternalServerError, "Error interno del servidor", detail
}
