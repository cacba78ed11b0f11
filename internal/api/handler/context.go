package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/alertaclimatica/news-api/internal/api/middleware"
	"github.com/alertaclimatica/news-api/internal/core/domain"
)

// ctxUsuario extracts the user attached by the Auth middleware. Its presence
// proves the middleware ran; a protected handler reached without it rejects
// with 401.
func ctxUsuario(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.UsuarioKey).(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "No autorizado - Token no proporcionado")
	}
	return user, nil
}
