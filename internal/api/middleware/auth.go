package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/alertaclimatica/news-api/internal/core/domain"
	"github.com/alertaclimatica/news-api/internal/core/ports"
)

// UsuarioKey is the echo context key under which Auth stores the resolved
// *domain.User.
const UsuarioKey = "usuario"

// Auth validates the bearer token, resolves the referenced user and injects
// it into the request context. Requests with a missing, malformed, expired or
// unverifiable token are rejected, as are tokens for deleted or inactive
// accounts.
func Auth(tokens ports.TokenService, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return unauthorized(c, "No autorizado - Token no proporcionado")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return unauthorized(c, "No autorizado - Token no proporcionado")
			}

			userID, err := tokens.Verify(parts[1])
			if err != nil {
				if errors.Is(err, domain.ErrTokenExpired) {
					return unauthorized(c, "Token expirado")
				}
				return unauthorized(c, "Token inválido")
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return unauthorized(c, "Usuario no encontrado")
				}
				return err
			}
			if !user.Activo {
				return unauthorized(c, "Usuario inactivo")
			}

			c.Set(UsuarioKey, user)

			return next(c)
		}
	}
}

// RequireRoles enforces role-based access control over the user attached by
// Auth. The response names the caller's actual role.
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := c.Get(UsuarioKey).(*domain.User)
			if user == nil {
				return unauthorized(c, "No autorizado - Token no proporcionado")
			}
			if _, ok := allowed[user.Rol]; !ok {
				return c.JSON(http.StatusForbidden, map[string]interface{}{
					"success": false,
					"error":   "Rol " + user.Rol + " no autorizado para acceder a este recurso",
				})
			}
			return next(c)
		}
	}
}

func unauthorized(c echo.Context, msg string) error {
	return c.JSON(http.StatusUnauthorized, map[string]interface{}{
		"success": false,
		"error":   msg,
	})
}
