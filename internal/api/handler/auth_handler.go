package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/alertaclimatica/news-api/internal/api/middleware"
	"github.com/alertaclimatica/news-api/internal/core/domain"
	"github.com/alertaclimatica/news-api/internal/core/ports"
)

// AuthHandler handles registration, login and the profile/verify endpoints.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registroRequest struct {
	Nombre   string `json:"nombre"   validate:"required,min=2,max=50"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,password"`
	Rol      string `json:"rol"      validate:"omitempty,oneof=admin editor"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authData struct {
	Token   string            `json:"token"`
	Usuario domain.PublicUser `json:"usuario"`
}

// Registro creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registroRequest  true  "User registration details"
// @Success      201   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      500   {object}  envelope
// @Router       /api/auth/registro [post]
func (h *AuthHandler) Registro(c echo.Context) error {
	var req registroRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "payload inválido")
	}
	if err := c.Validate(&req); err != nil {
		return validationResponse(c, err)
	}

	req.Nombre = middleware.SanitizeString(req.Nombre)

	token, user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Nombre:   req.Nombre,
		Email:    req.Email,
		Password: req.Password,
		Rol:      req.Rol,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailRegistered) {
			return respondError(c, http.StatusBadRequest, domain.ErrEmailRegistered.Error())
		}
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
		return err
	}

	return respondData(c, http.StatusCreated, "Usuario registrado exitosamente", authData{
		Token:   token,
		Usuario: user.Public(),
	})
}

// Login authenticates a user and returns a bearer token.
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
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "payload inválido")
	}
	if err := c.Validate(&req); err != nil {
		return validationResponse(c, err)
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUserInactive) {
			return respondError(c, http.StatusUnauthorized, "Usuario inactivo. Contacta al administrador.")
		}
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return respondError(c, http.StatusUnauthorized, "Credenciales inválidas")
		}
		return err
	}

	return respondData(c, http.StatusOK, "Login exitoso", authData{
		Token:   token,
		Usuario: user.Public(),
	})
}

// Perfil returns the authenticated user's account.
//
// @Summary      Current user profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Failure      401  {object}  envelope
// @Router       /api/auth/perfil [get]
func (h *AuthHandler) Perfil(c echo.Context) error {
	user, err := ctxUsuario(c)
	if err != nil {
		return err
	}

	// Re-read so the profile reflects the stored record, not the token.
	fresh, err := h.authService.Profile(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}

	return respondData(c, http.StatusOK, "", fresh.Public())
}

// Verificar confirms the presented token is valid and returns its user.
//
// @Summary      Verify token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Failure      401  {object}  envelope
// @Router       /api/auth/verificar [get]
func (h *AuthHandler) Verificar(c echo.Context) error {
	user, err := ctxUsuario(c)
	if err != nil {
		return err
	}

	return respondData(c, http.StatusOK, "Token válido", map[string]domain.PublicUser{
		"usuario": user.Public(),
	})
}

// validationResponse renders a *ValidationError as the 400 field-list
// envelope; any other error passes through to the central error handler.
func validationResponse(c echo.Context, err error) error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return respondValidation(c, http.StatusBadRequest, ve.Errores)
	}
	return err
}
