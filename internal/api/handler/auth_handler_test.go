package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/alertaclimatica/news-api/internal/api/middleware"
	"github.com/alertaclimatica/news-api/internal/core/domain"
	"github.com/alertaclimatica/news-api/internal/core/ports"
)

type stubAuthService struct {
	registerInput ports.RegisterInput
	registerErr   error
	loginErr      error
	user          *domain.User
}

func (s *stubAuthService) Register(_ context.Context, input ports.RegisterInput) (string, *domain.User, error) {
	s.registerInput = input
	if s.registerErr != nil {
		return "", nil, s.registerErr
	}
	return "issued-token", s.user, nil
}

func (s *stubAuthService) Login(_ context.Context, _, _ string) (string, *domain.User, error) {
	if s.loginErr != nil {
		return "", nil, s.loginErr
	}
	return "issued-token", s.user, nil
}

func (s *stubAuthService) Profile(_ context.Context, _ string) (*domain.User, error) {
	return s.user, nil
}

func newAuthContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func activeUser() *domain.User {
	return &domain.User{
		ID:     "u1",
		Nombre: "Alicia",
		Email:  "alicia@example.com",
		Rol:    domain.RolEditor,
		Activo: true,
	}
}

func TestAuthHandler_Registro_Success(t *testing.T) {
	svc := &stubAuthService{user: activeUser()}
	h := NewAuthHandler(svc)

	c, rec := newAuthContext(http.MethodPost, "/api/auth/registro",
		`{"nombre":"Alicia","email":"alicia@example.com","password":"clave123"}`)
	if err := h.Registro(c); err != nil {
		t.Fatalf("Registro returned error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	out := decodeEnvelope(t, rec)
	if out["success"] != true {
		t.Fatalf("expected success true: %v", out)
	}
	if out["mensaje"] != "Usuario registrado exitosamente" {
		t.Fatalf("unexpected mensaje: %v", out["mensaje"])
	}
	data := out["data"].(map[string]interface{})
	if data["token"] != "issued-token" {
		t.Fatalf("expected token in response, got %v", data["token"])
	}
	usuario := data["usuario"].(map[string]interface{})
	if usuario["email"] != "alicia@example.com" {
		t.Fatalf("unexpected usuario: %v", usuario)
	}
	if _, ok := usuario["password"]; ok {
		t.Fatalf("password leaked into response")
	}
}

func TestAuthHandler_Registro_ValidationErrors(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{user: activeUser()})

	// Password lacks a digit, nombre too short, email malformed.
	c, rec := newAuthContext(http.MethodPost, "/api/auth/registro",
		`{"nombre":"A","email":"no-es-email","password":"soloLetras"}`)
	if err := h.Registro(c); err != nil {
		t.Fatalf("Registro returned error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	out := decodeEnvelope(t, rec)
	errores, ok := out["errores"].([]interface{})
	if !ok || len(errores) != 3 {
		t.Fatalf("expected 3 field errors, got %v", out["errores"])
	}
}

func TestAuthHandler_Registro_SanitizesNombre(t *testing.T) {
	svc := &stubAuthService{user: activeUser()}
	h := NewAuthHandler(svc)

	c, _ := newAuthContext(http.MethodPost, "/api/auth/registro",
		`{"nombre":"Ali{$where}cia","email":"alicia@example.com","password":"clave123"}`)
	if err := h.Registro(c); err != nil {
		t.Fatalf("Registro returned error: %v", err)
	}

	if svc.registerInput.Nombre != "Aliwherecia" {
		t.Fatalf("expected sanitized nombre, got %q", svc.registerInput.Nombre)
	}
}

func TestAuthHandler_Registro_DuplicateEmail(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{registerErr: domain.ErrEmailRegistered})

	c, rec := newAuthContext(http.MethodPost, "/api/auth/registro",
		`{"nombre":"Alicia","email":"alicia@example.com","password":"clave123"}`)
	if err := h.Registro(c); err != nil {
		t.Fatalf("Registro returned error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	out := decodeEnvelope(t, rec)
	if out["success"] != false {
		t.Fatalf("expected success false: %v", out)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{user: activeUser()})

	c, rec := newAuthContext(http.MethodPost, "/api/auth/login",
		`{"email":"alicia@example.com","password":"clave123"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	out := decodeEnvelope(t, rec)
	if out["mensaje"] != "Login exitoso" {
		t.Fatalf("unexpected mensaje: %v", out["mensaje"])
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{loginErr: domain.ErrInvalidCredentials})

	c, rec := newAuthContext(http.MethodPost, "/api/auth/login",
		`{"email":"alicia@example.com","password":"incorrecta"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Credenciales inválidas") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthHandler_Login_Inactive(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{loginErr: domain.ErrUserInactive})

	c, rec := newAuthContext(http.MethodPost, "/api/auth/login",
		`{"email":"alicia@example.com","password":"clave123"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Usuario inactivo") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthHandler_Perfil(t *testing.T) {
	user := activeUser()
	h := NewAuthHandler(&stubAuthService{user: user})

	c, rec := newAuthContext(http.MethodGet, "/api/auth/perfil", "")
	c.Set(middleware.UsuarioKey, user)
	if err := h.Perfil(c); err != nil {
		t.Fatalf("Perfil returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	out := decodeEnvelope(t, rec)
	data := out["data"].(map[string]interface{})
	if data["email"] != "alicia@example.com" {
		t.Fatalf("unexpected profile: %v", data)
	}
}

func TestAuthHandler_Verificar(t *testing.T) {
	user := activeUser()
	h := NewAuthHandler(&stubAuthService{user: user})

	c, rec := newAuthContext(http.MethodGet, "/api/auth/verificar", "")
	c.Set(middleware.UsuarioKey, user)
	if err := h.Verificar(c); err != nil {
		t.Fatalf("Verificar returned error: %v", err)
	}

	out := decodeEnvelope(t, rec)
	if out["mensaje"] != "Token válido" {
		t.Fatalf("unexpected mensaje: %v", out["mensaje"])
	}
	data := out["data"].(map[string]interface{})
	if _, ok := data["usuario"]; !ok {
		t.Fatalf("expected usuario in data: %v", data)
	}
}
