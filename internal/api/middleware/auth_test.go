package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/alertaclimatica/news-api/internal/core/domain"
)

type stubTokenService struct {
	userID string
	err    error
}

func (s *stubTokenService) Issue(userID string) (string, error) {
	return "token-" + userID, nil
}

func (s *stubTokenService) Verify(_ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.userID, nil
}

type stubUserFinder struct {
	users map[string]*domain.User
}

func (s *stubUserFinder) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	return u, nil
}

func (s *stubUserFinder) FindByEmail(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubUserFinder) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (s *stubUserFinder) TouchUltimoAcceso(_ context.Context, _ string, _ time.Time) error {
	return nil
}

func runAuth(t *testing.T, tokens *stubTokenService, users *stubUserFinder, authHeader string) (*httptest.ResponseRecorder, *domain.User) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/noticias", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var attached *domain.User
	handler := Auth(tokens, users)(func(c echo.Context) error {
		attached, _ = c.Get(UsuarioKey).(*domain.User)
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec, attached
}

func TestAuth_ValidToken(t *testing.T) {
	users := &stubUserFinder{users: map[string]*domain.User{
		"u1": {ID: "u1", Nombre: "Alicia", Rol: domain.RolEditor, Activo: true},
	}}
	tokens := &stubTokenService{userID: "u1"}

	rec, attached := runAuth(t, tokens, users, "Bearer some-token")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if attached == nil || attached.ID != "u1" {
		t.Fatalf("expected usuario attached to context, got %+v", attached)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	rec, _ := runAuth(t, &stubTokenService{}, &stubUserFinder{}, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Token no proporcionado") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuth_WrongScheme(t *testing.T) {
	rec, _ := runAuth(t, &stubTokenService{userID: "u1"}, &stubUserFinder{}, "Basic abc123")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	tokens := &stubTokenService{err: domain.ErrTokenExpired}
	rec, _ := runAuth(t, tokens, &stubUserFinder{}, "Bearer expired")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Token expirado") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	tokens := &stubTokenService{err: domain.ErrTokenInvalid}
	rec, _ := runAuth(t, tokens, &stubUserFinder{}, "Bearer tampered")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Token inválido") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuth_UserDeleted(t *testing.T) {
	tokens := &stubTokenService{userID: "ghost"}
	rec, _ := runAuth(t, tokens, &stubUserFinder{users: map[string]*domain.User{}}, "Bearer ok")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Usuario no encontrado") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuth_UserInactive(t *testing.T) {
	users := &stubUserFinder{users: map[string]*domain.User{
		"u1": {ID: "u1", Nombre: "Alicia", Rol: domain.RolEditor, Activo: false},
	}}
	rec, _ := runAuth(t, &stubTokenService{userID: "u1"}, users, "Bearer ok")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Usuario inactivo") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestRequireRoles(t *testing.T) {
	e := echo.New()

	run := func(user *domain.User, roles ...string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodDelete, "/api/noticias/1", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if user != nil {
			c.Set(UsuarioKey, user)
		}
		handler := RequireRoles(roles...)(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		if err := handler(c); err != nil {
			t.Fatalf("middleware returned error: %v", err)
		}
		return rec
	}

	rec := run(&domain.User{ID: "u1", Rol: domain.RolAdmin}, domain.RolAdmin)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", rec.Code)
	}

	rec = run(&domain.User{ID: "u2", Rol: domain.RolEditor}, domain.RolAdmin)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for editor, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Rol editor no autorizado") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}

	rec = run(nil, domain.RolAdmin)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without usuario, got %d", rec.Code)
	}
}
