package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestSanitizeString(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Monterrey", "Monterrey"},
		{`{"$gt": ""}`, `"gt": ""`},
		{"$where", "where"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := SanitizeString(tc.in); got != tc.want {
			t.Errorf("SanitizeString(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitize_QueryParams(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/noticias?ciudad=%7B%22%24gt%22%3A%22%22%7D&categoria=alert", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var ciudad, categoria string
	handler := Sanitize()(func(c echo.Context) error {
		ciudad = c.QueryParam("ciudad")
		categoria = c.QueryParam("categoria")
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}

	if ciudad != `"gt":""` {
		t.Fatalf("expected operator characters removed, got %q", ciudad)
	}
	if categoria != "alert" {
		t.Fatalf("clean param changed: %q", categoria)
	}
}

func TestSanitize_PathParams(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/noticias/abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("$abc{1}")

	var id string
	handler := Sanitize()(func(c echo.Context) error {
		id = c.Param("id")
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}

	if id != "abc1" {
		t.Fatalf("expected abc1, got %q", id)
	}
}
