package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestRateLimiter_Allow_FixedWindow(t *testing.T) {
	rl := NewRateLimiter(5, 15*time.Minute, "login", "Demasiados intentos")
	now := time.Now()

	for i := 0; i < 5; i++ {
		ok, remaining, _ := rl.Allow("1.2.3.4", now)
		if !ok {
			t.Fatalf("request %d unexpectedly denied", i+1)
		}
		if remaining != 5-(i+1) {
			t.Fatalf("request %d: expected remaining %d, got %d", i+1, 5-(i+1), remaining)
		}
	}

	ok, remaining, windowEnd := rl.Allow("1.2.3.4", now)
	if ok {
		t.Fatalf("sixth request should be denied")
	}
	if remaining != 0 {
		t.Fatalf("expected remaining 0 when denied, got %d", remaining)
	}
	if !windowEnd.Equal(now.Add(15 * time.Minute)) {
		t.Fatalf("unexpected window end %v", windowEnd)
	}
}

func TestRateLimiter_Allow_PerKey(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute, "api", "Demasiadas peticiones")
	now := time.Now()

	if ok, _, _ := rl.Allow("1.1.1.1", now); !ok {
		t.Fatalf("first client should be allowed")
	}
	if ok, _, _ := rl.Allow("1.1.1.1", now); ok {
		t.Fatalf("first client should now be denied")
	}
	if ok, _, _ := rl.Allow("2.2.2.2", now); !ok {
		t.Fatalf("second client has its own counter")
	}
}

func TestRateLimiter_Allow_WindowReset(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute, "api", "Demasiadas peticiones")
	now := time.Now()

	if ok, _, _ := rl.Allow("1.2.3.4", now); !ok {
		t.Fatalf("first request should be allowed")
	}
	if ok, _, _ := rl.Allow("1.2.3.4", now); ok {
		t.Fatalf("second request should be denied")
	}

	later := now.Add(time.Minute + time.Second)
	if ok, _, _ := rl.Allow("1.2.3.4", later); !ok {
		t.Fatalf("request after window boundary should be allowed again")
	}
}

func TestRateLimiter_Middleware(t *testing.T) {
	rl := NewRateLimiter(2, 15*time.Minute, "login", "Demasiados intentos de login, intenta de nuevo en 15 minutos")
	e := echo.New()

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = "10.0.0.9:51234"
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		handler := rl.Middleware()(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		if err := handler(c); err != nil {
			t.Fatalf("middleware returned error: %v", err)
		}
		return rec
	}

	rec := do()
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("RateLimit-Limit"); got != "2" {
		t.Fatalf("expected RateLimit-Limit 2, got %q", got)
	}
	if got := rec.Header().Get("RateLimit-Remaining"); got != "1" {
		t.Fatalf("expected RateLimit-Remaining 1, got %q", got)
	}

	do()

	rec = do()
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header on 429")
	}
	if !strings.Contains(rec.Body.String(), "Demasiados intentos de login") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestClientIP_StripsPort(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.7:40000"
	c := e.NewContext(req, httptest.NewRecorder())

	if got := clientIP(c); got != "192.168.1.7" {
		t.Fatalf("expected 192.168.1.7, got %q", got)
	}
}
