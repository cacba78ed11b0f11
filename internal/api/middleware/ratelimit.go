package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/alertaclimatica/news-api/internal/api/metrics"
)

// RateLimiter is a fixed-window per-IP request counter. A window starts on a
// client's first request and every counter resets at its window boundary.
// Increment-and-compare happens under the mutex, so concurrent requests from
// one IP cannot undercount.
type RateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	scope   string // metrics label and log tag: "login" or "api"
	message string
	clients map[string]*clientWindow
}

type clientWindow struct {
	count     int
	windowEnd time.Time
}

// NewRateLimiter builds a limiter allowing limit requests per window per IP.
// message is the fixed error text returned once the limit is exceeded.
func NewRateLimiter(limit int, window time.Duration, scope, message string) *RateLimiter {
	return &RateLimiter{
		limit:   limit,
		window:  window,
		scope:   scope,
		message: message,
		clients: make(map[string]*clientWindow),
	}
}

// Allow counts one request for key and reports whether it is within the
// limit, along with the remaining quota and the end of the current window.
func (rl *RateLimiter) Allow(key string, now time.Time) (ok bool, remaining int, windowEnd time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	w, exists := rl.clients[key]
	if !exists || now.After(w.windowEnd) {
		w = &clientWindow{count: 0, windowEnd: now.Add(rl.window)}
		rl.clients[key] = w
	}

	if w.count >= rl.limit {
		return false, 0, w.windowEnd
	}

	w.count++
	return true, rl.limit - w.count, w.windowEnd
}

// Middleware enforces the limit per client IP and emits the standard
// RateLimit-* headers on every response.
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			now := time.Now()
			ok, remaining, windowEnd := rl.Allow(clientIP(c), now)

			h := c.Response().Header()
			h.Set("RateLimit-Limit", strconv.Itoa(rl.limit))
			h.Set("RateLimit-Remaining", strconv.Itoa(remaining))
			h.Set("RateLimit-Reset", strconv.Itoa(secondsUntil(windowEnd, now)))

			if !ok {
				h.Set("Retry-After", strconv.Itoa(secondsUntil(windowEnd, now)))
				metrics.RateLimitedTotal.WithLabelValues(rl.scope).Inc()
				return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"success": false,
					"error":   rl.message,
				})
			}

			return next(c)
		}
	}
}

func secondsUntil(t, now time.Time) int {
	s := int(t.Sub(now).Seconds())
	if s < 0 {
		return 0
	}
	return s
}

func clientIP(c echo.Context) string {
	// Echo's RealIP respects X-Forwarded-For / X-Real-IP.
	ip := c.RealIP()

	host, _, err := net.SplitHostPort(ip)
	if err == nil && host != "" {
		return host
	}
	return ip
}
