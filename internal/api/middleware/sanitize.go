package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// mongoOps are the characters stripped from inbound strings to keep Mongo
// operator syntax ($gt, {...}) out of query filters.
const mongoOps = "${}"

// SanitizeString removes Mongo operator characters from a single value.
// Handlers apply it to every bound string destined for a query filter.
func SanitizeString(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(mongoOps, r) {
			return -1
		}
		return r
	}, s)
}

// Sanitize strips Mongo operator characters from all query and path
// parameters before the handler sees them.
func Sanitize() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			q := c.Request().URL.Query()
			changed := false
			for key, vals := range q {
				for i, v := range vals {
					clean := SanitizeString(v)
					if clean != v {
						vals[i] = clean
						changed = true
					}
				}
				q[key] = vals
			}
			if changed {
				c.Request().URL.RawQuery = q.Encode()
			}

			names := c.ParamNames()
			values := c.ParamValues()
			for i := range values {
				values[i] = SanitizeString(values[i])
			}
			c.SetParamNames(names...)
			c.SetParamValues(values...)

			return next(c)
		}
	}
}
