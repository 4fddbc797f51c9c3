package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Role names stored in the JWT "role" claim. ADMIN is held only by the
// single configuration-supplied administrator identity; every
// registered account is an ATTENDEE.
const (
	RoleAttendee = "ATTENDEE"
	RoleAdmin    = "ADMIN"
)

// RequireRole returns a middleware that enforces that the
// authenticated identity carries one of the specified roles. It
// assumes JWTAuth already extracted the role into the context; a
// missing or unknown role aborts the request with 403 Forbidden.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			v := c.Get("role")
			role, ok := v.(string)
			if !ok || !allowed[role] {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
