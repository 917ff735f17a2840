package middleware

// identity.go holds the helpers shared by the middleware that need to
// know who is calling.

import (
	"github.com/labstack/echo/v4"
)

// Context keys set by CallerAuth and JWTAuth.
const (
	ctxUserID = "user_id"
	ctxRole   = "role"
)

// callerID returns the authenticated subject, the :caller path segment
// when no token was checked, or "anon".
func callerID(c echo.Context) string {
	if s, ok := c.Get(ctxUserID).(string); ok && s != "" {
		return s
	}
	if s := c.Param("caller"); s != "" {
		return s
	}
	return "anon"
}
