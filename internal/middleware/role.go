package middleware // middleware provides shared request processing for handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole rejects requests whose token role, as stored by JWTAuth,
// is not one of roles.  It guards the internal lookups of the users
// service.  With an empty secret there are no tokens and it lets
// everything through.
func RequireRole(secret string, roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if secret == "" {
			return next
		}
		check := func(c echo.Context) error {
			role, _ := c.Get(ctxRole).(string)
			if !allowed[role] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden", "code": "forbidden"})
			}
			return next(c)
		}
		return JWTAuth(secret)(check)
	}
}
