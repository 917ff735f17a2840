package middleware // middleware holds the echo middleware shared by the four services

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-records/internal/utils"
)

// JWTAuth validates a Bearer token and stores its subject and role in
// the echo context under "user_id" and "role".  With an empty secret it
// does nothing, which is how the services run without tokens.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if secret == "" {
			return next
		}
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token", "code": "unauthorized"})
			}
			claims, err := utils.ParseToken(secret, strings.TrimPrefix(auth, "Bearer "))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token", "code": "unauthorized"})
			}
			c.Set(ctxUserID, claims.Subject)
			c.Set(ctxRole, claims.Role)
			return next(c)
		}
	}
}

// CallerAuth guards routes carrying a :caller segment.  Without a secret
// the segment is trusted as is.  With a secret the request must carry a
// caller token whose subject equals the segment.
func CallerAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if secret == "" {
			return func(c echo.Context) error {
				c.Set(ctxUserID, c.Param("caller"))
				return next(c)
			}
		}
		check := func(c echo.Context) error {
			if sub, _ := c.Get(ctxUserID).(string); sub != c.Param("caller") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token subject does not match caller", "code": "unauthorized"})
			}
			return next(c)
		}
		return JWTAuth(secret)(check)
	}
}
