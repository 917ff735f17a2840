package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-records/internal/handler"
	"github.com/iliyamo/cinema-records/internal/middleware"
	"github.com/iliyamo/cinema-records/internal/utils"
)

// RegisterUsers registers the users service.  The two internal lookups
// sit outside the /:caller group; with a JWT secret they require a
// service token.
func RegisterUsers(e *echo.Echo, h *handler.UsersHandler, opts Options) {
	internal := middleware.RequireRole(opts.JWTSecret, utils.RoleService)
	e.GET("/users/:id/is_admin", h.IsAdmin, internal)
	e.GET("/users/:id", h.UserByID, internal)

	g := callerGroup(e, opts)
	g.GET("/users", h.List)
	g.GET("/users/by_name", h.GetByName)
	g.GET("/users/bookings", h.WhoBooked)
	g.GET("/users/:id", h.Get)
	g.POST("/users/:id", h.Create)
	g.PUT("/users/:id/:name", h.UpdateName)
	g.DELETE("/users/:id", h.Delete)
}
