package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-records/internal/handler"
)

// RegisterBookings registers the bookings service.
func RegisterBookings(e *echo.Echo, h *handler.BookingsHandler, opts Options) {
	g := callerGroup(e, opts)
	g.GET("/bookings", h.List)
	g.GET("/bookings/:user", h.ForUser)
	g.GET("/bookings/:user/details", h.Details)
	g.POST("/bookings/:user", h.Add)
	g.DELETE("/bookings/:user", h.RemoveAll)
	g.DELETE("/bookings/:user/:date", h.RemoveDate)
	g.DELETE("/bookings/:user/:date/:movie", h.RemoveMovie)
}
