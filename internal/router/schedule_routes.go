package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-records/internal/handler"
)

// RegisterSchedule registers the schedule service.
func RegisterSchedule(e *echo.Echo, h *handler.ScheduleHandler, opts Options) {
	g := callerGroup(e, opts)
	g.GET("/schedule", h.List)
	g.GET("/schedule/by_movie", h.ByMovie)
	g.GET("/schedule/:date", h.MoviesOnDate)
	g.GET("/schedule/:date/details", h.DateDetails)
	g.POST("/schedule/:date", h.AddDate)
	g.POST("/schedule/:date/movies", h.AddMovie)
	g.DELETE("/schedule/:date", h.RemoveDate)
	g.DELETE("/schedule/:date/movies/:movie", h.RemoveMovieFromDate)
	g.DELETE("/schedule/movies/:movie", h.RemoveMovieEverywhere)
}
