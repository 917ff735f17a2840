package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-records/internal/handler"
)

// RegisterMovies registers the movies service.
func RegisterMovies(e *echo.Echo, h *handler.MoviesHandler, opts Options) {
	g := callerGroup(e, opts)
	g.GET("/movies", h.List)
	g.GET("/movies/by_title", h.GetByTitle)
	g.GET("/movies/:id", h.Get)
	g.POST("/movies", h.Create)
	g.PUT("/movies/:id/rating", h.UpdateRating)
	g.DELETE("/movies/:id", h.Delete)
}
