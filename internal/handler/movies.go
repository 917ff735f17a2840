package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-records/internal/model"
	"github.com/iliyamo/cinema-records/internal/service"
)

// MoviesHandler exposes the movies service.
type MoviesHandler struct {
	Svc *service.MoviesService
}

// List handles GET /:caller/movies.
func (h *MoviesHandler) List(c echo.Context) error {
	movies, err := h.Svc.List(c.Request().Context(), caller(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"movies": movies})
}

// Get handles GET /:caller/movies/:id.
func (h *MoviesHandler) Get(c echo.Context) error {
	m, err := h.Svc.MovieByID(c.Request().Context(), caller(c), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

// GetByTitle handles GET /:caller/movies/by_title?title=.
func (h *MoviesHandler) GetByTitle(c echo.Context) error {
	m, err := h.Svc.MovieByTitle(c.Request().Context(), caller(c), c.QueryParam("title"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

// Create handles POST /:caller/movies with a full movie body.
func (h *MoviesHandler) Create(c echo.Context) error {
	var m model.Movie
	if err := c.Bind(&m); err != nil {
		return badRequest(c, "invalid request body")
	}
	created, err := h.Svc.Create(c.Request().Context(), caller(c), m)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// UpdateRating handles PUT /:caller/movies/:id/rating with body {rating}.
func (h *MoviesHandler) UpdateRating(c echo.Context) error {
	var body struct {
		Rating *float64 `json:"rating"`
	}
	if err := c.Bind(&body); err != nil || body.Rating == nil {
		return badRequest(c, "rating is required")
	}
	m, err := h.Svc.UpdateRating(c.Request().Context(), caller(c), c.Param("id"), *body.Rating)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

// Delete handles DELETE /:caller/movies/:id.
func (h *MoviesHandler) Delete(c echo.Context) error {
	m, err := h.Svc.Delete(c.Request().Context(), caller(c), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, m)
}
