package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-records/internal/model"
	"github.com/iliyamo/cinema-records/internal/service"
)

// ScheduleHandler exposes the schedule service.
type ScheduleHandler struct {
	Svc *service.ScheduleService
}

// List handles GET /:caller/schedule.
func (h *ScheduleHandler) List(c echo.Context) error {
	entries, err := h.Svc.List(c.Request().Context(), caller(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"schedule": entries})
}

// MoviesOnDate handles GET /:caller/schedule/:date.  Peers decode the
// answer as a schedule entry.
func (h *ScheduleHandler) MoviesOnDate(c echo.Context) error {
	date := c.Param("date")
	movies, err := h.Svc.MoviesOnDate(c.Request().Context(), caller(c), date)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, model.ScheduleEntry{Date: date, Movies: movies})
}

// DateDetails handles GET /:caller/schedule/:date/details.
func (h *ScheduleHandler) DateDetails(c echo.Context) error {
	d, err := h.Svc.DateDetails(c.Request().Context(), caller(c), c.Param("date"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

// ByMovie handles GET /:caller/schedule/by_movie?id=.
func (h *ScheduleHandler) ByMovie(c echo.Context) error {
	md, err := h.Svc.DatesForMovie(c.Request().Context(), caller(c), c.QueryParam("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, md)
}

// AddDate handles POST /:caller/schedule/:date with optional body {movies}.
func (h *ScheduleHandler) AddDate(c echo.Context) error {
	var body struct {
		Movies []string `json:"movies"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	entry, err := h.Svc.AddDate(c.Request().Context(), caller(c), c.Param("date"), body.Movies)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, entry)
}

// AddMovie handles POST /:caller/schedule/:date/movies with body {movie_id}.
func (h *ScheduleHandler) AddMovie(c echo.Context) error {
	var body struct {
		MovieID string `json:"movie_id"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	res, err := h.Svc.AddMovieToDate(c.Request().Context(), caller(c), c.Param("date"), body.MovieID)
	if err != nil {
		return writeError(c, err)
	}
	status := http.StatusOK
	if res.Outcome == service.OutcomeScheduleDateAdded {
		status = http.StatusCreated
	}
	return c.JSON(status, res)
}

// RemoveDate handles DELETE /:caller/schedule/:date.
func (h *ScheduleHandler) RemoveDate(c echo.Context) error {
	date := c.Param("date")
	if err := h.Svc.RemoveDate(c.Request().Context(), caller(c), date); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"removed": date})
}

// RemoveMovieFromDate handles DELETE /:caller/schedule/:date/movies/:movie.
func (h *ScheduleHandler) RemoveMovieFromDate(c echo.Context) error {
	date, movie := c.Param("date"), c.Param("movie")
	if err := h.Svc.RemoveMovieFromDate(c.Request().Context(), caller(c), date, movie); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"date": date, "removed": movie})
}

// RemoveMovieEverywhere handles DELETE /:caller/schedule/movies/:movie.
func (h *ScheduleHandler) RemoveMovieEverywhere(c echo.Context) error {
	movie := c.Param("movie")
	n, err := h.Svc.RemoveMovieEverywhere(c.Request().Context(), caller(c), movie)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"removed": movie, "dates": n})
}
