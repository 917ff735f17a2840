package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-records/internal/model"
	"github.com/iliyamo/cinema-records/internal/service"
)

// BookingsHandler exposes the bookings service.
type BookingsHandler struct {
	Svc *service.BookingsService
}

// List handles GET /:caller/bookings.  The answer is a bare array; the
// users service decodes it for the users-who-booked lookup.
func (h *BookingsHandler) List(c echo.Context) error {
	bookings, err := h.Svc.List(c.Request().Context(), caller(c))
	if err != nil {
		return writeError(c, err)
	}
	if bookings == nil {
		bookings = []model.Booking{}
	}
	return c.JSON(http.StatusOK, bookings)
}

// ForUser handles GET /:caller/bookings/:user.
func (h *BookingsHandler) ForUser(c echo.Context) error {
	b, err := h.Svc.ForUser(c.Request().Context(), caller(c), c.Param("user"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

// Details handles GET /:caller/bookings/:user/details.
func (h *BookingsHandler) Details(c echo.Context) error {
	d, err := h.Svc.Details(c.Request().Context(), caller(c), c.Param("user"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

// Add handles POST /:caller/bookings/:user with body {date, movie_id}.
func (h *BookingsHandler) Add(c echo.Context) error {
	var body struct {
		Date    string `json:"date"`
		MovieID string `json:"movie_id"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	res, err := h.Svc.Add(c.Request().Context(), caller(c), c.Param("user"), body.Date, body.MovieID)
	if err != nil {
		return writeError(c, err)
	}
	status := http.StatusOK
	if res.Outcome == model.OutcomeBookingCreated {
		status = http.StatusCreated
	}
	return c.JSON(status, res)
}

// RemoveAll handles DELETE /:caller/bookings/:user.
func (h *BookingsHandler) RemoveAll(c echo.Context) error {
	user := c.Param("user")
	if err := h.Svc.RemoveAll(c.Request().Context(), caller(c), user); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"removed": user})
}

// RemoveDate handles DELETE /:caller/bookings/:user/:date.
func (h *BookingsHandler) RemoveDate(c echo.Context) error {
	b, err := h.Svc.RemoveDate(c.Request().Context(), caller(c), c.Param("user"), c.Param("date"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

// RemoveMovie handles DELETE /:caller/bookings/:user/:date/:movie.
func (h *BookingsHandler) RemoveMovie(c echo.Context) error {
	b, err := h.Svc.RemoveMovie(c.Request().Context(), caller(c), c.Param("user"), c.Param("date"), c.Param("movie"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}
