package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-records/internal/model"
	"github.com/iliyamo/cinema-records/internal/service"
)

// UsersHandler exposes the users service.
type UsersHandler struct {
	Svc *service.UsersService
}

// IsAdmin handles GET /users/:id/is_admin (internal lookup).
func (h *UsersHandler) IsAdmin(c echo.Context) error {
	st, err := h.Svc.IsAdminLookup(c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, st)
}

// UserByID handles GET /users/:id (internal lookup).
func (h *UsersHandler) UserByID(c echo.Context) error {
	u, err := h.Svc.UserByID(c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

// List handles GET /:caller/users.
func (h *UsersHandler) List(c echo.Context) error {
	users, err := h.Svc.List(c.Request().Context(), caller(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users})
}

// Get handles GET /:caller/users/:id.
func (h *UsersHandler) Get(c echo.Context) error {
	u, err := h.Svc.Get(c.Request().Context(), caller(c), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

// GetByName handles GET /:caller/users/by_name?name=.
func (h *UsersHandler) GetByName(c echo.Context) error {
	u, err := h.Svc.GetByName(c.Request().Context(), caller(c), c.QueryParam("name"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

// WhoBooked handles GET /:caller/users/bookings?date=&movie=.
func (h *UsersHandler) WhoBooked(c echo.Context) error {
	names, err := h.Svc.UsersWhoBooked(c.Request().Context(), caller(c), c.QueryParam("date"), c.QueryParam("movie"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"users": names})
}

// Create handles POST /:caller/users/:id with body {name, is_admin}.
func (h *UsersHandler) Create(c echo.Context) error {
	var body struct {
		Name    string `json:"name"`
		IsAdmin bool   `json:"is_admin"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	u, err := h.Svc.Create(c.Request().Context(), caller(c), model.User{ID: c.Param("id"), Name: body.Name, IsAdmin: body.IsAdmin})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, u)
}

// UpdateName handles PUT /:caller/users/:id/:name.
func (h *UsersHandler) UpdateName(c echo.Context) error {
	u, err := h.Svc.UpdateName(c.Request().Context(), caller(c), c.Param("id"), c.Param("name"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

// Delete handles DELETE /:caller/users/:id.
func (h *UsersHandler) Delete(c echo.Context) error {
	u, err := h.Svc.Delete(c.Request().Context(), caller(c), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}
