package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-records/internal/database"
	"github.com/iliyamo/cinema-records/internal/logging"
	"github.com/iliyamo/cinema-records/internal/repository"
	"github.com/iliyamo/cinema-records/internal/service"
)

// errorResponse is the JSON envelope of every failed request.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Level string `json:"level,omitempty"`
}

// writeError maps err onto a status code and error body.  Every handler
// reports failures through it so the mapping is the same everywhere.
func writeError(c echo.Context, err error) error {
	status, code := classify(err)
	body := errorResponse{Error: err.Error(), Code: code}
	if status == http.StatusNotFound {
		body.Level = repository.NotFoundLevel(err)
	}
	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request().Context()).WithError(err).
			WithField("path", c.Request().URL.Path).Error("request failed")
	}
	return c.JSON(status, body)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, service.ErrUnknownCaller):
		return http.StatusUnauthorized, "unknown_caller"
	case errors.Is(err, service.ErrUnverifiable):
		return http.StatusServiceUnavailable, "unverifiable"
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, repository.ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, service.ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, repository.ErrIntegrity):
		return http.StatusInternalServerError, "integrity"
	case errors.Is(err, service.ErrUnavailable):
		return http.StatusServiceUnavailable, "unavailable"
	case errors.Is(err, database.ErrWriteFailed):
		return http.StatusInternalServerError, "write_failed"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// badRequest writes a 400 for input that could not be bound.
func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Error: msg, Code: "bad_request"})
}

// caller returns the :caller path segment.
func caller(c echo.Context) string {
	return c.Param("caller")
}
