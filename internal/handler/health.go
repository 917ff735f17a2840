package handler // handler package contains the HTTP handlers of the four services

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is a simple health-check endpoint used by load balancers and
// monitoring systems to verify that the service is running.  It names
// the service and how many records its collection holds.
func Health(service string, records func() int) echo.HandlerFunc {
	return func(c echo.Context) error {
		body := echo.Map{"status": "ok", "service": service}
		if records != nil {
			body["records"] = records()
		}
		return c.JSON(http.StatusOK, body)
	}
}
