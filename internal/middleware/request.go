package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/lithammer/shortuuid/v3"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/cinema-records/internal/logging"
)

// RequestContext assigns a correlation id (the inbound X-Correlation-ID
// or a fresh short uuid), stores a request-scoped logrus entry in the request
// context and logs one line per request once it completes.
func RequestContext(service string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			id := req.Header.Get(logging.CorrelationHeader)
			if id == "" {
				id = shortuuid.New()
			}
			c.Response().Header().Set(logging.CorrelationHeader, id)

			entry := logrus.WithFields(logrus.Fields{
				"service":        service,
				"correlation_id": id,
			})
			ctx := logging.ContextWithCorrelationID(req.Context(), id)
			ctx = logging.ToContext(ctx, entry)
			c.SetRequest(req.WithContext(ctx))

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			entry.WithFields(logrus.Fields{
				"method":   req.Method,
				"path":     req.URL.Path,
				"status":   c.Response().Status,
				"duration": time.Since(start).String(),
			}).Info("request handled")
			return nil
		}
	}
}
