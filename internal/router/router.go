package router // package router builds the echo instance of each service and registers its routes

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/iliyamo/cinema-records/internal/config"
	"github.com/iliyamo/cinema-records/internal/handler"
	"github.com/iliyamo/cinema-records/internal/metrics"
	"github.com/iliyamo/cinema-records/internal/middleware"
)

// Options carries what every service's echo instance needs.
type Options struct {
	Service   string
	JWTSecret string
	Cache     config.CacheConfig
	RateLimit config.RateLimitConfig
	Redis     *redis.Client // nil disables caching and switches rate limiting to in-process buckets
	Records   func() int    // size of the service's collection, reported by /healthz
}

// New returns an echo instance with the shared middleware chain, the
// health check and the metrics endpoint registered.
func New(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(middleware.RequestContext(opts.Service))
	e.Use(otelecho.Middleware(opts.Service))
	e.Use(middleware.NewTokenBucket(opts.RateLimit, opts.Redis))

	e.GET("/healthz", handler.Health(opts.Service, opts.Records))
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	return e
}

// callerGroup returns the /:caller group: caller authentication first,
// then the response cache, so cached answers are only served to
// authenticated callers.
func callerGroup(e *echo.Echo, opts Options) *echo.Group {
	return e.Group("/:caller",
		middleware.CallerAuth(opts.JWTSecret),
		middleware.NewRedisCache(opts.Cache, opts.Redis, opts.Service),
	)
}
