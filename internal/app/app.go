// Package app assembles one of the four services from its configuration:
// storage, peer clients, guard, orchestrator, handlers and routes.
package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/cinema-records/internal/client"
	"github.com/iliyamo/cinema-records/internal/config"
	"github.com/iliyamo/cinema-records/internal/database"
	"github.com/iliyamo/cinema-records/internal/handler"
	"github.com/iliyamo/cinema-records/internal/queue"
	"github.com/iliyamo/cinema-records/internal/repository"
	"github.com/iliyamo/cinema-records/internal/router"
	"github.com/iliyamo/cinema-records/internal/service"
)

// App is a fully wired service ready to be served.
type App struct {
	Echo *echo.Echo

	// Background holds the loops that must run next to the HTTP server
	// (admin cache sweeper, event sender, booking log consumer).
	Background []func(context.Context) error

	closers []func() error
}

// Close releases database and broker connections.
func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// New builds the service named by cfg.Service.  rdb may be nil.
func New(ctx context.Context, cfg config.Config, rdb *redis.Client) (*App, error) {
	a := &App{}
	doc, err := a.openDocument(ctx, cfg, cfg.Service)
	if err != nil {
		return nil, a.fail(err)
	}

	peers := client.Options{Timeout: cfg.RemoteTimeout, JWTSecret: cfg.JWTSecret, Service: cfg.Service}
	opts := router.Options{
		Service:   cfg.Service,
		JWTSecret: cfg.JWTSecret,
		Cache:     config.LoadCacheConfig(),
		RateLimit: config.LoadRateLimitConfig(),
		Redis:     rdb,
	}

	var guard *service.AdminGuard
	switch cfg.Service {
	case config.ServiceUsers:
		store := repository.NewUserStore(doc)
		if err := store.Load(ctx); err != nil {
			return nil, a.fail(err)
		}
		repo := repository.NewUserRepo(store)
		guard = service.NewAdminGuard(service.LocalAdminLookup{Repo: repo}, cfg.AdminCacheTTL, cfg.AdminCacheMaxEntries)
		svc := service.NewUsersService(repo, guard, client.NewBookings(cfg.BookingsURL, peers))
		opts.Records = store.Len
		a.Echo = router.New(opts)
		router.RegisterUsers(a.Echo, &handler.UsersHandler{Svc: svc}, opts)

	case config.ServiceMovies:
		store := repository.NewMovieStore(doc)
		if err := store.Load(ctx); err != nil {
			return nil, a.fail(err)
		}
		guard = service.NewAdminGuard(client.NewUsers(cfg.UsersURL, peers), cfg.AdminCacheTTL, cfg.AdminCacheMaxEntries)
		svc := service.NewMoviesService(repository.NewMovieRepo(store), guard)
		opts.Records = store.Len
		a.Echo = router.New(opts)
		router.RegisterMovies(a.Echo, &handler.MoviesHandler{Svc: svc}, opts)

	case config.ServiceSchedule:
		store := repository.NewScheduleStore(doc)
		if err := store.Load(ctx); err != nil {
			return nil, a.fail(err)
		}
		guard = service.NewAdminGuard(client.NewUsers(cfg.UsersURL, peers), cfg.AdminCacheTTL, cfg.AdminCacheMaxEntries)
		svc := service.NewScheduleService(repository.NewScheduleRepo(store), guard, client.NewMovies(cfg.MoviesURL, peers))
		opts.Records = store.Len
		a.Echo = router.New(opts)
		router.RegisterSchedule(a.Echo, &handler.ScheduleHandler{Svc: svc}, opts)

	case config.ServiceBookings:
		store := repository.NewBookingStore(doc)
		if err := store.Load(ctx); err != nil {
			return nil, a.fail(err)
		}
		users := client.NewUsers(cfg.UsersURL, peers)
		guard = service.NewAdminGuard(users, cfg.AdminCacheTTL, cfg.AdminCacheMaxEntries)
		var events service.EventPublisher
		if cfg.BookingEventsEnabled {
			pub := queue.NewPublisher(cfg.RabbitURL)
			a.closers = append(a.closers, pub.Close)
			a.Background = append(a.Background, pub.Run)
			events = pub
		}
		svc := service.NewBookingsService(repository.NewBookingRepo(store), guard,
			client.NewSchedule(cfg.ScheduleURL, peers), client.NewMovies(cfg.MoviesURL, peers), users, events)
		opts.Records = store.Len
		a.Echo = router.New(opts)
		router.RegisterBookings(a.Echo, &handler.BookingsHandler{Svc: svc}, opts)

	default:
		return nil, a.fail(fmt.Errorf("unknown service %q", cfg.Service))
	}

	guard.SetLookupTimeout(cfg.RemoteTimeout)
	a.Background = append(a.Background, guard.Run)
	if cfg.BookingLogConsumer {
		a.Background = append(a.Background, queue.NewConsumer(cfg.RabbitURL, cfg.BookingLogDir).Run)
	}
	return a, nil
}

func (a *App) fail(err error) error {
	_ = a.Close()
	return err
}

// openDocument returns the backend holding the collection of service.
func (a *App) openDocument(ctx context.Context, cfg config.Config, name string) (database.Document, error) {
	if cfg.StoreBackend == config.BackendFile {
		logrus.WithField("dir", cfg.DataDir).Infof("store: file backend for %s", name)
		return database.NewFileDocument(cfg.DataDir, name), nil
	}

	db, err := database.Open(cfg.StoreBackend, cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.StoreBackend, err)
	}
	a.closers = append(a.closers, db.Close)
	return sqlDocument(ctx, db, name)
}

func sqlDocument(ctx context.Context, db *sqlx.DB, name string) (database.Document, error) {
	doc := database.NewSQLDocument(db, name)
	if err := doc.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure documents table: %w", err)
	}
	return doc, nil
}
