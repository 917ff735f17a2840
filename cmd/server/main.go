package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/cinema-records/internal/app"     // Service assembly
	"github.com/iliyamo/cinema-records/internal/config"  // Internal config loader
	"github.com/iliyamo/cinema-records/internal/logging" // Logger setup
	"github.com/iliyamo/cinema-records/internal/tracing" // Tracer provider
)

const shutdownTimeout = 10 * time.Second

func main() {
	config.LoadDotEnv()                 // Read .env when present
	cfg := config.Load()                // Load environment config
	logging.Init(cfg.LogLevel, cfg.Env) // Configure logrus

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Configure(cfg.Service, cfg.JaegerEndpoint)
	if err != nil {
		logrus.WithError(err).Fatal("tracing setup failed")
	}
	defer func() {
		tctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(tctx); err != nil {
			logrus.WithError(err).Warn("tracing shutdown")
		}
	}()

	var rdb *redis.Client
	if config.LoadCacheConfig().Enabled || config.LoadRateLimitConfig().Enabled {
		rdb = config.NewRedisClient() // nil when unreachable
	}
	if rdb != nil {
		defer rdb.Close()
	}

	a, err := app.New(ctx, cfg, rdb)
	if err != nil {
		logrus.WithError(err).Fatalf("%s service setup failed", cfg.Service)
	}
	defer func() {
		if err := a.Close(); err != nil {
			logrus.WithError(err).Warn("close resources")
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	addr := ":" + cfg.Port // Address string with port
	g.Go(func() error {
		logrus.Infof("%s listening on %s (env=%s, store=%s)", cfg.Service, addr, cfg.Env, cfg.StoreBackend)
		if err := a.Echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return a.Echo.Shutdown(sctx)
	})
	for _, run := range a.Background {
		run := run
		g.Go(func() error {
			if err := run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logrus.WithError(err).Error("server stopped")
		return
	}
	logrus.Info("server stopped")
}
