package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db/gormstore"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/metrics"
	"github.com/gokatarajesh/trivia-api/internal/server"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

// Application aggregates shared infrastructure (store, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	store      trivia.Store
	closeStore func()
	http       *http.Server
}

// New bootstraps logger, store and HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env, cfg.LogLevel)
	logger.Info().Str("store_driver", cfg.Store.Driver).Msg("starting application bootstrap")

	store, closeStore, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	svc := trivia.NewService(store, logger, trivia.ServiceOptions{})
	apiServer := server.NewHTTPServer(cfg, logger, server.Options{
		Trivia:  trivia.NewHTTPHandler(svc),
		Pinger:  svc,
		Metrics: metrics.NewHTTP(prometheus.DefaultRegisterer, "trivia"),
	})

	return &Application{
		cfg:        cfg,
		logger:     logger,
		store:      store,
		closeStore: closeStore,
		http:       apiServer,
	}, nil
}

// OpenStore connects the store selected by cfg.Store.Driver. The returned func releases it.
func OpenStore(ctx context.Context, cfg *config.App, logger zerolog.Logger) (trivia.Store, func(), error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		poolCfg, err := pgxpool.ParseConfig(cfg.Postgres.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("parse postgres config: %w", err)
		}
		if cfg.Postgres.MaxConns > 0 {
			poolCfg.MaxConns = int32(cfg.Postgres.MaxConns)
		}
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		logger.Info().Str("host", cfg.Postgres.Host).Str("database", cfg.Postgres.Database).Msg("postgres pool ready")
		return repository.NewStore(pool), pool.Close, nil

	case config.DriverGormPostgres, config.DriverSQLite:
		dialector, err := gormstore.Dialector(cfg)
		if err != nil {
			return nil, nil, err
		}
		store, err := gormstore.Open(dialector, logger)
		if err != nil {
			return nil, nil, err
		}
		// Postgres schemas are owned by the goose migrations.
		if cfg.Store.Driver == config.DriverSQLite {
			if err := store.Migrate(ctx); err != nil {
				_ = store.Close()
				return nil, nil, err
			}
			logger.Info().Str("path", cfg.Store.SQLitePath).Msg("sqlite store migrated")
		}
		closeFn := func() {
			if err := store.Close(); err != nil {
				logger.Error().Err(err).Msg("store close error")
			}
		}
		return store, closeFn, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var runErr error
	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		runErr = fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	a.closeStore()

	a.logger.Info().Msg("shutdown complete")
	return runErr
}
