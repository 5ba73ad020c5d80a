package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"salesdash/internal/config"
	"salesdash/internal/dataprocessing"
	apierrors "salesdash/internal/errors"
	"salesdash/internal/infrastructure"
	"salesdash/internal/middleware"
	"salesdash/internal/services"
	transporthttp "salesdash/internal/transport/http"
)

// Application wires configuration, logging, the dataset cache, the
// dashboard service, and the HTTP server together.
type Application struct {
	config *config.Config
	logger *slog.Logger
	cache  *dataprocessing.DatasetCache
	server *http.Server
}

// NewApplication builds a ready-to-run application from configuration.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	app := &Application{
		config: cfg,
		logger: logger,
		cache:  dataprocessing.NewDatasetCache(logger),
	}

	app.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.buildRouter(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return app, nil
}

// buildRouter assembles the middleware chain and mounts the API routes.
func (a *Application) buildRouter() chi.Router {
	errorHandler := apierrors.NewErrorHandler(a.logger, false)
	service := services.NewDashboardService(a.cache, a.config.Data.File, a.logger)
	dashboardHandler := transporthttp.NewDashboardHandler(service, a.logger, errorHandler)
	healthHandler := transporthttp.NewHealthHandler(a.cache.Stats)
	metrics := middleware.NewHTTPMetrics()

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.StructuredLogger(a.logger))
	r.Use(middleware.Recoverer(a.logger))
	r.Use(metrics.Middleware)

	if a.config.Server.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(
			a.config.Server.RateLimit.RPS,
			a.config.Server.RateLimit.Burst,
			a.logger,
		)
		r.Use(limiter.Handler)
	}

	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	r.Mount("/api/dashboard", dashboardHandler.Routes())
	r.Method(http.MethodGet, "/healthz", healthHandler)
	r.Handle("/metrics", metrics.Handler())

	return r
}

// Run starts the HTTP server and blocks until shutdown completes. SIGINT
// and SIGTERM trigger a graceful shutdown bounded by the configured
// timeout.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server listening",
			slog.String("addr", a.server.Addr),
			slog.String("data_file", a.config.Data.File))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	if err := infrastructure.CloseLogFile(); err != nil {
		a.logger.Warn("failed to close log file", slog.String("error", err.Error()))
	}

	return nil
}
