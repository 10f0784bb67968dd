package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"golang.org/x/sync/errgroup"

	"stylelens/internal/config"
	apierrors "stylelens/internal/errors"
	"stylelens/internal/infrastructure"
	custommw "stylelens/internal/middleware"
	"stylelens/internal/services"
	handlers "stylelens/internal/transport/http"
	"stylelens/pkg/contracts"
)

// Application is the assembled StyleLens service.
type Application struct {
	Config    *config.Config
	Logger    *slog.Logger
	Router    *chi.Mux
	Server    *http.Server
	Dashboard *services.DashboardService
	Health    *services.HealthService
}

// NewApplication loads configuration and wires every layer together.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("version", contracts.Version),
		slog.Int("port", cfg.Server.Port))

	if _, err := infrastructure.InitializeTracing(cfg.Logging, logger); err != nil {
		return nil, fmt.Errorf("initialize tracing: %w", err)
	}

	dashboard := services.NewDashboardService(cfg.Dashboard, logger)
	health := services.NewHealthService(contracts.Version, dashboard, logger)

	a := &Application{
		Config:    cfg,
		Logger:    logger,
		Dashboard: dashboard,
		Health:    health,
	}
	a.Router = a.setupRouter()
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return a, nil
}

func (a *Application) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(custommw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommw.StructuredLogger(a.Logger))
	r.Use(custommw.Recoverer(a.Logger))
	r.Use(custommw.SecurityHeaders)
	if a.Config.Security.EnableCORS {
		r.Use(custommw.CORS(a.Config.Security))
	}
	r.Use(custommw.RateLimit(a.Config.Security.RateLimit))
	r.Use(custommw.Metrics)
	r.Use(custommw.Tracing)

	errorHandler := apierrors.NewErrorHandler(a.Logger)
	datasetHandler := handlers.NewDatasetHandler(a.Dashboard, a.Logger, errorHandler, a.Config.Server.MaxUploadBytes)
	healthHandler := handlers.NewHealthHandler(a.Health, a.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(middleware.Timeout(a.Config.Server.WriteTimeout))

		r.Mount("/datasets", datasetHandler.Routes())
		r.Get("/healthz", healthHandler.Healthz)
		r.Get("/readyz", healthHandler.Readyz)
	})

	r.Handle("/metrics", handlers.MetricsHandler())

	return r
}

// Run starts the HTTP server and blocks until the context is cancelled or
// the server fails. SIGINT and SIGTERM trigger a graceful shutdown bounded
// by the configured shutdown timeout.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.Info("http server listening", slog.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		a.Logger.Info("shutdown initiated")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
		defer cancel()
		if err := a.Server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	err := g.Wait()
	a.Logger.Info("application stopped", slog.String("uptime", uptimeSince(startTime)))
	infrastructure.CloseLogFile()
	return err
}

var startTime = time.Now()

func uptimeSince(t time.Time) string {
	return time.Since(t).Round(time.Second).String()
}
