package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/browser"

	"sales-dashboard/internal/config"
	"sales-dashboard/internal/dataset"
	"sales-dashboard/internal/middleware"
	"sales-dashboard/internal/observability"
	"sales-dashboard/internal/server"
	"sales-dashboard/internal/services"
	"sales-dashboard/internal/ui/templates"
)

const renderTimeout = 10 * time.Second

// handleDashboard serves the viewer page with a card per figure.
func handleDashboard(gallery *services.Gallery) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), renderTimeout)
		defer cancel()

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		if err := templates.Dashboard(gallery.Figures()).Render(ctx, w); err != nil {
			http.Error(w, "render error", http.StatusInternalServerError)
		}
	}
}

func newHandler(cfg *config.Config, analytics *services.Analytics, gallery *services.Gallery, logger *slog.Logger) http.Handler {
	templateHandlers := &server.TemplateHandlers{
		Dashboard: handleDashboard(gallery),
	}

	srv := server.NewServer(analytics, gallery, logger, templateHandlers)

	rateLimiter := middleware.NewRateLimiter(cfg.Security)

	middlewareChain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Observe(logger),
		middleware.SecurityHeaders(),
		middleware.RateLimit(rateLimiter, logger),
	)

	return middlewareChain(srv)
}

// prepare loads the dataset, prints its preview and renders every figure.
func prepare(ctx context.Context, cfg *config.Config, logger *slog.Logger, out io.Writer) (*services.Analytics, *services.Gallery, error) {
	analytics := services.NewAnalytics(logger)

	loadCtx, cancel := context.WithTimeout(ctx, cfg.Data.LoadTimeout)
	defer cancel()
	if err := analytics.LoadFromCSV(loadCtx, cfg.Data.CSVFile); err != nil {
		return nil, nil, err
	}

	if err := dataset.Preview(out, analytics.Dataset(), cfg.Data.PreviewRows); err != nil {
		return nil, nil, fmt.Errorf("print preview: %w", err)
	}

	gallery := services.NewGallery(cfg.Render.Workers, logger)
	renderCtx, cancelRender := context.WithTimeout(ctx, cfg.Render.Timeout)
	defer cancelRender()
	if err := gallery.Build(renderCtx, analytics); err != nil {
		return nil, nil, err
	}

	return analytics, gallery, nil
}

// loadEnv reads .env style files into the environment. A missing file is
// fine; the environment and defaults still apply.
func loadEnv(logger *slog.Logger, files ...string) {
	err := godotenv.Load(files...)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		logger.Debug("no .env file", "error", err)
	default:
		logger.Warn("failed to load .env file", "error", err)
	}
}

func main() {
	loadEnv(slog.Default())

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Logger)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"version", "1.0.0",
		"csv_file", cfg.Data.CSVFile,
		"render_workers", cfg.Render.Workers,
	)

	start := time.Now()
	analytics, gallery, err := prepare(context.Background(), cfg, logger, os.Stdout)
	if err != nil {
		logger.Error("failed to prepare figures", "error", err)
		os.Exit(1)
	}
	logger.Info("figures ready", "count", len(gallery.Figures()), "duration", time.Since(start))

	httpServer := &http.Server{
		Addr:         cfg.Address(),
		Handler:      newHandler(cfg, analytics, gallery, logger),
		ReadTimeout:  cfg.Viewer.ReadTimeout,
		WriteTimeout: cfg.Viewer.WriteTimeout,
		IdleTimeout:  cfg.Viewer.IdleTimeout,
	}

	gracefulServer := server.NewGracefulServer(httpServer, logger, cfg)

	gracefulServer.RegisterShutdownHook(func(ctx context.Context) error {
		logger.Info("closing viewer", "figures", len(gallery.Figures()))
		return nil
	})

	url, err := gracefulServer.Listen()
	if err != nil {
		logger.Error("failed to start viewer", "error", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, "Dashboard available at %s\n", url)

	if cfg.Viewer.OpenBrowser {
		if err := browser.OpenURL(url); err != nil {
			logger.Warn("could not open browser", "url", url, "error", err)
		}
	}

	if err := gracefulServer.Serve(context.Background()); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}

	logger.Info("application stopped gracefully")
}
