package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/coinrng/internal/adapters/http/api"
	"github.com/okian/coinrng/internal/adapters/http/middleware"
	"github.com/okian/coinrng/internal/adapters/http/site"
	"github.com/okian/coinrng/internal/adapters/http/swagger"
	app "github.com/okian/coinrng/internal/app"
	"github.com/okian/coinrng/internal/config"
	"github.com/okian/coinrng/pkg/logger"
	"github.com/okian/coinrng/pkg/metrics"
)

// HTTP server and updater constants.
const (
	readHeaderTimeout         = 5 * time.Second
	systemMetricsInterval     = 10 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	if err := run(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func run() error {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		return errors.New("failed to load config: " + err.Error())
	}

	if err := logger.InitWithFormat(cfg.LogFormat, os.Stdout); err != nil {
		return errors.New("failed to initialize logging: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	metrics.SetEnabled(cfg.MetricsEnabled)

	svc := app.New(app.WithLogger(log.Named("coin")))
	if err := svc.Start(ctx); err != nil {
		return errors.New("failed to start service: " + err.Error())
	}
	defer svc.Stop()

	if cfg.MetricsEnabled {
		go startSystemMetricsUpdater(ctx)
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHandler(ctx, svc),
		ReadTimeout:       cfg.ReadTimeout(),
		WriteTimeout:      cfg.WriteTimeout(),
		IdleTimeout:       cfg.IdleTimeout(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Wait for shutdown signal or a listener failure.
	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			return errors.New("HTTP server failed: " + err.Error())
		}
	}
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
	return nil
}

// newHandler registers every route and wraps the mux in the server-wide
// middlewares.
func newHandler(ctx context.Context, svc *app.Service) http.Handler {
	mux := http.NewServeMux()

	site.Register(ctx, mux)
	swagger.Register(ctx, mux)
	api.NewServer(svc).Register(ctx, mux)

	return middleware.Recover(middleware.RequestID(middleware.AccessLog(mux)))
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	var avgPauseMs float64
	if m.NumGC > 0 {
		avgPauseMs = float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
	}
	metrics.UpdateSystem(m.Alloc, runtime.NumGoroutine(), avgPauseMs)
}
