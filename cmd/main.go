package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/gmrcWP/exercise-tracker/internal/adapters/http/api"
	"github.com/gmrcWP/exercise-tracker/internal/adapters/http/apidocs"
	"github.com/gmrcWP/exercise-tracker/internal/adapters/http/site"
	"github.com/gmrcWP/exercise-tracker/internal/adapters/repository"
	service "github.com/gmrcWP/exercise-tracker/internal/app"
	"github.com/gmrcWP/exercise-tracker/internal/config"
	"github.com/gmrcWP/exercise-tracker/pkg/logger"
	"github.com/gmrcWP/exercise-tracker/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	writeTimeout          = 10 * time.Second
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	shutdownTimeout       = 30 * time.Second
	systemMetricsInterval = 10 * time.Second
	dialTimeout           = 10 * time.Second
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics
	// We collect our own custom system metrics instead
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since the logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> .env -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Open the configured store backend
	store, err := openStore(ctx, cfg)
	if err != nil {
		loggerInstance.Error(ctx, "failed to open store", logger.String("store", cfg.Store), logger.Error(err))
		return
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			loggerInstance.Error(context.Background(), "failed to close store", logger.Error(err))
		}
	}()

	// Create the service with configuration options
	svc := service.New(
		service.WithLogger(loggerInstance),
		service.WithStore(store),
		service.WithStoreKind(cfg.Store),
		service.WithDefaultLogLimit(cfg.DefaultLogLimit),
	)

	// Start system metrics updater
	go startSystemMetricsUpdater(ctx)

	// HTTP mux and routes.
	mux := http.NewServeMux()

	// Register the landing page under /
	site.Register(ctx, mux)

	// Register the API docs under /api-docs
	apidocs.Register(ctx, mux)

	// Register business API routes with the service dependency.
	apiServer := api.NewServer(svc, svc)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr), logger.String("store", cfg.Store))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// openStore builds the store backend named by the configuration.
// An unreachable database is logged, not fatal: requests fail individually
// until it comes back. Only a malformed URI aborts startup.
func openStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	switch cfg.Store {
	case config.StoreMemory:
		return repository.NewMemoryStore(), nil
	default:
		dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
		defer cancel()

		client, err := repository.Dial(dialCtx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		if err := repository.Ping(dialCtx, client); err != nil {
			logger.Get().Warn(ctx, "store unreachable at startup; continuing", logger.String("uri", cfg.MongoURI), logger.Error(err))
		}
		return repository.NewMongoStore(client, cfg.MongoDatabase), nil
	}
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
	// Update memory usage
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)

	// Update goroutine count
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
}
