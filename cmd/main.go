package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/wcarank/internal/adapters/http/api"
	"github.com/okian/wcarank/internal/adapters/http/site"
	"github.com/okian/wcarank/internal/adapters/http/swagger"
	"github.com/okian/wcarank/internal/adapters/source"
	app "github.com/okian/wcarank/internal/app"
	"github.com/okian/wcarank/internal/config"
	"github.com/okian/wcarank/pkg/logger"
	"github.com/okian/wcarank/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	systemMetricsInterval     = 10 * time.Second
	serviceMetricsInterval    = 5 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	if err := run(); err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func run() error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.LogFormat != logger.FormatText {
		if err := logger.InitWithWriter(os.Stdout, cfg.LogFormat); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}
	}
	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc := app.New(
		app.WithLogger(log),
		app.WithLoader(newLoader(cfg, log)),
	)
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("failed to start service: %w", err)
	}
	defer svc.Stop()

	go startSystemMetricsUpdater(ctx)
	go startServiceMetricsUpdater(ctx, svc)

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	go watchReload(ctx, svc, hup, log)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.CORS(newMux(ctx, svc), cfg.AllowedOrigins()),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
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

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
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

// newLoader reads both exports from the configured locations and caches
// the result for the configured TTL.
func newLoader(cfg *config.Config, log logger.Logger) *source.CachedLoader {
	tsv := source.NewTSVLoader(
		source.NewSource(cfg.ResultsSource, cfg.FetchTimeout()),
		source.NewSource(cfg.RanksSource, cfg.FetchTimeout()),
		source.WithLogger(log.Named("source")),
	)
	return source.NewCachedLoader(tsv, source.WithTTL(cfg.CacheTTL()))
}

// newMux registers the API, the docs and the search page.
func newMux(ctx context.Context, svc *app.Service) *http.ServeMux {
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	api.NewServer(svc, svc).Register(ctx, mux)
	site.Register(ctx, mux)
	return mux
}

// watchReload reloads the dataset on every signal received on sig.
func watchReload(ctx context.Context, svc *app.Service, sig <-chan os.Signal, log logger.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sig:
			log.Info(ctx, "reload requested")
			if err := svc.Reload(ctx); err != nil {
				log.Error(ctx, "reload failed", logger.Error(err))
			}
		}
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

// startServiceMetricsUpdater starts a background goroutine that updates service metrics.
func startServiceMetricsUpdater(ctx context.Context, svc *app.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateServiceMetrics(svc)
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}

// updateServiceMetrics refreshes the dataset gauges from the current snapshot.
func updateServiceMetrics(svc *app.Service) {
	stats := svc.GetStats()
	if records, ok := stats["records"].(int); ok {
		metrics.UpdateMergedRows(records)
	}
	if groups, ok := stats["groups"].(int); ok {
		metrics.UpdateIndexGroups(groups)
	}
}
