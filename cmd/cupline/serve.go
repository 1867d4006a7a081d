package main

import (
	"context"
	"errors"
	"net/http"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/cupline/internal/adapters/http/api"
	"github.com/okian/cupline/internal/adapters/http/swagger"
	service "github.com/okian/cupline/internal/app"
	"github.com/okian/cupline/pkg/logger"
	"github.com/okian/cupline/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func newServeCmd(gf *globalFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve benchmarks and roster evaluations over HTTP",
		Long: `Start the HTTP API. The benchmark table is loaded from the configured file at
startup; when it is missing the server still starts and reports itself as
degraded on /healthz until benchmarks are built.

Examples:
  # Serve on the configured address
  cupline serve

  # Override the listen address and benchmark file
  cupline serve --addr :8080 --benchmarks ./benchmarks.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := gf.setup(ctx, cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			log := logger.Named("serve")

			// A missing stats database only disables the stored-roster routes.
			var source service.StatSource
			stats, err := openStats(ctx, cfg)
			if err != nil {
				log.Warn(ctx, "stats database unavailable; stored roster routes disabled", logger.Error(err))
			} else {
				defer func() { _ = stats.Close() }()
				source = stats
			}

			svc, _, err := newService(cfg, source)
			if err != nil {
				return err
			}
			if err := svc.Start(ctx); err != nil {
				return err
			}
			metrics.UpdateWorkerCount(cfg.WorkerCount)

			go startSystemMetricsUpdater(ctx)

			mux := http.NewServeMux()
			swagger.Register(ctx, mux)
			api.NewServer(svc, svc).Register(ctx, mux)

			srv := &http.Server{
				Addr:              cfg.Addr,
				Handler:           mux,
				ReadTimeout:       readTimeout,
				WriteTimeout:      writeTimeout,
				IdleTimeout:       idleTimeout,
				ReadHeaderTimeout: readHeaderTimeout,
			}
			return runServer(ctx, srv, log)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address, e.g. :9080")
	return cmd
}

// runServer serves until ctx is cancelled, then shuts down gracefully.
func runServer(ctx context.Context, srv *http.Server, log logger.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
		return err
	}
	log.Info(ctx, "server stopped")
	return nil
}

// startSystemMetricsUpdater refreshes runtime gauges until ctx is done.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(metrics.RefreshInterval())
	defer ticker.Stop()

	updateSystemMetrics()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

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
