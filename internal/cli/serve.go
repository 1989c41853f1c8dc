package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	drakehttp "github.com/aretw0/drake/pkg/adapters/http"
	"github.com/aretw0/drake/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// ShutdownTimeout bounds graceful shutdown of the HTTP server.
const ShutdownTimeout = 5 * time.Second

// RunServe serves the board over HTTP until ctx is done.
func RunServe(ctx context.Context, opts Options) error {
	logger := opts.Logger()
	be, err := openBackend(ctx, opts.Config, logger)
	if err != nil {
		return err
	}
	defer be.Close()

	b, err := loadBoard(ctx, opts.Config.Board.Path, be.Store, logger)
	if err != nil {
		return err
	}
	d, err := createDrake(b, logger)
	if err != nil {
		return err
	}

	serverOpts := []drakehttp.Option{
		drakehttp.WithLogger(logger),
		drakehttp.WithStore(be.Store),
		drakehttp.WithLocker(be.Locker),
	}
	if opts.Config.Server.Metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		observability.NewMetrics(reg).Attach(d)
		serverOpts = append(serverOpts, drakehttp.WithGatherer(reg))
	}
	server := drakehttp.NewServer(b, d, serverOpts...)

	srv := &http.Server{
		Addr:              opts.Config.Server.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("serving board", "board", b.Name, "addr", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutting down", "signal", ShutdownSignal(ctx), "timeout", ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown did not complete", "error", err)
			return srv.Close()
		}
		logger.Info("server stopped gracefully")
		return nil
	}
}
