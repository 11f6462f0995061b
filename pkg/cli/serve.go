package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/govpulse/govpulse/pkg/cli/config"
	controller "github.com/govpulse/govpulse/pkg/controller/http"
	"github.com/govpulse/govpulse/pkg/usecase"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

const (
	serviceName     = "govpulse"
	shutdownTimeout = 10 * time.Second
)

func cmdServe() *cli.Command {
	var (
		serverCfg    config.Server
		telemetryCfg config.Telemetry
		setup        catalogSetup
	)

	flags := joinFlags(
		serverCfg.Flags(),
		setup.flags(),
		telemetryCfg.Flags(),
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start HTTP server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting govpulse server",
				slog.Any("server", serverCfg),
				slog.Any("catalog", setup.catalog),
				slog.Any("postgres", setup.postgres),
				slog.Any("firestore", setup.firestore),
				slog.Any("telemetry", telemetryCfg),
			)

			reportCfg, err := setup.catalog.ReportConfig()
			if err != nil {
				return err
			}

			shutdownTelemetry, err := telemetryCfg.Configure(ctx, serviceName)
			if err != nil {
				return err
			}
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := shutdownTelemetry(shutdownCtx); err != nil {
					logger.Warn("Failed to shutdown telemetry", "error", err)
				}
			}()

			holder, cleanup, err := setup.openCatalog(ctx)
			if err != nil {
				return err
			}

			stopWatcher, err := setup.watchCatalog(ctx, holder)
			if err != nil {
				cleanup()
				return err
			}
			// Providers are closed only after the watcher has stopped reloading
			defer func() {
				stopWatcher()
				cleanup()
			}()

			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			report := usecase.NewReport(holder, reportCfg)

			server, err := controller.NewServer(ctx, serverCfg.Addr, report, serverCfg.Dashboard())
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in goroutine
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
					cancel()
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigChan)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer shutdownCancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
