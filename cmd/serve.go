package main

import (
	"context"
	"github.com/maxaizer/job-saver/internal/metrics"
	"github.com/maxaizer/job-saver/internal/server"
	"github.com/maxaizer/job-saver/internal/services"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"os/signal"
	"syscall"
	"time"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local HTTP bridge for the browser extension",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(runServe)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(a *app) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if a.cfg.Server.MetricsAddress != "" {
		metrics.StartMetricsServer(a.cfg.Server.MetricsAddress)
	}

	if a.cfg.Server.VerifySchedule != "" {
		monitor, err := services.NewCredentialsMonitor(a.store, a.client, a.notifier, a.cfg.Server.VerifySchedule)
		if err != nil {
			return err
		}
		defer monitor.Stop()
		go monitor.Check(ctx)
	}

	bridge := server.New(a.cfg.Server, a.router, a.settings)
	errs := make(chan error, 1)
	go func() { errs <- bridge.Run() }()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down services...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := bridge.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("Services stopped.")
	return nil
}
