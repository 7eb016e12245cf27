package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/aretw0/wayfinder/internal/cli"
	httpAdapter "github.com/aretw0/wayfinder/pkg/adapters/http"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  `Exposes maze editing and solving as a JSON API, with live events over SSE and Prometheus metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		if ro, _ := cmd.Flags().GetBool("read-only"); ro {
			cfg.Store.ReadOnly = true
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.HTTP.Addr = addr
		}
		backend, err := cli.NewBackend(cfg, logger)
		if err != nil {
			return err
		}
		defer backend.Close()

		opts := []httpAdapter.Option{httpAdapter.WithLogger(logger)}
		if backend.Metrics != nil {
			opts = append(opts, httpAdapter.WithMetrics(backend.Metrics.Handler()))
		}

		srv := &http.Server{
			Addr:              cfg.HTTP.Addr,
			Handler:           httpAdapter.NewHandler(backend.Service, opts...),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("Starting Wayfinder server", "addr", srv.Addr, "store", cfg.Store.Driver)
			serverErrors <- srv.ListenAndServe()
		}()

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
			logger.Info("Start shutdown", "signal", ctx.Signal())

			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("Graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
				return srv.Close()
			}
			logger.Info("Wayfinder server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().Bool("read-only", false, "Refuse every change to stored mazes")
	serveCmd.Flags().String("addr", "", "Listen address (defaults to http.addr from config)")
}
