package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Brownie44l1/webserver/internal/config"
	"github.com/Brownie44l1/webserver/internal/server"
)

func newServeCmd(cfgFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the file server",
		Long: `Start serving the document root.

Settings are taken from flags, then WEBSERVER_* environment variables,
then the config file, then built-in defaults. SIGINT or SIGTERM stops
accepting connections and waits for in-flight ones to finish.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, *cfgFile)
		},
	}
	config.RegisterFlags(cmd.Flags())
	return cmd
}

func runServe(cmd *cobra.Command, cfgFile string) error {
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger := server.NewLogger(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	srv := server.New(cfg, server.WithLogger(logger))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting server",
		server.Field{Key: "addr", Value: cfg.Addr},
		server.Field{Key: "root", Value: cfg.Root},
	)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.ListenAndServe()
	}()

	serving := true
	select {
	case err := <-serverErr:
		serving = false
		if err != nil && !errors.Is(err, server.ErrServerClosed) {
			logger.Error("server error", server.Field{Key: "error", Value: err})
			return fmt.Errorf("serve: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down gracefully")
	}

	shutdownCtx := context.Background()
	if cfg.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		shutdownCtx, cancel = context.WithTimeout(shutdownCtx, cfg.ShutdownTimeout)
		defer cancel()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", server.Field{Key: "error", Value: err})
		return fmt.Errorf("shutdown: %w", err)
	}
	if serving {
		// The accept loop returns once the listener is closed.
		<-serverErr
	}

	printStats(cmd.OutOrStdout(), srv.Stats())
	logger.Info("server stopped")
	return nil
}

func printStats(w io.Writer, stats server.MetricsSnapshot) {
	fmt.Fprintln(w, "Final stats:")
	fmt.Fprintf(w, "  Connections:      %d\n", stats.ConnectionsTotal)
	fmt.Fprintf(w, "  200 responses:    %d\n", stats.Responses2xx)
	fmt.Fprintf(w, "  404 responses:    %d\n", stats.Responses4xx)
	fmt.Fprintf(w, "  Invalid requests: %d\n", stats.InvalidRequests)
	fmt.Fprintf(w, "  Errors:           %d\n", stats.ErrorsTotal)
	fmt.Fprintf(w, "  Body bytes:       %d\n", stats.BodyBytes)
	fmt.Fprintf(w, "  Avg latency:      %s\n", stats.AverageLatency)
}
