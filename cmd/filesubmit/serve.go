package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Long:  "Runs the HTTP server until SIGINT or SIGTERM, then drains in-flight requests.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, r, err := buildApp()
			if err != nil {
				return err
			}

			srv.SetupHTTPServer(r)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			serveErr := make(chan error, 1)
			go func() {
				serveErr <- srv.Start()
			}()

			select {
			case err := <-serveErr:
				srv.LoggerService.Shutdown()
				if err != nil {
					srv.Logger.Error().Err(err).Msg("server stopped")
				}
				return err
			case <-ctx.Done():
			}

			srv.Logger.Info().Msg("shutting down server")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), srv.Config.Server.ShutdownDuration())
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				srv.Logger.Error().Err(err).Msg("graceful shutdown failed")
				return err
			}

			if err := <-serveErr; err != nil {
				return err
			}

			srv.Logger.Info().Msg("server stopped")
			return nil
		},
	}

	return cmd
}
