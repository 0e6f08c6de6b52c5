package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/uatoolkit/endpointscan/internal/api"
	"github.com/uatoolkit/endpointscan/internal/scanner"
)

// newServeCmd creates the 'serve' subcommand: the HTTP front end with the
// single-page UI and the JSON scan API.
func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scanner UI and JSON API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := resolveLogger(cmd.Context())
			if err != nil {
				return err
			}

			cfg, err := scanner.LoadConfig(viper.GetViper())
			if err != nil {
				return fmt.Errorf("load scanner config: %w", err)
			}
			engine, err := scanner.NewEngine(cfg, logger)
			if err != nil {
				return fmt.Errorf("init engine: %w", err)
			}

			if addr == "" {
				addr = viper.GetString("http.addr")
			}
			server := &http.Server{
				Addr:              addr,
				Handler:           api.NewServer(engine, logger).Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.Info("listening", zap.String("addr", addr))
				errCh <- server.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("serve: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from http.addr config)")

	return cmd
}
