// Package cmd defines and implements the CLI commands for the endpointscan
// executable.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/uatoolkit/endpointscan/internal/logging"
	"github.com/uatoolkit/endpointscan/pkg/config"
)

var cfgFile string

// loggerKeyType is the context key the root command uses to hand the logger
// to subcommands.
type loggerKeyType struct{}

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "endpointscan",
		Short: "A polite endpoint scanner for permitted targets.",
		Long: `endpointscan probes a single HTTP host against a list of candidate
paths, reporting per-path status, redirect target, server header, and content
length. It respects the target's robots.txt and bounds request concurrency
and pacing. Scan only targets you are permitted to scan.`,

		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Configuration must be loaded before the logger so that
			// log.development from the file or environment takes effect.
			if cfgFile != "" {
				viper.SetConfigFile(cfgFile)
			}
			config.Init(zap.NewNop())
			logger, err := logging.New(viper.GetBool("log.development"))
			if err != nil {
				return fmt.Errorf("initialize logger: %w", err)
			}
			if used := viper.ConfigFileUsed(); used != "" {
				logger.Info("using config file", zap.String("path", used))
			}
			cmd.SetContext(context.WithValue(cmd.Context(), loggerKeyType{}, logger))
			return nil
		},

		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if logger, err := resolveLogger(cmd.Context()); err == nil {
				_ = logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./endpointscan.yaml)")

	cmd.AddCommand(newScanCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}

func resolveLogger(ctx context.Context) (*zap.Logger, error) {
	logger, ok := ctx.Value(loggerKeyType{}).(*zap.Logger)
	if !ok || logger == nil {
		return nil, errors.New("logger not initialized")
	}
	return logger, nil
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
