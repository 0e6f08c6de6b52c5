package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/uatoolkit/endpointscan/internal/output"
	"github.com/uatoolkit/endpointscan/internal/scanner"
	"github.com/uatoolkit/endpointscan/internal/wordlist"
)

// newScanCmd creates the 'scan' subcommand: one scan of one target, results
// printed to stdout and persisted as JSON.
func newScanCmd() *cobra.Command {
	var (
		wordlistFile string
		concurrency  int
		outputFile   string
	)

	cmd := &cobra.Command{
		Use:   "scan <target>",
		Short: "Scan a target host against a path wordlist",
		Long: `Probes the target against a wordlist of candidate paths, printing one
line per path and saving the full outcome list as JSON. The default embedded
wordlist is used unless --wordlist points to a file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := resolveLogger(cmd.Context())
			if err != nil {
				return err
			}

			cfg, err := scanner.LoadConfig(viper.GetViper())
			if err != nil {
				return fmt.Errorf("load scanner config: %w", err)
			}

			paths := wordlist.Default()
			if wordlistFile != "" {
				loaded, err := wordlist.Load(wordlistFile)
				if err != nil {
					logger.Warn("could not read wordlist; using default list",
						zap.String("path", wordlistFile),
						zap.Error(err),
					)
				} else {
					paths = loaded
				}
			}

			engine, err := scanner.NewEngine(cfg, logger)
			if err != nil {
				return fmt.Errorf("init engine: %w", err)
			}

			result, err := engine.Scan(cmd.Context(), scanner.ScanRequest{
				Target:      args[0],
				Paths:       paths,
				Concurrency: concurrency,
			})
			if err != nil {
				return fmt.Errorf("run scan: %w", err)
			}

			output.PrettyPrint(cmd.OutOrStdout(), result)
			summary := fmt.Sprintf("\nDone. Checked %d paths in %.2fs.", result.Checked, result.DurationSeconds())
			if outputFile != "" {
				if err := output.WriteJSON(outputFile, result); err != nil {
					return fmt.Errorf("save results: %w", err)
				}
				summary += fmt.Sprintf(" Results saved to %s.", outputFile)
			}
			fmt.Fprintln(cmd.OutOrStdout(), summary)
			return nil
		},
	}

	cmd.Flags().StringVarP(&wordlistFile, "wordlist", "w", "", "wordlist file, one path per line (# comments)")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", 0, "concurrent probes, clamped to [1,50] (0 = configured default)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "results.json", "file to write JSON results to (empty to skip)")

	return cmd
}
