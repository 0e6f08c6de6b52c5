// Package output renders and persists scan results for the CLI.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/uatoolkit/endpointscan/internal/scanner"
)

// PrettyPrint writes one human-readable line per outcome.
func PrettyPrint(w io.Writer, result *scanner.ScanResult) {
	for _, r := range result.Results {
		switch {
		case r.Skipped():
			fmt.Fprintf(w, "[SKIP] %s (%s)\n", r.URL, r.SkipReason)
		case r.Failed():
			fmt.Fprintf(w, "[ERR] %s -> %s: %s\n", r.URL, r.ErrorKind, r.ErrorDetail)
		default:
			fmt.Fprintf(w, "[%d] %s -> %s, server=%s, len=%s\n",
				r.StatusCode, r.URL, r.FinalURL, orDash(r.Server), lengthOrDash(r.ContentLength))
		}
	}
}

// WriteJSON persists the outcome list to path as indented JSON.
func WriteJSON(path string, result *scanner.ScanResult) error {
	data, err := json.MarshalIndent(result.Results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func lengthOrDash(n *int64) string {
	if n == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *n)
}
