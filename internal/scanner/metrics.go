package scanner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// probesTotal tracks HTTP probe attempts, including retries.
	probesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scanner_probes_total",
		Help: "The total number of probe requests sent, retries included.",
	})
	// probeErrorsTotal tracks probe attempts that resulted in an error.
	probeErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scanner_probe_errors_total",
		Help: "The total number of failed probe attempts.",
	})
	// probeRetriesTotal tracks transient failures that triggered a retry.
	probeRetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scanner_probe_retries_total",
		Help: "The total number of probe retries after transport failures.",
	})
	// robotsDeniedTotal tracks paths skipped by the robots gate.
	robotsDeniedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scanner_robots_denied_total",
		Help: "The total number of paths skipped because robots.txt disallowed them.",
	})
	// scanDurationSeconds observes wall-clock duration of whole scans.
	scanDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "scanner_scan_duration_seconds",
		Help:    "Histogram of wall-clock scan durations.",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
	})
)
