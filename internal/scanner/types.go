// Package scanner implements the endpoint scan engine: concurrency-bounded
// fan-out of HTTP path probes with robots.txt gating, bounded retry on
// transient failures, and aggregation into a single result set.
package scanner

import "time"

// ErrorKind classifies a failed probe.
type ErrorKind string

// Failure categories recorded on ProbeOutcome.
const (
	ErrorTimeout  ErrorKind = "timeout"
	ErrorResponse ErrorKind = "response_error"
	ErrorClient   ErrorKind = "client_error"
	ErrorOther    ErrorKind = "other_error"
)

// SkipReasonRobots marks paths the robots gate refused.
const SkipReasonRobots = "disallowed_by_robots_txt"

// ScanRequest describes a single scan invocation.
type ScanRequest struct {
	Target      string   `json:"target"`
	Paths       []string `json:"paths"`
	Concurrency int      `json:"concurrency"`
}

// ProbeOutcome records the result of one path probe, keyed by the URL that
// was requested. Exactly one of the three variants is populated: success
// (StatusCode > 0), skipped (SkipReason != ""), or failed (ErrorKind != "").
type ProbeOutcome struct {
	URL           string            `json:"url"`
	StatusCode    int               `json:"status,omitempty"`
	Reason        string            `json:"reason,omitempty"`
	FinalURL      string            `json:"final_url,omitempty"`
	ContentLength *int64            `json:"content_length,omitempty"`
	Server        *string           `json:"server,omitempty"`
	Headers       map[string]string `json:"headers,omitempty"`
	SkipReason    string            `json:"skipped,omitempty"`
	ErrorKind     ErrorKind         `json:"error,omitempty"`
	ErrorDetail   string            `json:"error_detail,omitempty"`
}

// Succeeded reports whether the probe received an HTTP response.
func (o ProbeOutcome) Succeeded() bool { return o.StatusCode > 0 }

// Skipped reports whether the path was refused before any request was sent.
func (o ProbeOutcome) Skipped() bool { return o.SkipReason != "" }

// Failed reports whether the probe errored out.
func (o ProbeOutcome) Failed() bool { return o.ErrorKind != "" }

// ScanResult aggregates every outcome of one scan. Outcomes land in
// completion order, not submission order; every submitted path contributes
// exactly one entry, so len(Results) == Checked always holds.
type ScanResult struct {
	Results  []ProbeOutcome `json:"results"`
	Checked  int            `json:"checked"`
	Duration time.Duration  `json:"-"`
}

// DurationSeconds returns the wall-clock scan time in the unit the API
// reports.
func (r *ScanResult) DurationSeconds() float64 { return r.Duration.Seconds() }
