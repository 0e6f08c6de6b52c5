package scanner

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"io"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// maxDrainBytes bounds how much of a response body is read to keep
// connections reusable. Probes only report headers and length, never content.
const maxDrainBytes = 1 << 20

// Prober issues single GET probes with bounded retry and politeness pacing.
// The underlying client follows redirects and shares one transport across
// all workers of a scan; the transport sets no connection cap of its own, so
// the engine's semaphore is the only admission control.
type Prober struct {
	client *http.Client
	cfg    Config
	logger *zap.Logger
}

// NewProber builds a Prober from the scan configuration.
func NewProber(cfg Config, logger *zap.Logger) *Prober {
	return &Prober{
		client: &http.Client{
			Transport: newTransport(cfg),
			Timeout:   cfg.Timeout,
		},
		cfg:    cfg,
		logger: logger,
	}
}

func newTransport(cfg Config) *http.Transport {
	return &http.Transport{
		TLSClientConfig:     &tls.Config{InsecureSkipVerify: !cfg.VerifyTLS}, //nolint:gosec // deliberate default for reconnaissance targets, configurable via scanner.verify_tls
		MaxIdleConnsPerHost: MaxConcurrency,
	}
}

// Probe fetches rawURL once, retrying a single time after a fixed backoff
// when the failure is transport-level. The retry runs strictly after the
// failed attempt and the whole probe-plus-retry sequence happens while the
// caller holds its admission slot. After the final outcome the worker pauses
// for the politeness delay plus jitter so concurrent workers do not burst
// against the target.
func (p *Prober) Probe(ctx context.Context, rawURL string) ProbeOutcome {
	outcome := p.attempt(ctx, rawURL)
	for retry := 0; retry < p.cfg.MaxRetries && outcome.ErrorKind == ErrorClient; retry++ {
		probeRetriesTotal.Inc()
		p.logger.Debug("retrying probe after transport failure",
			zap.String("url", rawURL),
			zap.String("detail", outcome.ErrorDetail),
		)
		pause(ctx, p.cfg.RetryBackoff)
		outcome = p.attempt(ctx, rawURL)
	}
	pause(ctx, p.politenessDelay())
	return outcome
}

func (p *Prober) attempt(ctx context.Context, rawURL string) ProbeOutcome {
	probesTotal.Inc()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		probeErrorsTotal.Inc()
		return ProbeOutcome{URL: rawURL, ErrorKind: ErrorOther, ErrorDetail: err.Error()}
	}
	req.Header.Set("User-Agent", pickIdentity())

	resp, err := p.client.Do(req)
	if err != nil {
		probeErrorsTotal.Inc()
		kind := classify(err)
		p.logger.Debug("probe attempt failed",
			zap.String("url", rawURL),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
		return ProbeOutcome{URL: rawURL, ErrorKind: kind, ErrorDetail: err.Error()}
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			p.logger.Debug("close probe response body", zap.Error(cerr))
		}
	}()
	// Drain a bounded amount so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBytes))

	outcome := ProbeOutcome{
		URL:        rawURL,
		StatusCode: resp.StatusCode,
		Reason:     reasonPhrase(resp),
		FinalURL:   resp.Request.URL.String(),
		Headers:    flattenHeaders(resp.Header),
	}
	if resp.ContentLength >= 0 {
		length := resp.ContentLength
		outcome.ContentLength = &length
	}
	if server := resp.Header.Get("Server"); server != "" {
		outcome.Server = &server
	}
	return outcome
}

func (p *Prober) politenessDelay() time.Duration {
	delay := p.cfg.BaseDelay
	if p.cfg.MaxJitter > 0 {
		delay += time.Duration(rand.Int63n(int64(p.cfg.MaxJitter)))
	}
	return delay
}

// classify maps a request error onto the outcome taxonomy. Timeouts are
// checked first because the client timeout covers the whole request cycle;
// only transport-level failures (ErrorClient) are retried.
func classify(err error) ErrorKind {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrorTimeout
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorTimeout
	}
	if strings.Contains(err.Error(), "malformed HTTP") {
		return ErrorResponse
	}
	var (
		dnsErr     *net.DNSError
		opErr      *net.OpError
		recordErr  tls.RecordHeaderError
		authErr    x509.UnknownAuthorityError
		hostErr    x509.HostnameError
		invalidErr x509.CertificateInvalidError
	)
	switch {
	case errors.As(err, &dnsErr),
		errors.As(err, &opErr),
		errors.As(err, &recordErr),
		errors.As(err, &authErr),
		errors.As(err, &hostErr),
		errors.As(err, &invalidErr),
		errors.Is(err, http.ErrSchemeMismatch),
		errors.Is(err, io.EOF),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.ECONNREFUSED):
		return ErrorClient
	}
	return ErrorOther
}

// reasonPhrase prefers the phrase the server actually sent, falling back to
// the canonical text for the status code.
func reasonPhrase(resp *http.Response) string {
	prefix := strconv.Itoa(resp.StatusCode)
	if phrase := strings.TrimSpace(strings.TrimPrefix(resp.Status, prefix)); phrase != "" {
		return phrase
	}
	return http.StatusText(resp.StatusCode)
}

// flattenHeaders keeps the first value per key, the shape the result
// consumers expect.
func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for key, values := range h {
		if len(values) > 0 {
			out[key] = values[0]
		}
	}
	return out
}

// pause sleeps for d unless the context finishes first.
func pause(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
