package scanner

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/uatoolkit/endpointscan/internal/clock/system"
)

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}

// prober abstracts the probe worker so the engine can be tested with
// instrumented fakes.
type prober interface {
	Probe(ctx context.Context, rawURL string) ProbeOutcome
}

// Engine orchestrates scans: it resolves and robots-gates every path
// synchronously, then fans permitted paths out to probe workers bounded by a
// weighted semaphore. An Engine is stateless across scans and safe for
// concurrent use.
type Engine struct {
	cfg    Config
	gate   Gate
	prober prober
	clock  Clock
	logger *zap.Logger
}

// NewEngine builds an Engine with a robots gate and prober derived from cfg.
func NewEngine(cfg Config, logger *zap.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("scanner config: %w", err)
	}
	return &Engine{
		cfg:    cfg,
		gate:   NewRobotsGate(cfg, logger),
		prober: NewProber(cfg, logger),
		clock:  system.New(),
		logger: logger,
	}, nil
}

// Scan probes every path in req against the target and returns the full
// result set. Per-path failures are recovered into outcomes; the only error
// returned is an invalid target, surfaced before any network activity.
//
// The robots check runs synchronously per path and is not counted against
// the concurrency budget. A permitted path holds one semaphore slot for its
// entire probe-plus-retry lifetime. The call waits for every scheduled
// worker, so the result is all-or-nothing with respect to the submitted
// paths. Canceling ctx stops admitting new workers; paths that never got a
// slot are recorded as failed outcomes so every submitted path still
// produces exactly one entry.
func (e *Engine) Scan(ctx context.Context, req ScanRequest) (*ScanResult, error) {
	base, err := NormalizeTarget(req.Target)
	if err != nil {
		return nil, err
	}
	limit := ClampConcurrency(req.Concurrency, e.cfg.Concurrency)
	start := e.clock.Now()

	var (
		mu      sync.Mutex
		results = make([]ProbeOutcome, 0, len(req.Paths))
		wg      sync.WaitGroup
	)
	sem := semaphore.NewWeighted(int64(limit))
	collect := func(outcome ProbeOutcome) {
		mu.Lock()
		results = append(results, outcome)
		mu.Unlock()
	}

	for _, raw := range req.Paths {
		path := strings.TrimSpace(raw)
		target := Resolve(base, path)
		if !e.gate.Allowed(ctx, base, path) {
			robotsDeniedTotal.Inc()
			e.logger.Debug("path disallowed by robots.txt", zap.String("url", target))
			collect(ProbeOutcome{URL: target, SkipReason: SkipReasonRobots})
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := sem.Acquire(ctx, 1); err != nil {
				collect(ProbeOutcome{
					URL:         target,
					ErrorKind:   ErrorOther,
					ErrorDetail: fmt.Sprintf("scan canceled before probe: %v", err),
				})
				return
			}
			defer sem.Release(1)
			collect(e.prober.Probe(ctx, target))
		}()
	}
	wg.Wait()

	duration := e.clock.Now().Sub(start)
	scanDurationSeconds.Observe(duration.Seconds())
	e.logger.Info("scan finished",
		zap.String("target", base.String()),
		zap.Int("checked", len(results)),
		zap.Int("concurrency", limit),
		zap.Duration("duration", duration),
	)
	return &ScanResult{Results: results, Checked: len(results), Duration: duration}, nil
}
