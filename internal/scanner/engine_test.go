package scanner

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/uatoolkit/endpointscan/internal/clock/system"
)

type fakeGate struct {
	denied map[string]bool
}

func (g *fakeGate) Allowed(_ context.Context, _ *url.URL, path string) bool {
	return !g.denied[strings.TrimSpace(path)]
}

type fakeProber struct {
	mu      sync.Mutex
	active  int
	peak    int
	delay   time.Duration
	probed  []string
	outcome func(url string) ProbeOutcome
}

func (p *fakeProber) Probe(_ context.Context, rawURL string) ProbeOutcome {
	p.mu.Lock()
	p.active++
	if p.active > p.peak {
		p.peak = p.active
	}
	p.probed = append(p.probed, rawURL)
	p.mu.Unlock()

	if p.delay > 0 {
		time.Sleep(p.delay)
	}

	p.mu.Lock()
	p.active--
	p.mu.Unlock()

	if p.outcome != nil {
		return p.outcome(rawURL)
	}
	return ProbeOutcome{URL: rawURL, StatusCode: http.StatusOK, Reason: "OK", FinalURL: rawURL}
}

func testEngine(gate Gate, p prober) *Engine {
	return &Engine{
		cfg:    DefaultConfig(),
		gate:   gate,
		prober: p,
		clock:  system.New(),
		logger: zap.NewNop(),
	}
}

func TestScanEveryPathProducesOneOutcome(t *testing.T) {
	t.Parallel()

	probe := &fakeProber{}
	e := testEngine(&fakeGate{}, probe)
	paths := []string{"/", "login", "admin", "status", "  health  "}

	result, err := e.Scan(context.Background(), ScanRequest{
		Target:      "https://example.test",
		Paths:       paths,
		Concurrency: 4,
	})
	require.NoError(t, err)
	require.Len(t, result.Results, len(paths))
	require.Equal(t, len(paths), result.Checked)
	require.Len(t, probe.probed, len(paths))
}

func TestScanRecordsRobotsSkipsWithoutProbing(t *testing.T) {
	t.Parallel()

	probe := &fakeProber{}
	gate := &fakeGate{denied: map[string]bool{"admin": true, "secret": true}}
	e := testEngine(gate, probe)

	result, err := e.Scan(context.Background(), ScanRequest{
		Target: "https://example.test",
		Paths:  []string{"open", "admin", "secret"},
	})
	require.NoError(t, err)
	require.Equal(t, 3, result.Checked)

	var skipped, succeeded int
	for _, outcome := range result.Results {
		switch {
		case outcome.Skipped():
			skipped++
			require.Equal(t, SkipReasonRobots, outcome.SkipReason)
		case outcome.Succeeded():
			succeeded++
		}
	}
	require.Equal(t, 2, skipped)
	require.Equal(t, 1, succeeded)
	require.Equal(t, []string{"https://example.test/open"}, probe.probed,
		"denied paths must never reach the prober")
}

func TestScanHonorsConcurrencyLimit(t *testing.T) {
	t.Parallel()

	probe := &fakeProber{delay: 30 * time.Millisecond}
	e := testEngine(&fakeGate{}, probe)

	paths := make([]string, 10)
	for i := range paths {
		paths[i] = fmt.Sprintf("slow/%d", i)
	}
	result, err := e.Scan(context.Background(), ScanRequest{
		Target:      "https://example.test",
		Paths:       paths,
		Concurrency: 2,
	})
	require.NoError(t, err)
	require.Equal(t, 10, result.Checked)
	require.LessOrEqual(t, probe.peak, 2, "no more than 2 probes may run simultaneously")
}

func TestScanEmptyPathSet(t *testing.T) {
	t.Parallel()

	e := testEngine(&fakeGate{}, &fakeProber{})
	result, err := e.Scan(context.Background(), ScanRequest{Target: "https://example.test"})
	require.NoError(t, err)
	require.Empty(t, result.Results)
	require.Zero(t, result.Checked)
}

func TestScanInvalidTarget(t *testing.T) {
	t.Parallel()

	e := testEngine(&fakeGate{}, &fakeProber{})
	_, err := e.Scan(context.Background(), ScanRequest{Target: "://nope", Paths: []string{"/"}})
	require.ErrorIs(t, err, ErrInvalidTarget)
}

func TestScanCanceledContextStillCoversEveryPath(t *testing.T) {
	t.Parallel()

	probe := &fakeProber{}
	e := testEngine(&fakeGate{}, probe)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := e.Scan(ctx, ScanRequest{
		Target: "https://example.test",
		Paths:  []string{"a", "b", "c"},
	})
	require.NoError(t, err)
	require.Equal(t, 3, result.Checked)
	for _, outcome := range result.Results {
		require.Equal(t, ErrorOther, outcome.ErrorKind)
	}
	require.Empty(t, probe.probed, "no probe may start after cancellation")
}

func TestScanEndToEnd(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "User-agent: *\nDisallow:")
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/", "/status":
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cfg := DefaultConfig()
	cfg.BaseDelay = 0
	cfg.MaxJitter = 0
	e, err := NewEngine(cfg, zap.NewNop())
	require.NoError(t, err)

	result, err := e.Scan(context.Background(), ScanRequest{
		Target:      srv.URL,
		Paths:       []string{"/", "status", "missing"},
		Concurrency: 10,
	})
	require.NoError(t, err)
	require.Equal(t, 3, result.Checked)
	require.Len(t, result.Results, 3)

	statuses := map[int]int{}
	for _, outcome := range result.Results {
		require.True(t, outcome.Succeeded(), "unexpected outcome: %+v", outcome)
		statuses[outcome.StatusCode]++
	}
	require.Equal(t, map[int]int{http.StatusOK: 2, http.StatusNotFound: 1}, statuses)
	require.GreaterOrEqual(t, result.Duration, time.Duration(0))
}
