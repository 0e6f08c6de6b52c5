package scanner

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func robotsTestServer(t *testing.T, fetches *atomic.Int64) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			if fetches != nil {
				fetches.Add(1)
			}
			fmt.Fprintln(w, "User-agent: *\nDisallow: /blocked")
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRobotsGateAllowsAndDenies(t *testing.T) {
	t.Parallel()

	srv := robotsTestServer(t, nil)
	base, err := url.Parse(srv.URL)
	require.NoError(t, err)

	gate := NewRobotsGate(DefaultConfig(), zap.NewNop())
	require.True(t, gate.Allowed(context.Background(), base, "allowed"))
	require.False(t, gate.Allowed(context.Background(), base, "blocked"))
	require.False(t, gate.Allowed(context.Background(), base, "/blocked/sub"))
}

func TestRobotsGateCachesPerHost(t *testing.T) {
	t.Parallel()

	var fetches atomic.Int64
	srv := robotsTestServer(t, &fetches)
	base, err := url.Parse(srv.URL)
	require.NoError(t, err)

	gate := NewRobotsGate(DefaultConfig(), zap.NewNop())
	for i := 0; i < 5; i++ {
		require.True(t, gate.Allowed(context.Background(), base, "allowed"))
	}
	require.Equal(t, int64(1), fetches.Load(), "robots.txt should be fetched once per host")
}

func TestRobotsGateFailOpen(t *testing.T) {
	t.Parallel()

	// A server that is already gone makes every robots fetch fail.
	srv := httptest.NewServer(http.NotFoundHandler())
	base, err := url.Parse(srv.URL)
	require.NoError(t, err)
	srv.Close()

	gate := NewRobotsGate(DefaultConfig(), zap.NewNop())
	require.True(t, gate.Allowed(context.Background(), base, "anything"),
		"unreadable robots.txt should allow by default")

	closed := DefaultConfig()
	closed.RobotsFailClosed = true
	strictGate := NewRobotsGate(closed, zap.NewNop())
	require.False(t, strictGate.Allowed(context.Background(), base, "anything"),
		"fail-closed gate should deny when robots.txt is unreadable")
}

func TestRobotsGateMissingRobotsAllowsAll(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)
	base, err := url.Parse(srv.URL)
	require.NoError(t, err)

	gate := NewRobotsGate(DefaultConfig(), zap.NewNop())
	require.True(t, gate.Allowed(context.Background(), base, "whatever"))
}
