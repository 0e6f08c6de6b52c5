package scanner

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/temoto/robotstxt"
	"go.uber.org/zap"
)

// Gate decides whether a candidate path may be probed.
type Gate interface {
	Allowed(ctx context.Context, base *url.URL, path string) bool
}

// RobotsGate consults the target's robots.txt and evaluates candidate paths
// for the generic user agent. The fetch happens at most once per host; the
// parsed file is cached for the lifetime of the gate, which does not change
// observable behavior within a scan.
//
// When robots.txt cannot be fetched or parsed the gate fails open by
// default, favoring scan completion over strict compliance. That trade-off
// is configurable via scanner.robots_fail_closed.
type RobotsGate struct {
	client     *http.Client
	cache      sync.Map // lowercased host -> *robotstxt.RobotsData
	failClosed bool
	logger     *zap.Logger
}

// NewRobotsGate builds a RobotsGate from the scan configuration.
func NewRobotsGate(cfg Config, logger *zap.Logger) *RobotsGate {
	return &RobotsGate{
		client: &http.Client{
			Transport: newTransport(cfg),
			Timeout:   cfg.RobotsTimeout,
		},
		failClosed: cfg.RobotsFailClosed,
		logger:     logger,
	}
}

// Allowed implements Gate. There is no retry on the robots fetch; a failure
// is logged and resolved according to the fail-open/fail-closed setting,
// never reported as an error.
func (g *RobotsGate) Allowed(ctx context.Context, base *url.URL, path string) bool {
	data, err := g.load(ctx, base)
	if err != nil {
		g.logger.Warn("robots fetch failed",
			zap.String("host", base.Host),
			zap.Bool("fail_closed", g.failClosed),
			zap.Error(err),
		)
		return !g.failClosed
	}
	group := data.FindGroup("*")
	if group == nil {
		return true
	}
	target, err := url.Parse(Resolve(base, path))
	if err != nil {
		return !g.failClosed
	}
	probePath := target.EscapedPath()
	if probePath == "" {
		probePath = "/"
	}
	if target.RawQuery != "" {
		probePath += "?" + target.RawQuery
	}
	return group.Test(probePath)
}

func (g *RobotsGate) load(ctx context.Context, base *url.URL) (*robotstxt.RobotsData, error) {
	hostKey := strings.ToLower(base.Host)
	if cached, ok := g.cache.Load(hostKey); ok {
		data, assertOK := cached.(*robotstxt.RobotsData)
		if !assertOK {
			return nil, fmt.Errorf("robots cache type mismatch: %T", cached)
		}
		return data, nil
	}

	robotsURL := url.URL{Scheme: base.Scheme, Host: base.Host, Path: "/robots.txt"}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("new robots request: %w", err)
	}
	req.Header.Set("User-Agent", pickIdentity())
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch robots: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			g.logger.Debug("close robots response body", zap.Error(cerr))
		}
	}()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read robots body: %w", err)
	}
	data, err := robotstxt.FromStatusAndBytes(resp.StatusCode, body)
	if err != nil {
		return nil, fmt.Errorf("parse robots: %w", err)
	}
	g.cache.Store(hostKey, data)
	return data, nil
}
