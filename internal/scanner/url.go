package scanner

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidTarget is returned when the scan target cannot be parsed into an
// absolute HTTP or HTTPS URL. It is the only scan-level failure; it surfaces
// before any network activity begins.
var ErrInvalidTarget = errors.New("invalid target")

// NormalizeTarget parses a raw target into an absolute HTTP(S) URL. A bare
// host without a scheme gets https:// prepended; scheme and host are
// lowercased so equivalent targets compare equal.
func NormalizeTarget(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty target", ErrInvalidTarget)
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTarget, err)
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidTarget, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host", ErrInvalidTarget)
	}
	return u, nil
}

// Resolve joins base and path into the absolute request URL. The base path
// is normalized to exactly one trailing slash and leading slashes are
// stripped from path, so query strings, fragments, and relative segments
// resolve with standard URL-join semantics rather than string concatenation.
// Resolve is pure and has no error path: input that does not parse is joined
// textually and surfaces downstream as a connection failure.
func Resolve(base *url.URL, path string) string {
	b := *base
	b.Path = strings.TrimRight(b.Path, "/") + "/"
	trimmed := strings.TrimLeft(strings.TrimSpace(path), "/")
	ref, err := url.Parse(trimmed)
	if err != nil {
		return b.String() + trimmed
	}
	return b.ResolveReference(ref).String()
}
