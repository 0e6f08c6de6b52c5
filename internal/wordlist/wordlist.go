// Package wordlist provides the candidate path lists a scan probes.
package wordlist

import (
	"fmt"
	"os"
	"strings"
)

// defaultPaths is the embedded wordlist of common, low-sensitivity
// endpoints used when the caller supplies none.
var defaultPaths = []string{
	"/", "index.html", "home", "login", "logout", "admin", "dashboard",
	"user", "api/", "api/v1/", "status", "health", "ping",
	"robots.txt", "sitemap.xml", "favicon.ico", ".well-known/security.txt",
	"wp-login.php", "wp-admin", "admin/login", "config", ".well-known/assetlinks.json",
}

// Default returns a copy of the embedded wordlist.
func Default() []string {
	out := make([]string, len(defaultPaths))
	copy(out, defaultPaths)
	return out
}

// Load reads a wordlist file, one path per line, skipping blank lines and
// lines starting with #.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading wordlist %s: %w", path, err)
	}
	lines := strings.Split(string(data), "\n")
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		result = append(result, line)
	}
	return result, nil
}
