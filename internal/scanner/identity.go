package scanner

import "math/rand"

// identities is the pool of request identity strings. Each probe draws one
// uniformly at random so a scan does not present a single static
// fingerprint; this is fingerprint variety, not an evasion guarantee.
var identities = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/141.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.5 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/141.0.0.0 Safari/537.36",
	"curl/8.0.1",
	"python-requests/2.31.0",
}

func pickIdentity() string {
	return identities[rand.Intn(len(identities))]
}
