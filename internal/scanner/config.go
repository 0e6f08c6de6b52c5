package scanner

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Concurrency bounds applied to every scan request before scheduling.
const (
	MinConcurrency = 1
	MaxConcurrency = 50
)

// Config captures every knob that influences a scan. It is decoupled from
// Viper so the engine can be constructed and tested without process-global
// state.
type Config struct {
	Timeout          time.Duration
	RobotsTimeout    time.Duration
	Concurrency      int
	BaseDelay        time.Duration
	MaxJitter        time.Duration
	RetryBackoff     time.Duration
	MaxRetries       int
	VerifyTLS        bool
	RobotsFailClosed bool
}

// DefaultConfig mirrors the defaults registered in pkg/config.
func DefaultConfig() Config {
	return Config{
		Timeout:          10 * time.Second,
		RobotsTimeout:    10 * time.Second,
		Concurrency:      10,
		BaseDelay:        180 * time.Millisecond,
		MaxJitter:        100 * time.Millisecond,
		RetryBackoff:     500 * time.Millisecond,
		MaxRetries:       1,
		VerifyTLS:        false,
		RobotsFailClosed: false,
	}
}

// LoadConfig constructs a Config by reading from Viper.
func LoadConfig(v *viper.Viper) (Config, error) {
	cfg := Config{
		Timeout:          v.GetDuration("scanner.timeout"),
		RobotsTimeout:    v.GetDuration("scanner.robots_timeout"),
		Concurrency:      v.GetInt("scanner.concurrency"),
		BaseDelay:        v.GetDuration("scanner.base_delay"),
		MaxJitter:        v.GetDuration("scanner.max_jitter"),
		RetryBackoff:     v.GetDuration("scanner.retry_backoff"),
		MaxRetries:       v.GetInt("scanner.max_retries"),
		VerifyTLS:        v.GetBool("scanner.verify_tls"),
		RobotsFailClosed: v.GetBool("scanner.robots_fail_closed"),
	}
	return cfg, cfg.Validate()
}

// Validate checks for obviously bad configuration combinations.
func (c Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("scanner.timeout must be > 0")
	}
	if c.RobotsTimeout <= 0 {
		return fmt.Errorf("scanner.robots_timeout must be > 0")
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("scanner.concurrency must be > 0")
	}
	if c.BaseDelay < 0 {
		return fmt.Errorf("scanner.base_delay must be >= 0")
	}
	if c.MaxJitter < 0 {
		return fmt.Errorf("scanner.max_jitter must be >= 0")
	}
	if c.RetryBackoff < 0 {
		return fmt.Errorf("scanner.retry_backoff must be >= 0")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("scanner.max_retries must be >= 0")
	}
	return nil
}

// ClampConcurrency bounds a requested concurrency to [MinConcurrency,
// MaxConcurrency]. A non-positive request falls back to def.
func ClampConcurrency(requested, def int) int {
	n := requested
	if n <= 0 {
		n = def
	}
	if n < MinConcurrency {
		n = MinConcurrency
	}
	if n > MaxConcurrency {
		n = MaxConcurrency
	}
	return n
}
