package scanner

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	v := viper.New()
	v.Set("scanner.timeout", "3s")
	v.Set("scanner.robots_timeout", "2s")
	v.Set("scanner.concurrency", 6)
	v.Set("scanner.base_delay", "180ms")
	v.Set("scanner.max_jitter", "100ms")
	v.Set("scanner.retry_backoff", "500ms")
	v.Set("scanner.max_retries", 1)
	v.Set("scanner.verify_tls", true)
	v.Set("scanner.robots_fail_closed", true)

	cfg, err := LoadConfig(v)
	require.NoError(t, err)
	require.Equal(t, 3*time.Second, cfg.Timeout)
	require.Equal(t, 6, cfg.Concurrency)
	require.True(t, cfg.VerifyTLS)
	require.True(t, cfg.RobotsFailClosed)
}

func TestLoadConfigRejectsMissingTimeout(t *testing.T) {
	t.Parallel()

	v := viper.New()
	v.Set("scanner.concurrency", 4)
	_, err := LoadConfig(v)
	require.Error(t, err)
}

func TestDefaultConfigValid(t *testing.T) {
	t.Parallel()
	require.NoError(t, DefaultConfig().Validate())
}

func TestClampConcurrency(t *testing.T) {
	t.Parallel()

	require.Equal(t, 10, ClampConcurrency(0, 10), "non-positive falls back to default")
	require.Equal(t, 10, ClampConcurrency(-3, 10))
	require.Equal(t, 7, ClampConcurrency(7, 10))
	require.Equal(t, MinConcurrency, ClampConcurrency(1, 10))
	require.Equal(t, MaxConcurrency, ClampConcurrency(500, 10))
	require.Equal(t, MinConcurrency, ClampConcurrency(0, -5), "bad default is clamped too")
}
