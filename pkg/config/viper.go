// Package config initializes the application's configuration. It uses Viper
// to read settings from a config file and environment variables so every
// package sees one unified configuration.
package config

import (
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Init sets Viper defaults, search paths, and env var handling. Call once at
// startup, before any package reads configuration.
func Init(logger *zap.Logger) {
	viper.SetConfigName("endpointscan")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/endpointscan/")
	viper.AddConfigPath("$HOME/.endpointscan")

	viper.SetDefault("scanner.timeout", "10s")
	viper.SetDefault("scanner.robots_timeout", "10s")
	viper.SetDefault("scanner.concurrency", 10)
	viper.SetDefault("scanner.base_delay", "180ms")
	viper.SetDefault("scanner.max_jitter", "100ms")
	viper.SetDefault("scanner.retry_backoff", "500ms")
	viper.SetDefault("scanner.max_retries", 1)
	viper.SetDefault("scanner.verify_tls", false)
	viper.SetDefault("scanner.robots_fail_closed", false)
	viper.SetDefault("http.addr", ":5000")
	viper.SetDefault("log.development", false)

	viper.SetEnvPrefix("SCANNER") // e.g. SCANNER_SCANNER_VERIFY_TLS=true
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.Debug("no config file found; using defaults and environment variables")
		} else {
			logger.Error("error reading config file", zap.Error(err))
		}
	} else {
		logger.Info("using config file", zap.String("path", viper.ConfigFileUsed()))
	}
}
