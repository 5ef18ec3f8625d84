package config

import (
	"os"
	"strings"
)

// Environment variables read by loadFromEnv.
const (
	EnvDir           = "TASKER_DIR"
	EnvFilterRules   = "TASKER_FILTER_RULES"
	EnvOnCollision   = "TASKER_ON_COLLISION"
	EnvLogLevel      = "TASKER_LOG_LEVEL"
	EnvLogFormat     = "TASKER_LOG_FORMAT"
	EnvLogTimestamps = "TASKER_LOG_TIMESTAMPS"
	EnvLogCaller     = "TASKER_LOG_CALLER"
)

// loadFromEnv overrides config from environment variables. Empty values
// are ignored.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv(EnvDir); v != "" {
		cfg.TaskDir = v
	}
	if v := os.Getenv(EnvFilterRules); v != "" {
		cfg.FilterRules = v
	}
	if v := os.Getenv(EnvOnCollision); v != "" {
		cfg.OnCollision = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv(EnvLogTimestamps); v != "" {
		cfg.LogTimestamps = boolFromString(v)
	}
	if v := os.Getenv(EnvLogCaller); v != "" {
		cfg.LogCaller = boolFromString(v)
	}
}

func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
