// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package config

import "time"

// Default values for configuration fields.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"

	DefaultServerAddr            = "127.0.0.1:8080"
	DefaultServerReadTimeout     = 10 * time.Second
	DefaultServerWriteTimeout    = 10 * time.Second
	DefaultServerShutdownTimeout = 5 * time.Second
	DefaultMetricsPath           = "/metrics"
	DefaultRecentRuns            = 25

	DefaultBatchPattern = "*.expr"

	DefaultReplPrompt      = "calc> "
	DefaultReplHistoryFile = ".calc_history"

	DefaultWatchDebounce = 250 * time.Millisecond
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills in every field that is still at its zero value.
// Store.Path and Repl.NoColor have no default.
func ApplyDefaults(cfg *Config) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultServerAddr
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultServerReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultServerWriteTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultServerShutdownTimeout
	}
	if cfg.Server.MetricsPath == "" {
		cfg.Server.MetricsPath = DefaultMetricsPath
	}
	if cfg.Server.RecentRuns == 0 {
		cfg.Server.RecentRuns = DefaultRecentRuns
	}

	if cfg.Batch.Pattern == "" {
		cfg.Batch.Pattern = DefaultBatchPattern
	}

	if cfg.Repl.Prompt == "" {
		cfg.Repl.Prompt = DefaultReplPrompt
	}
	if cfg.Repl.HistoryFile == "" {
		cfg.Repl.HistoryFile = DefaultReplHistoryFile
	}

	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}
}
