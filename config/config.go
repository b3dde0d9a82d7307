// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package config loads the calc configuration file.
package config

import (
	"io"
	"log/slog"
	"strings"
	"time"
)

// Config is the complete configuration.
// The same struct is decoded from YAML and TOML files.
type Config struct {
	Log    LogConfig    `yaml:"log"    toml:"log"`
	Store  StoreConfig  `yaml:"store"  toml:"store"`
	Server ServerConfig `yaml:"server" toml:"server"`
	Batch  BatchConfig  `yaml:"batch"  toml:"batch"`
	Repl   ReplConfig   `yaml:"repl"   toml:"repl"`
	Watch  WatchConfig  `yaml:"watch"  toml:"watch"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level" toml:"level"`
	// Format is text or json.
	Format string `yaml:"format" toml:"format"`
}

// StoreConfig controls the parse journal.
type StoreConfig struct {
	// Path is the SQLite database file. Empty means an in-memory journal.
	Path string `yaml:"path" toml:"path"`
}

// ServerConfig controls the web service.
type ServerConfig struct {
	Addr            string        `yaml:"addr"             toml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     toml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    toml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" toml:"shutdown_timeout"`
	MetricsPath     string        `yaml:"metrics_path"     toml:"metrics_path"`
	RecentRuns      int           `yaml:"recent_runs"      toml:"recent_runs"`
}

// BatchConfig controls batch parsing of files.
type BatchConfig struct {
	// Pattern is the glob that file names must match when walking a directory.
	Pattern string `yaml:"pattern" toml:"pattern"`
}

// ReplConfig controls the interactive prompt.
type ReplConfig struct {
	Prompt      string `yaml:"prompt"       toml:"prompt"`
	HistoryFile string `yaml:"history_file" toml:"history_file"`
	NoColor     bool   `yaml:"no_color"     toml:"no_color"`
}

// WatchConfig controls the file watcher.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce" toml:"debounce"`
}

// SlogLevel returns the slog level for the configured level name.
// Unknown names map to info.
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Logger returns a logger that writes to w using the configured level and format.
func (c LogConfig) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	var handler slog.Handler
	switch strings.ToLower(c.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}
