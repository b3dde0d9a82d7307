// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package main

import (
	"log/slog"
	"testing"

	"github.com/mdhender/calc/config"
)

func TestLogLevel(t *testing.T) {
	for _, tc := range []struct {
		name                  string
		debug, quiet, verbose bool
		want                  slog.Level
	}{
		{name: "none", want: slog.LevelWarn},
		{name: "verbose", verbose: true, want: slog.LevelDebug},
		{name: "quiet", quiet: true, want: slog.LevelError},
		{name: "debug", debug: true, want: slog.LevelDebug},
		{name: "quiet beats verbose", quiet: true, verbose: true, want: slog.LevelError},
		{name: "debug beats quiet", debug: true, quiet: true, want: slog.LevelDebug},
	} {
		lc := config.LogConfig{Level: logLevel("warn", tc.debug, tc.quiet, tc.verbose)}
		if got := lc.SlogLevel(); got != tc.want {
			t.Errorf("%s: level = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestLogLevel_VerboseChangesDefault(t *testing.T) {
	if got := logLevel(config.DefaultLogLevel, false, false, true); got == config.DefaultLogLevel {
		t.Errorf("--verbose left the level at the default %q", got)
	}
}
