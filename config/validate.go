// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FieldError is a validation error for a single configuration field.
type FieldError struct {
	// Field is the dotted path to the field, e.g. "server.addr".
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError holds every validation error found in a configuration.
type ValidationError struct {
	Errors []FieldError
}

func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	} else if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate returns a ValidationError listing every invalid field, or nil.
func Validate(cfg *Config) error {
	var errs []FieldError

	switch strings.ToLower(cfg.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, FieldError{Field: "log.level", Message: fmt.Sprintf("unknown level %q", cfg.Log.Level)})
	}
	switch strings.ToLower(cfg.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, FieldError{Field: "log.format", Message: fmt.Sprintf("unknown format %q", cfg.Log.Format)})
	}

	if cfg.Server.Addr == "" {
		errs = append(errs, FieldError{Field: "server.addr", Message: "must not be empty"})
	}
	if cfg.Server.ReadTimeout < 0 {
		errs = append(errs, FieldError{Field: "server.read_timeout", Message: "must not be negative"})
	}
	if cfg.Server.WriteTimeout < 0 {
		errs = append(errs, FieldError{Field: "server.write_timeout", Message: "must not be negative"})
	}
	if !strings.HasPrefix(cfg.Server.MetricsPath, "/") {
		errs = append(errs, FieldError{Field: "server.metrics_path", Message: "must start with /"})
	}
	if cfg.Server.RecentRuns < 0 {
		errs = append(errs, FieldError{Field: "server.recent_runs", Message: "must not be negative"})
	}

	if _, err := filepath.Match(cfg.Batch.Pattern, ""); err != nil {
		errs = append(errs, FieldError{Field: "batch.pattern", Message: err.Error()})
	}

	if cfg.Watch.Debounce < 0 {
		errs = append(errs, FieldError{Field: "watch.debounce", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}
