// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package batch parses files of expressions and journals every line.
package batch

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"time"

	"github.com/mdhender/calc"
	"github.com/mdhender/calc/metrics"
	"github.com/mdhender/calc/model"
	"github.com/spf13/afero"
)

// DefaultPattern matches the files parsed when walking a directory.
const DefaultPattern = "*.expr"

// Service parses expressions, records metrics, and journals the runs.
type Service struct {
	store   Store
	metrics *metrics.Collector
	logger  *slog.Logger
	fs      afero.Fs
	pattern string
}

// Store defines the store operations needed by Service.
type Store interface {
	InsertRun(ctx context.Context, run *model.Run) (string, error)
}

// NewService creates a new Service.
// store and collector may be nil; runs are then not journaled or measured.
func NewService(store Store, collector *metrics.Collector, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:   store,
		metrics: collector,
		logger:  logger,
		fs:      afero.NewOsFs(),
		pattern: DefaultPattern,
	}
}

// SetFS sets the filesystem for testing.
func (s *Service) SetFS(fs afero.Fs) {
	s.fs = fs
}

// SetPattern sets the glob that file names must match when walking a directory.
func (s *Service) SetPattern(pattern string) error {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return fmt.Errorf("pattern %q: %w", pattern, err)
	}
	s.pattern = pattern
	return nil
}

// Result is the outcome of parsing one file.
type Result struct {
	Path     string
	Lines    int // expressions parsed; blank lines are not counted
	Accepted int
	Rejected int
	Runs     []*model.Run
}

// Outcome is the result of parsing a single expression.
type Outcome struct {
	Expr calc.Expr // nil when the input was rejected
	Err  error     // the parser error, nil when the input was accepted
	Run  *model.Run
}

// Parse parses a single expression, records it, and returns the outcome.
// A rejected expression is not an error; it is reported in the outcome.
// The error is only set when the run could not be journaled.
func (s *Service) Parse(ctx context.Context, source string, line int, input string) (*Outcome, error) {
	started := time.Now()
	p := calc.NewParser(source, []byte(input), nil)
	expr, perr := p.Parse()
	elapsed := time.Since(started)

	out := &Outcome{Expr: expr, Err: perr, Run: model.NewRun(source, line, input, expr, perr)}
	s.metrics.ObserveParse(metricsSource(source), out.Run.ErrorCode, p.TokenCount(), out.Run.Depth, elapsed)
	if perr != nil {
		s.logger.Debug("batch: rejected", "source", source, "line", line, "code", out.Run.ErrorCode, "err", perr)
	}

	if s.store != nil {
		if _, err := s.store.InsertRun(ctx, out.Run); err != nil {
			return out, &ErrDatabase{Op: "insert run", Err: err}
		}
	}
	return out, nil
}

// ParseFile parses every non-blank line of the file as an expression.
// Carriage returns are stripped. The context is checked between lines.
func (s *Service) ParseFile(ctx context.Context, path string) (*Result, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, &ErrReadFile{Op: "read", Path: path, Err: err}
	}

	started := time.Now()
	result := &Result{Path: path}
	for n, line := range bytes.Split(data, []byte{'\n'}) {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		line = bytes.TrimRight(line, "\r")
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		out, err := s.Parse(ctx, path, n+1, string(line))
		if err != nil {
			return result, err
		}
		run := out.Run
		result.Lines++
		if run.OK {
			result.Accepted++
		} else {
			result.Rejected++
		}
		result.Runs = append(result.Runs, run)
	}

	s.logger.Info("batch: parsed", "path", path, "lines", result.Lines, "accepted", result.Accepted, "rejected", result.Rejected, "elapsed", time.Since(started))
	return result, nil
}

// ParseDir walks root and parses every file whose name matches the pattern.
// Files are parsed in lexical order.
func (s *Service) ParseDir(ctx context.Context, root string) ([]*Result, error) {
	var paths []string
	err := afero.Walk(s.fs, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if ok, _ := filepath.Match(s.pattern, info.Name()); ok {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, &ErrReadFile{Op: "walk", Path: root, Err: err}
	}
	sort.Strings(paths)

	var results []*Result
	for _, path := range paths {
		result, err := s.ParseFile(ctx, path)
		if result != nil {
			results = append(results, result)
		}
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

// ParsePath parses a single file or, for a directory, every matching file in it.
func (s *Service) ParsePath(ctx context.Context, path string) ([]*Result, error) {
	info, err := s.fs.Stat(path)
	if err != nil {
		return nil, &ErrReadFile{Op: "stat", Path: path, Err: err}
	}
	if info.IsDir() {
		return s.ParseDir(ctx, path)
	}
	result, err := s.ParseFile(ctx, path)
	if result == nil {
		return nil, err
	}
	return []*Result{result}, err
}

// metricsSource keeps file names out of metric labels.
func metricsSource(source string) string {
	switch source {
	case "repl", "web", "api", "cli", "watch":
		return source
	}
	return "batch"
}
