// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mdhender/calc/model"
)

// InsertRun inserts a Run and returns its ID.
// If run.ID is empty a new uuid is assigned to it.
func (s *SQLiteStore) InsertRun(ctx context.Context, run *model.Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	const query = `
		INSERT INTO runs (id, source, line, input, ok, tree, infix, depth,
		                  error_code, error_message, error_column, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	ok := 0
	if run.OK {
		ok = 1
	}
	_, err := s.db.ExecContext(ctx, query,
		run.ID,
		nullString(run.Source),
		run.Line,
		run.Input,
		ok,
		nullString(run.Tree),
		nullString(run.Infix),
		run.Depth,
		nullString(run.ErrorCode),
		nullString(run.ErrorMessage),
		nullInt(run.Column),
		run.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return run.ID, nil
}

const selectRuns = `
	SELECT id, source, line, input, ok, tree, infix, depth,
	       error_code, error_message, error_column, created_at
	FROM runs
`

// GetRun returns a run by ID, or nil if not found.
func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*model.Run, error) {
	row := s.db.QueryRowContext(ctx, selectRuns+` WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first.
// A limit of zero or less returns every run.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]*model.Run, error) {
	query := selectRuns + ` ORDER BY created_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*model.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// ErrorCounts returns the number of rejected runs for each error code.
func (s *SQLiteStore) ErrorCounts(ctx context.Context) (map[string]int, error) {
	const query = `
		SELECT error_code, COUNT(*)
		FROM runs
		WHERE ok = 0
		GROUP BY error_code
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error counts: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var code sql.NullString
		var n int
		if err := rows.Scan(&code, &n); err != nil {
			return nil, fmt.Errorf("scan error count: %w", err)
		}
		counts[code.String] = n
	}
	return counts, rows.Err()
}

// Stats returns the number of accepted and rejected runs.
func (s *SQLiteStore) Stats(ctx context.Context) (model.Stats, error) {
	const query = `SELECT COUNT(*), COALESCE(SUM(ok), 0) FROM runs`
	var stats model.Stats
	if err := s.db.QueryRowContext(ctx, query).Scan(&stats.Runs, &stats.Accepted); err != nil {
		return model.Stats{}, fmt.Errorf("stats: %w", err)
	}
	stats.Rejected = stats.Runs - stats.Accepted
	return stats, nil
}

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*model.Run, error) {
	var run model.Run
	var source, tree, infix, errorCode, errorMessage sql.NullString
	var column sql.NullInt64
	var ok int
	var createdAt string
	if err := row.Scan(
		&run.ID,
		&source,
		&run.Line,
		&run.Input,
		&ok,
		&tree,
		&infix,
		&run.Depth,
		&errorCode,
		&errorMessage,
		&column,
		&createdAt,
	); err != nil {
		return nil, err
	}
	run.Source = source.String
	run.OK = ok == 1
	run.Tree = tree.String
	run.Infix = infix.String
	run.ErrorCode = errorCode.String
	run.ErrorMessage = errorMessage.String
	run.Column = int(column.Int64)
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		run.CreatedAt = t
	}
	return &run, nil
}
