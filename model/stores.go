// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package model

import "context"

// Store is the interface for the parse journal.
type Store interface {
	InsertRun(ctx context.Context, run *Run) (string, error)
	GetRun(ctx context.Context, id string) (*Run, error)
	ListRuns(ctx context.Context, limit int) ([]*Run, error)
	ErrorCounts(ctx context.Context) (map[string]int, error)
	Stats(ctx context.Context) (Stats, error)
	Close() error
}

// Stats holds store statistics.
type Stats struct {
	Runs     int
	Accepted int
	Rejected int
}
