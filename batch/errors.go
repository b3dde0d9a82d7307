// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package batch

import (
	"fmt"

	"github.com/mdhender/calc"
)

// ErrReadFile is returned when file I/O operations fail.
type ErrReadFile struct {
	Op   string // stat, read, walk
	Path string
	Err  error
}

func (e *ErrReadFile) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ErrReadFile) Unwrap() error {
	return e.Err
}

// ErrDatabase is returned when database operations fail.
type ErrDatabase struct {
	Op  string
	Err error
}

func (e *ErrDatabase) Error() string {
	return fmt.Sprintf("database %s: %v", e.Op, e.Err)
}

func (e *ErrDatabase) Unwrap() error {
	return e.Err
}

// Error code constants for service errors.
const (
	ErrCodeReadFile = "READ_FILE"
	ErrCodeDatabase = "DATABASE"
)

// ErrorCode returns the error code string for a given error.
// Errors from the parser map to the calc error codes.
func ErrorCode(err error) string {
	switch err.(type) {
	case *ErrReadFile:
		return ErrCodeReadFile
	case *ErrDatabase:
		return ErrCodeDatabase
	default:
		return calc.ErrorCode(err)
	}
}
