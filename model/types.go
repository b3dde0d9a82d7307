// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package model

import (
	"time"

	"github.com/mdhender/calc"
)

// Run is the journal record of a single parse.
type Run struct {
	ID     string `json:"id"               db:"id"`     // uuid, assigned by the store
	Source string `json:"source,omitempty" db:"source"` // file name, "repl", "web", ...
	Line   int    `json:"line,omitempty"   db:"line"`   // 1-based line in Source, 0 when not from a file
	Input  string `json:"input"            db:"input"`

	OK    bool   `json:"ok"              db:"ok"`
	Tree  string `json:"tree,omitempty"  db:"tree"`  // debug form of the AST
	Infix string `json:"infix,omitempty" db:"infix"` // canonical source form of the AST
	Depth int    `json:"depth"           db:"depth"`

	ErrorCode    string `json:"errorCode,omitempty"    db:"error_code"`
	ErrorMessage string `json:"errorMessage,omitempty" db:"error_message"`
	Column       int    `json:"column,omitempty"       db:"error_column"` // 1-based column of the error

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// NewRun builds a Run from the result of calc.Parse.
// Exactly one of expr and err should be set.
func NewRun(source string, line int, input string, expr calc.Expr, err error) *Run {
	run := &Run{
		Source:    source,
		Line:      line,
		Input:     input,
		CreatedAt: time.Now().UTC(),
	}
	if err != nil {
		run.ErrorCode = calc.ErrorCode(err)
		run.ErrorMessage = err.Error()
		if diag, ok := calc.NewDiagnostic(err); ok {
			run.Column = diag.Span.Column
		}
		return run
	} else if expr == nil {
		run.ErrorCode = calc.ErrCodeUnknown
		run.ErrorMessage = "no expression"
		return run
	}
	run.OK = true
	run.Tree = expr.String()
	run.Infix = expr.Infix()
	run.Depth = calc.Depth(expr)
	return run
}
