// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package calc

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Diagnostic represents a lexer or parser error with a span in the original source.
type Diagnostic struct {
	Severity slog.Level // Error, Warning, Info
	Code     string     // from ErrorCode
	Message  string     // "unexpected character ' '"
	Span     Span       // where in the input it occurred
	Notes    []string   // optional additional help messages
}

// NewDiagnostic converts an error returned by the Lexer or Parser into a Diagnostic.
// It returns false if err is nil or is not one of this package's errors.
func NewDiagnostic(err error) (Diagnostic, bool) {
	if err == nil {
		return Diagnostic{}, false
	}
	diag := Diagnostic{
		Severity: slog.LevelError,
		Code:     ErrorCode(err),
		Message:  err.Error(),
	}

	var uc *ErrUnexpectedCharacter
	var ut *ErrUnexpectedToken
	var eof *ErrUnexpectedEOF
	var lo *ErrLiteralOverflow
	switch {
	case errors.As(err, &uc):
		diag.Span = Span{Start: uc.Pos.Start, End: uc.Pos.Start + len(string(uc.Char)), Column: uc.Pos.Column}
		if uc.Char == ' ' || uc.Char == '\t' {
			diag.Notes = append(diag.Notes, "whitespace is not allowed between tokens")
		} else if 'A' <= uc.Char && uc.Char <= 'Z' {
			diag.Notes = append(diag.Notes, "identifiers must be lowercase")
		}
	case errors.As(err, &ut):
		diag.Span = spanFromToken(&ut.Token)
		if ut.Token.Kind == Operator {
			diag.Notes = append(diag.Notes, "an operator must follow a number or an identifier")
		}
	case errors.As(err, &eof):
		diag.Span = Span{Start: eof.Pos.Start, End: eof.Pos.Start, Column: eof.Pos.Column}
		diag.Notes = append(diag.Notes, "expected a number or an identifier")
	case errors.As(err, &lo):
		diag.Span = spanFromToken(&lo.Token)
		diag.Notes = append(diag.Notes, "the largest literal is 4294967295")
	default:
		return Diagnostic{}, false
	}
	return diag, true
}

// PrintDiagnostic writes the diagnostic, the source line and a caret
// marking the start of the span.
func PrintDiagnostic(w io.Writer, diag Diagnostic, filename string, src []byte) {
	// Header: file:line:column: ERROR: message
	span := diag.Span
	_, _ = fmt.Fprintf(w, "%s:1:%d: %s: %s\n",
		filename, span.Column,
		diag.Severity.String(), diag.Message)

	_, _ = fmt.Fprintf(w, "    %s\n", src)

	// caret underline, one space per rune before the span
	caretCount := max(span.Column-1, 0)
	width := max(len([]rune(string(span.Text(src)))), 1)
	_, _ = fmt.Fprintf(w, "    %s%s\n", strings.Repeat(" ", caretCount), strings.Repeat("^", width))

	// Notes
	for _, note := range diag.Notes {
		_, _ = fmt.Fprintf(w, "    note: %s\n", note)
	}
}
