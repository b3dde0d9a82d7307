// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package calc

import "fmt"

// ErrUnexpectedCharacter is the only lexical error.
// It is returned by the Lexer when a rune can't start a token.
type ErrUnexpectedCharacter struct {
	Char rune
	Pos  Position
}

func (e *ErrUnexpectedCharacter) Error() string {
	return fmt.Sprintf("unexpected character %q", e.Char)
}

// ErrTokenizer wraps a lexical error found while parsing,
// so that callers of Parse only deal with parser errors.
type ErrTokenizer struct {
	Err *ErrUnexpectedCharacter
}

func (e *ErrTokenizer) Error() string {
	return fmt.Sprintf("tokenizer error: %v", e.Err)
}

func (e *ErrTokenizer) Unwrap() error {
	return e.Err
}

// ErrUnexpectedToken is returned when a well-formed token
// appears where the grammar doesn't allow it.
type ErrUnexpectedToken struct {
	Token Token
}

func (e *ErrUnexpectedToken) Error() string {
	return fmt.Sprintf("unexpected token %s", e.Token.String())
}

// ErrUnexpectedEOF is returned when the input ends while an operand is expected.
type ErrUnexpectedEOF struct {
	Pos Position
}

func (e *ErrUnexpectedEOF) Error() string {
	return "unexpected end of input"
}

// ErrLiteralOverflow is returned when a number literal does not fit in 32 bits.
type ErrLiteralOverflow struct {
	Token Token
	Err   error
}

func (e *ErrLiteralOverflow) Error() string {
	return fmt.Sprintf("literal %q does not fit in 32 bits", e.Token.Text)
}

func (e *ErrLiteralOverflow) Unwrap() error {
	return e.Err
}

// Error code constants for reporting and storage.
const (
	ErrCodeUnexpectedCharacter = "UNEXPECTED_CHARACTER"
	ErrCodeTokenizer           = "TOKENIZER"
	ErrCodeUnexpectedToken     = "UNEXPECTED_TOKEN"
	ErrCodeUnexpectedEOF       = "UNEXPECTED_EOF"
	ErrCodeLiteralOverflow     = "LITERAL_OVERFLOW"
	ErrCodeUnknown             = "UNKNOWN"
)

// ErrorCode returns the error code string for a given error.
// It returns an empty string for a nil error.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	switch err.(type) {
	case *ErrUnexpectedCharacter:
		return ErrCodeUnexpectedCharacter
	case *ErrTokenizer:
		return ErrCodeTokenizer
	case *ErrUnexpectedToken:
		return ErrCodeUnexpectedToken
	case *ErrUnexpectedEOF:
		return ErrCodeUnexpectedEOF
	case *ErrLiteralOverflow:
		return ErrCodeLiteralOverflow
	default:
		return ErrCodeUnknown
	}
}
