// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package calc

import "fmt"

// Token represents a single lexical token from the input.
type Token struct {
	Position

	// End is the byte offset in the original input slice.
	// It is exclusive: input[Start:End] is the token's lexeme.
	End int

	Kind Kind // Number, Identifier, Operator or EndOfInput

	// Text is the verbatim digit run for Number tokens and the
	// name for Identifier tokens. It is empty for operators.
	Text string

	// Op is only meaningful when Kind is Operator.
	Op Op
}

// Is reports whether tok.Kind matches the provided kind.
//
// It returns false if tok is nil.
func (tok *Token) Is(kind Kind) bool {
	if tok == nil {
		return false
	}
	return tok.Kind == kind
}

// Length is the length of the lexeme, in bytes.
func (tok *Token) Length() int {
	return tok.End - tok.Position.Start
}

// Lexeme is a helper to return the original text of the token.
func (tok *Token) Lexeme(input []byte) []byte {
	return input[tok.Position.Start:tok.End]
}

// String renders the token the way it would be written in a test fixture,
// e.g. Number("10"), Identifier("foo") or Operator(Add).
func (tok *Token) String() string {
	if tok == nil {
		return "<nil>"
	}
	switch tok.Kind {
	case Number, Identifier:
		return fmt.Sprintf("%s(%q)", tok.Kind, tok.Text)
	case Operator:
		return fmt.Sprintf("%s(%s)", tok.Kind, tok.Op)
	}
	return tok.Kind.String()
}

// Position represents a position in the original source code.
// Expressions are a single line, so there is no line number.
type Position struct {
	Column int // 1-based, character column
	Start  int // byte index into input (0-based); always required
}

// Span represents a range in the source: [Start, End).
type Span struct {
	// Byte offsets into the original input slice.
	// End is exclusive: input[Start:End] is the covered text.
	Start int
	End   int

	// 1-based column of the *start* of the span.
	Column int
}

// Text is a helper to return the original text of the span.
func (s Span) Text(input []byte) []byte {
	if s.Start > len(input) {
		return nil
	}
	if s.End > len(input) {
		return input[s.Start:]
	}
	return input[s.Start:s.End]
}

// spanFromToken creates a Span that covers a single token.
func spanFromToken(tok *Token) Span {
	return Span{
		Start:  tok.Position.Start,
		End:    tok.End,
		Column: tok.Position.Column,
	}
}
