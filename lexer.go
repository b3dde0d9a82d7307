// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package calc

import (
	"fmt"
	"iter"
	"log/slog"
	"unicode/utf8"
)

// Lexer invariants and coordinate system
//
// The lexer treats input as an immutable UTF-8 byte slice.
//
// Fields:
//   input       - the original []byte
//   length      - len(input)
//
//   r           - the current rune, or EOF when we have read past the end.
//
//   posCurrRune - index into input of the first byte of r,
//                 or length when r == EOF.
//   posNextRune - index into input of the first byte of the *next* rune,
//                 or length when r == EOF.
//   anchorPos   - index into input where the current token starts.
//
// Invariants (must always hold):
//   0 <= posCurrRune <= posNextRune <= length
//
//   r == EOF  <=> posCurrRune == posNextRune == length
//
//   r != EOF  => posCurrRune < length && posNextRune > posCurrRune
//                and input[posCurrRune:posNextRune] encodes exactly r.
//
// Scanners that produce a token:
//   1. Call setAnchor() while r is the first rune of the token.
//   2. Call advance() while r belongs to the token.
//      When the loop stops, r is the first rune after the token (or EOF).
//   3. Slice the lexeme as input[anchorPos:posCurrRune].
//
// Errors are sticky. Once Scan reports an unexpected character it never
// produces another token; the caller must build a new Lexer to start over.

type Lexer struct {
	name        string // name of the input source
	r           rune   // current rune
	column      int    // column number of current rune
	posCurrRune int    // position of current rune
	posNextRune int    // position of next rune
	length      int    // length of input buffer
	input       []byte

	anchorPos    int
	anchorColumn int

	// canonical end of input token, returned forever once reached
	endToken *Token

	// first lexical error; returned forever once set
	err *ErrUnexpectedCharacter

	// logging
	logger     *slog.Logger
	errorCount int
	tokenCount int
}

// NewLexer returns a lexer positioned on the first rune of input.
// The logger may be nil.
func NewLexer(name string, input []byte, logger *slog.Logger) *Lexer {
	l := &Lexer{
		name:        name,
		input:       input,
		length:      len(input),
		column:      0,
		posNextRune: 0,
		logger:      logger,
	}
	// read the first character to initialize the lexer.
	l.advance()
	return l
}

// Scan returns the next token from the input buffer.
//
// Once we reach end of input, we always return the same EndOfInput token.
// Once we find an unexpected character, we always return the same error.
func (l *Lexer) Scan() (*Token, error) {
	if l.err != nil {
		return nil, l.err
	}
	if l.iseof() {
		if l.endToken == nil {
			l.seteof()
		}
		return l.endToken, nil
	}

	l.setAnchor()

	switch ch := l.peekChar(); {
	case isdigit(ch):
		l.scanNumber()
		return l.token(Number, string(l.input[l.anchorPos:l.posCurrRune]), Add), nil
	case islower(ch):
		l.scanIdentifier()
		return l.token(Identifier, string(l.input[l.anchorPos:l.posCurrRune]), Add), nil
	case ch == '+':
		l.advance()
		return l.token(Operator, "", Add), nil
	case ch == '-':
		l.advance()
		return l.token(Operator, "", Sub), nil
	}

	l.err = &ErrUnexpectedCharacter{
		Char: l.peekChar(),
		Pos: Position{
			Column: l.anchorColumn,
			Start:  l.anchorPos,
		},
	}
	l.error("unexpected character %q", l.err.Char)
	return nil, l.err
}

// All returns the remaining tokens as a lazy sequence.
// The sequence ends at end of input (the EndOfInput token is not yielded)
// or immediately after yielding the first error.
//
// The sequence shares the lexer's cursor, so it cannot be restarted.
func (l *Lexer) All() iter.Seq2[*Token, error] {
	return func(yield func(*Token, error) bool) {
		for {
			tok, err := l.Scan()
			if err != nil {
				yield(nil, err)
				return
			} else if tok.Kind == EndOfInput {
				return
			}
			if !yield(tok, nil) {
				return
			}
		}
	}
}

// Tokenize returns a lazy token sequence over input.
func Tokenize(input string) iter.Seq2[*Token, error] {
	return NewLexer("", []byte(input), nil).All()
}

// TokenCount returns the number of tokens produced so far, not counting EndOfInput.
func (l *Lexer) TokenCount() int {
	return l.tokenCount
}

// ErrorCount returns the number of lexical errors reported (zero or one).
func (l *Lexer) ErrorCount() int {
	return l.errorCount
}

// scanNumber accepts a run of decimal digits.
func (l *Lexer) scanNumber() {
	for isdigit(l.peekChar()) {
		l.advance()
	}
}

// scanIdentifier accepts a lowercase letter followed by a run of
// lowercase letters, digits and underscores.
func (l *Lexer) scanIdentifier() {
	if !islower(l.peekChar()) {
		return
	}
	for isident(l.peekChar()) {
		l.advance()
	}
}

// token builds a token that spans from the anchor to the current rune.
func (l *Lexer) token(kind Kind, text string, op Op) *Token {
	l.tokenCount++
	tok := &Token{
		Position: Position{
			Column: l.anchorColumn,
			Start:  l.anchorPos,
		},
		End:  l.posCurrRune,
		Kind: kind,
		Text: text,
		Op:   op,
	}
	l.debug("%s", tok)
	return tok
}

// peekChar returns the current character without advancing the input.
func (l *Lexer) peekChar() rune {
	return l.r
}

// setAnchor marks the start of the current token.
func (l *Lexer) setAnchor() {
	l.anchorPos = l.posCurrRune
	l.anchorColumn = l.column
}

// advance moves to the next rune and updates the column.
// On end of input, it sets r == EOF and both positions to length and returns.
func (l *Lexer) advance() {
	// already at or past the end?
	if l.posNextRune >= l.length {
		if l.r != EOF {
			l.column++
		}
		l.posCurrRune, l.posNextRune = l.length, l.length
		l.r = EOF
		return
	}

	l.column++
	l.posCurrRune = l.posNextRune

	// read the next rune, optimizing for ASCII grammars.
	r, w := rune(l.input[l.posCurrRune]), 1
	if r >= utf8.RuneSelf {
		// the current rune must be decoded
		r, w = utf8.DecodeRune(l.input[l.posCurrRune:])
	}
	l.posNextRune = l.posCurrRune + w
	l.r = r
}

func (l *Lexer) iseof() bool {
	return l.r == EOF
}

func (l *Lexer) debug(format string, args ...any) {
	if l.logger == nil {
		return
	}
	l.logger.Debug(fmt.Sprintf("%s:%d: %s", l.name, l.anchorColumn, fmt.Sprintf(format, args...)))
}

func (l *Lexer) error(format string, args ...any) {
	l.errorCount++
	if l.logger == nil {
		return
	}
	l.logger.Error(fmt.Sprintf("%s:%d: %s", l.name, l.anchorColumn, fmt.Sprintf(format, args...)))
}

// seteof updates the Lexer state to enforce the end of input invariants:
// * r is EOF
// * posCurrRune = posNextRune = length
// * endToken is set to the canonical EOF token
func (l *Lexer) seteof() {
	l.r = EOF
	l.posCurrRune = l.length
	l.posNextRune = l.length
	if l.endToken == nil {
		l.endToken = &Token{
			Position: Position{
				Column: l.column,
				Start:  l.length,
			},
			End:  l.length,
			Kind: EndOfInput,
		}
	}
}
