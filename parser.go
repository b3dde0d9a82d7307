// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package calc

import (
	"fmt"
	"log/slog"
	"strconv"
)

/*
Invariants:
 * lexer is private:
   * Only scan() ever calls p.lexer.Scan().
   * All parsing code uses advance() / peek() only.
 * Token cursor semantics
   * The lookahead is loaded lazily. peek() scans only when nothing is
     loaded, so the lexer never runs ahead of the grammar and errors are
     reported in the order the input is read.
   * peek() returns the lookahead token (or lexer error) without consuming it.
   * advance() returns the lookahead and clears it.
   * Once EndOfInput has been produced, peek() and advance() return it forever.
   * Once the lexer fails, peek() and advance() return that error forever.
 * Grammar
     expr ::= atom ( Operator expr )?
     atom ::= Number | Identifier
   The right operand is a full expr, so a chain nests to the right:
     a+b-c  =>  Operation(a, Add, Operation(b, Sub, c))
*/

// Parser is a recursive descent parser for expressions.
// A Parser is single-use; create a new one for each input.
type Parser struct {
	name   string
	logger *slog.Logger
	lexer  *Lexer

	loaded    bool   // true when currToken/currErr hold the lookahead
	currToken *Token // current lookahead
	currErr   error  // lexer error in place of the lookahead

	depth int // current recursion depth, for tracing
}

// Parse parses the input and returns the root of the expression tree.
// It returns the first error found; there is no partial result.
func Parse(input string) (Expr, error) {
	return NewParser("", []byte(input), nil).Parse()
}

// NewParser returns a parser that pulls tokens from a fresh Lexer over input.
// The logger may be nil.
func NewParser(name string, input []byte, logger *slog.Logger) *Parser {
	return &Parser{
		name:   name,
		logger: logger,
		lexer:  NewLexer(name, input, logger),
	}
}

// Parse parses the whole input as a single expression.
func (p *Parser) Parse() (Expr, error) {
	expr, err := p.parseExpr()
	if err != nil {
		p.trace("parse failed: %v", err)
		return nil, err
	}
	return expr, nil
}

// TokenCount returns the number of tokens the parser pulled from the lexer.
func (p *Parser) TokenCount() int {
	return p.lexer.TokenCount()
}

// parseExpr implements
//
//	expr ::= atom ( Operator expr )?
func (p *Parser) parseExpr() (Expr, error) {
	p.depth++
	defer func() { p.depth-- }()

	tok, err := p.advance()
	if err != nil {
		return nil, err
	}

	var atom Expr
	switch tok.Kind {
	case EndOfInput:
		return nil, &ErrUnexpectedEOF{Pos: tok.Position}
	case Number:
		value, err := strconv.ParseUint(tok.Text, 10, 32)
		if err != nil {
			return nil, &ErrLiteralOverflow{Token: *tok, Err: err}
		}
		atom = &NumberExpr{Value: uint32(value)}
	case Identifier:
		atom = &VarExpr{Name: tok.Text}
	default:
		// an operator may never start an expression
		return nil, &ErrUnexpectedToken{Token: *tok}
	}
	p.trace("atom %s", atom)

	next, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch next.Kind {
	case EndOfInput:
		return atom, nil
	case Operator:
		p.advance()
		right, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &OperationExpr{Left: atom, Op: next.Op, Right: right}, nil
	}
	return nil, &ErrUnexpectedToken{Token: *next}
}

// peek returns the current lookahead token without consuming it.
// Lexer failures are returned already wrapped as parser errors.
func (p *Parser) peek() (*Token, error) {
	if !p.loaded {
		p.currToken, p.currErr = p.scan()
		p.loaded = true
	}
	return p.currToken, p.currErr
}

// advance consumes and returns the current lookahead.
// EndOfInput and errors are sticky, so advancing past them is harmless.
func (p *Parser) advance() (*Token, error) {
	tok, err := p.peek()
	if err == nil && tok.Kind != EndOfInput {
		p.loaded = false
	}
	return tok, err
}

// scan is the only parser function that communicates with the lexer.
func (p *Parser) scan() (*Token, error) {
	tok, err := p.lexer.Scan()
	if err != nil {
		if uc, ok := err.(*ErrUnexpectedCharacter); ok {
			return nil, &ErrTokenizer{Err: uc}
		}
		return nil, err
	} else if tok == nil {
		panic("assert(scan.token != nil)")
	}
	return tok, nil
}

func (p *Parser) trace(format string, args ...any) {
	if p.logger == nil {
		return
	}
	p.logger.Debug(fmt.Sprintf("%s: parser: %*s%s", p.name, 2*p.depth, "", fmt.Sprintf(format, args...)))
}
