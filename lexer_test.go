// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package calc_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/mdhender/calc"
)

// scanAll drains the lexer's sequence.
func scanAll(input string) ([]*calc.Token, error) {
	var toks []*calc.Token
	for tok, err := range calc.Tokenize(input) {
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
	}
	return toks, nil
}

func TestLexer_Numbers(t *testing.T) {
	// every digit string of up to nine digits fits in 32 bits
	inputs := []string{"0", "7", "00", "007", "42", "123456789", "999999999", "100000000"}
	for n := 1; n <= 9; n++ {
		inputs = append(inputs, strings.Repeat("9", n), strings.Repeat("1", n), "1"+strings.Repeat("0", n-1))
	}
	for _, input := range inputs {
		toks, err := scanAll(input)
		if err != nil {
			t.Fatalf("%q: error %v", input, err)
		}
		if len(toks) != 1 {
			t.Fatalf("%q: got %d tokens, want 1", input, len(toks))
		}
		if got, want := toks[0].Kind, calc.Number; got != want {
			t.Errorf("%q: Kind = %s, want %s", input, got, want)
		}
		if got, want := toks[0].Text, input; got != want {
			t.Errorf("%q: Text = %q, want %q", input, got, want)
		}
	}
}

func TestLexer_Identifiers(t *testing.T) {
	for _, input := range []string{"a", "z", "foo", "foo_bar", "a1", "x_", "a__9_z", "abcdefghijklmnopqrstuvwxyz0123456789_"} {
		toks, err := scanAll(input)
		if err != nil {
			t.Fatalf("%q: error %v", input, err)
		}
		if len(toks) != 1 {
			t.Fatalf("%q: got %d tokens, want 1", input, len(toks))
		}
		if got, want := toks[0].Kind, calc.Identifier; got != want {
			t.Errorf("%q: Kind = %s, want %s", input, got, want)
		}
		if got, want := toks[0].Text, input; got != want {
			t.Errorf("%q: Text = %q, want %q", input, got, want)
		}
	}
}

func TestLexer_Operators(t *testing.T) {
	toks, err := scanAll("+-++")
	if err != nil {
		t.Fatalf("error %v", err)
	}
	want := []calc.Op{calc.Add, calc.Sub, calc.Add, calc.Add}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, tok := range toks {
		if tok.Kind != calc.Operator {
			t.Errorf("%d: Kind = %s, want Operator", i, tok.Kind)
		}
		if tok.Op != want[i] {
			t.Errorf("%d: Op = %s, want %s", i, tok.Op, want[i])
		}
		if tok.Length() != 1 {
			t.Errorf("%d: Length = %d, want 1", i, tok.Length())
		}
	}
}

func TestLexer_Sequence(t *testing.T) {
	input := "10+foo-x_1"
	toks, err := scanAll(input)
	if err != nil {
		t.Fatalf("error %v", err)
	}
	want := []string{`Number("10")`, "Operator(Add)", `Identifier("foo")`, "Operator(Sub)", `Identifier("x_1")`}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, tok := range toks {
		if got := tok.String(); got != want[i] {
			t.Errorf("%d: token = %s, want %s", i, got, want[i])
		}
	}

	// positions and lexemes
	if got, want := string(toks[2].Lexeme([]byte(input))), "foo"; got != want {
		t.Errorf("Lexeme = %q, want %q", got, want)
	}
	if got, want := toks[2].Column, 4; got != want {
		t.Errorf("Column = %d, want %d", got, want)
	}
	if got, want := toks[4].Start, 7; got != want {
		t.Errorf("Start = %d, want %d", got, want)
	}
}

func TestLexer_UnexpectedCharacter(t *testing.T) {
	for _, tc := range []struct {
		input  string
		before int // tokens produced before the error
		char   rune
		column int
	}{
		{"", 0, 0, 0},
		{" ", 0, ' ', 1},
		{"1 + 2", 1, ' ', 2},
		{"ab$cd", 1, '$', 3},
		{"_a", 0, '_', 1},
		{"Foo", 0, 'F', 1},
		{"a*b", 1, '*', 2},
		{"1.5", 1, '.', 2},
		{"x(", 1, '(', 2},
		{"é+1", 0, 'é', 1},
		{"a\n", 1, '\n', 2},
	} {
		toks, err := scanAll(tc.input)
		if tc.char == 0 {
			if err != nil || len(toks) != 0 {
				t.Errorf("%q: got %d tokens, err %v; want none", tc.input, len(toks), err)
			}
			continue
		}
		var uc *calc.ErrUnexpectedCharacter
		if !errors.As(err, &uc) {
			t.Fatalf("%q: err = %v, want ErrUnexpectedCharacter", tc.input, err)
		}
		if uc.Char != tc.char {
			t.Errorf("%q: Char = %q, want %q", tc.input, uc.Char, tc.char)
		}
		if uc.Pos.Column != tc.column {
			t.Errorf("%q: Column = %d, want %d", tc.input, uc.Pos.Column, tc.column)
		}
		if len(toks) != tc.before {
			t.Errorf("%q: got %d tokens before the error, want %d", tc.input, len(toks), tc.before)
		}
	}
}

func TestLexer_ErrorIsSticky(t *testing.T) {
	lx := calc.NewLexer("sticky", []byte("a$b"), nil)
	if tok, err := lx.Scan(); err != nil || !tok.Is(calc.Identifier) {
		t.Fatalf("first Scan = %v, %v; want identifier", tok, err)
	}
	_, first := lx.Scan()
	if first == nil {
		t.Fatalf("second Scan: want error")
	}
	for i := 0; i < 3; i++ {
		tok, err := lx.Scan()
		if tok != nil {
			t.Fatalf("Scan after error returned token %s", tok)
		}
		if err != first {
			t.Fatalf("Scan after error = %v, want the same error", err)
		}
	}
	if got := lx.ErrorCount(); got != 1 {
		t.Errorf("ErrorCount = %d, want 1", got)
	}

	// the sequence stops after the error, too
	count := 0
	for range lx.All() {
		count++
	}
	if count != 1 {
		t.Errorf("All after error yielded %d items, want 1", count)
	}
}

func TestLexer_EndOfInputIsStable(t *testing.T) {
	lx := calc.NewLexer("eof", []byte("7"), nil)
	if tok, _ := lx.Scan(); !tok.Is(calc.Number) {
		t.Fatalf("Scan = %v, want number", tok)
	}
	eof, err := lx.Scan()
	if err != nil || !eof.Is(calc.EndOfInput) {
		t.Fatalf("Scan = %v, %v; want EndOfInput", eof, err)
	}
	if again, _ := lx.Scan(); again != eof {
		t.Errorf("Scan after end of input returned a new token")
	}
	if got := lx.TokenCount(); got != 1 {
		t.Errorf("TokenCount = %d, want 1", got)
	}
}

func TestLexer_AllIsNotRestartable(t *testing.T) {
	lx := calc.NewLexer("once", []byte("a+b"), nil)
	first := 0
	for range lx.All() {
		first++
		break
	}
	rest := 0
	for range lx.All() {
		rest++
	}
	if first != 1 || rest != 2 {
		t.Errorf("first pass %d, second pass %d; want 1 and 2", first, rest)
	}
}
