// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package calc_test

import (
	"errors"
	"reflect"
	"strconv"
	"testing"

	"github.com/mdhender/calc"
)

func num(v uint32) calc.Expr { return &calc.NumberExpr{Value: v} }
func ident(name string) calc.Expr { return &calc.VarExpr{Name: name} }
func op(left calc.Expr, o calc.Op, right calc.Expr) calc.Expr {
	return &calc.OperationExpr{Left: left, Op: o, Right: right}
}

func TestParse_HappyPath(t *testing.T) {
	for _, tc := range []struct {
		input string
		want  calc.Expr
	}{
		{"0", num(0)},
		{"007", num(7)},
		{"4294967295", num(4294967295)},
		{"foo", ident("foo")},
		{"a_1", ident("a_1")},
		{"1+2", op(num(1), calc.Add, num(2))},
		{"x-1", op(ident("x"), calc.Sub, num(1))},
		{"a+b-c", op(ident("a"), calc.Add, op(ident("b"), calc.Sub, ident("c")))},
		{"10+foo+20-30", op(num(10), calc.Add, op(ident("foo"), calc.Add, op(num(20), calc.Sub, num(30))))},
		{"1-2-3", op(num(1), calc.Sub, op(num(2), calc.Sub, num(3)))},
	} {
		got, err := calc.Parse(tc.input)
		if err != nil {
			t.Errorf("%q: error %v", tc.input, err)
			continue
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("%q: got %s, want %s", tc.input, got, tc.want)
		}
	}
}

func TestParse_DebugForm(t *testing.T) {
	expr, err := calc.Parse("10+foo+20-30")
	if err != nil {
		t.Fatalf("error %v", err)
	}
	want := `Operation(Number(10), Add, Operation(Var("foo"), Add, Operation(Number(20), Sub, Number(30))))`
	if got := expr.String(); got != want {
		t.Errorf("String = %s\nwant %s", got, want)
	}
	if got, want := calc.Depth(expr), 3; got != want {
		t.Errorf("Depth = %d, want %d", got, want)
	}
}

func TestParse_ChainIsRightNested(t *testing.T) {
	input := "a"
	for i := 0; i < 50; i++ {
		input += "+a"
	}
	expr, err := calc.Parse(input)
	if err != nil {
		t.Fatalf("error %v", err)
	}
	if got, want := calc.Depth(expr), 50; got != want {
		t.Fatalf("Depth = %d, want %d", got, want)
	}
	for n := expr; ; {
		o, ok := n.(*calc.OperationExpr)
		if !ok {
			break
		}
		if _, ok := o.Left.(*calc.VarExpr); !ok {
			t.Fatalf("left operand %s is not an atom", o.Left)
		}
		n = o.Right
	}
}

func TestParse_UnexpectedEOF(t *testing.T) {
	for _, input := range []string{"", "a-", "1+2+"} {
		_, err := calc.Parse(input)
		var eof *calc.ErrUnexpectedEOF
		if !errors.As(err, &eof) {
			t.Errorf("%q: err = %v, want ErrUnexpectedEOF", input, err)
			continue
		}
		if got, want := eof.Pos.Start, len(input); got != want {
			t.Errorf("%q: Start = %d, want %d", input, got, want)
		}
	}
}

func TestParse_UnexpectedToken(t *testing.T) {
	for _, tc := range []struct {
		input string
		want  string
	}{
		{"+", "Operator(Add)"},
		{"-1", "Operator(Sub)"},
		{"a+-b", "Operator(Sub)"},
		{"1a", `Identifier("a")`},
		{"x++", "Operator(Add)"},
	} {
		_, err := calc.Parse(tc.input)
		var ut *calc.ErrUnexpectedToken
		if !errors.As(err, &ut) {
			t.Errorf("%q: err = %v, want ErrUnexpectedToken", tc.input, err)
			continue
		}
		if got := ut.Token.String(); got != tc.want {
			t.Errorf("%q: token = %s, want %s", tc.input, got, tc.want)
		}
	}

	_, err := calc.Parse("+")
	var ut *calc.ErrUnexpectedToken
	if errors.As(err, &ut) && (ut.Token.Kind != calc.Operator || ut.Token.Op != calc.Add) {
		t.Errorf(`"+": token = %s, want Operator(Add)`, ut.Token.String())
	}
}

func TestParse_TokenizerError(t *testing.T) {
	for _, tc := range []struct {
		input string
		char  rune
	}{
		{" ", ' '},
		{"1 + 2", ' '},
		{"a+B", 'B'},
		{"a+b*c", '*'},
		{"(1)", '('},
		{"1+$", '$'},
	} {
		_, err := calc.Parse(tc.input)
		var te *calc.ErrTokenizer
		if !errors.As(err, &te) {
			t.Errorf("%q: err = %v, want ErrTokenizer", tc.input, err)
			continue
		}
		if te.Err.Char != tc.char {
			t.Errorf("%q: Char = %q, want %q", tc.input, te.Err.Char, tc.char)
		}
		var uc *calc.ErrUnexpectedCharacter
		if !errors.As(err, &uc) {
			t.Errorf("%q: ErrTokenizer does not unwrap to ErrUnexpectedCharacter", tc.input)
		}
		if got, want := calc.ErrorCode(err), calc.ErrCodeTokenizer; got != want {
			t.Errorf("%q: ErrorCode = %q, want %q", tc.input, got, want)
		}
	}
}

func TestParse_FirstErrorWins(t *testing.T) {
	// the operator error comes before the bad character
	_, err := calc.Parse("++$")
	if got, want := calc.ErrorCode(err), calc.ErrCodeUnexpectedToken; got != want {
		t.Errorf("ErrorCode = %q, want %q", got, want)
	}
	// the bad character comes before the missing operand
	_, err = calc.Parse("1+ ")
	if got, want := calc.ErrorCode(err), calc.ErrCodeTokenizer; got != want {
		t.Errorf("ErrorCode = %q, want %q", got, want)
	}
}

func TestParse_LiteralOverflow(t *testing.T) {
	for _, input := range []string{"4294967296", "1+99999999999", "x-18446744073709551616"} {
		_, err := calc.Parse(input)
		var lo *calc.ErrLiteralOverflow
		if !errors.As(err, &lo) {
			t.Errorf("%q: err = %v, want ErrLiteralOverflow", input, err)
			continue
		}
		if !errors.Is(err, strconv.ErrRange) {
			t.Errorf("%q: err does not wrap strconv.ErrRange", input)
		}
		if got, want := calc.ErrorCode(err), calc.ErrCodeLiteralOverflow; got != want {
			t.Errorf("%q: ErrorCode = %q, want %q", input, got, want)
		}
	}
}

func TestParse_Idempotent(t *testing.T) {
	for _, input := range []string{"10+foo+20-30", "a", "1-b_2+c"} {
		first, err1 := calc.Parse(input)
		second, err2 := calc.Parse(input)
		if err1 != nil || err2 != nil {
			t.Fatalf("%q: errors %v, %v", input, err1, err2)
		}
		if !reflect.DeepEqual(first, second) {
			t.Errorf("%q: parses differ: %s vs %s", input, first, second)
		}
		if first == second {
			t.Errorf("%q: parses share the same root", input)
		}
	}
}

func TestParse_InfixRoundTrip(t *testing.T) {
	for _, input := range []string{"10+foo+20-30", "x", "0", "a_b-c+d"} {
		expr, err := calc.Parse(input)
		if err != nil {
			t.Fatalf("%q: error %v", input, err)
		}
		if got := expr.Infix(); got != input {
			t.Errorf("Infix = %q, want %q", got, input)
		}
		again, err := calc.Parse(expr.Infix())
		if err != nil || !reflect.DeepEqual(expr, again) {
			t.Errorf("%q: round trip gave %v, %v", input, again, err)
		}
	}
	// leading zeros are not preserved
	expr, _ := calc.Parse("007+1")
	if got, want := expr.Infix(), "7+1"; got != want {
		t.Errorf("Infix = %q, want %q", got, want)
	}
}

func TestParser_TokenCount(t *testing.T) {
	p := calc.NewParser("count", []byte("a+b-c"), nil)
	if _, err := p.Parse(); err != nil {
		t.Fatalf("error %v", err)
	}
	if got, want := p.TokenCount(), 5; got != want {
		t.Errorf("TokenCount = %d, want %d", got, want)
	}
}

func TestErrorCode(t *testing.T) {
	if got := calc.ErrorCode(nil); got != "" {
		t.Errorf("ErrorCode(nil) = %q, want empty", got)
	}
	if got, want := calc.ErrorCode(errors.New("boom")), calc.ErrCodeUnknown; got != want {
		t.Errorf("ErrorCode = %q, want %q", got, want)
	}
	if got, want := calc.ErrorCode(&calc.ErrUnexpectedCharacter{Char: '!'}), calc.ErrCodeUnexpectedCharacter; got != want {
		t.Errorf("ErrorCode = %q, want %q", got, want)
	}
}
