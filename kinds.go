// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package calc

// Kind implements enums for tokens
type Kind int

const (
	UNKNOWN Kind = iota

	Identifier // [a-z][a-z0-9_]*
	Number     // [0-9]+
	Operator   // + or -

	EndOfInput // end of input
)

func (k Kind) String() string {
	switch k {
	case Identifier:
		return "Identifier"
	case Number:
		return "Number"
	case Operator:
		return "Operator"
	case EndOfInput:
		return "EndOfInput"
	}
	return "UNKNOWN"
}

// Op is a binary arithmetic operator.
type Op int

const (
	Add Op = iota
	Sub
)

func (op Op) String() string {
	switch op {
	case Add:
		return "Add"
	case Sub:
		return "Sub"
	}
	return "Op(?)"
}

// Symbol returns the source text for the operator.
func (op Op) Symbol() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	}
	return "?"
}
