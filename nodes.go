// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package calc

import (
	"fmt"
	"strconv"
)

// Expr is the interface implemented by all AST nodes.
//
// String returns the debug form of the tree, e.g.
//
//	Operation(Number(10), Add, Var("foo"))
//
// Infix returns source text that parses back to the same tree.
type Expr interface {
	String() string
	Infix() string

	exprNode()
}

// VarExpr is a reference to an identifier.
type VarExpr struct {
	Name string
}

func (e *VarExpr) exprNode()      {}
func (e *VarExpr) String() string { return fmt.Sprintf("Var(%q)", e.Name) }
func (e *VarExpr) Infix() string  { return e.Name }

// NumberExpr is a number literal.
type NumberExpr struct {
	Value uint32
}

func (e *NumberExpr) exprNode()      {}
func (e *NumberExpr) String() string { return fmt.Sprintf("Number(%d)", e.Value) }
func (e *NumberExpr) Infix() string  { return strconv.FormatUint(uint64(e.Value), 10) }

// OperationExpr is a binary operation.
// Left and Right are owned by this node and never shared.
//
// The parser always builds Left from a single operand and Right from
// the rest of the input, so chains of operators nest to the right.
type OperationExpr struct {
	Left  Expr
	Op    Op
	Right Expr
}

func (e *OperationExpr) exprNode() {}

func (e *OperationExpr) String() string {
	return fmt.Sprintf("Operation(%s, %s, %s)", e.Left, e.Op, e.Right)
}

// Infix does not add parentheses. That is safe because the
// grammar only produces right-nested operations with atomic left operands.
func (e *OperationExpr) Infix() string {
	return e.Left.Infix() + e.Op.Symbol() + e.Right.Infix()
}

// Depth returns the number of nested operations in the tree.
// Leaves have a depth of zero.
func Depth(e Expr) int {
	switch n := e.(type) {
	case *OperationExpr:
		return 1 + max(Depth(n.Left), Depth(n.Right))
	}
	return 0
}
