// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package renderer

import (
	"fmt"

	"github.com/mdhender/calc"
)

// Node is the JSON form of an expression.
type Node struct {
	Kind  string  `json:"kind"`
	Name  string  `json:"name,omitempty"`
	Value *uint32 `json:"value,omitempty"`
	Op    string  `json:"op,omitempty"`
	Left  *Node   `json:"left,omitempty"`
	Right *Node   `json:"right,omitempty"`
}

const (
	KindVar       = "var"
	KindNumber    = "number"
	KindOperation = "operation"
)

// NewNode converts an expression to a Node tree.
// It returns nil for a nil expression.
func NewNode(expr calc.Expr) *Node {
	switch e := expr.(type) {
	case nil:
		return nil
	case *calc.VarExpr:
		return &Node{Kind: KindVar, Name: e.Name}
	case *calc.NumberExpr:
		value := e.Value
		return &Node{Kind: KindNumber, Value: &value}
	case *calc.OperationExpr:
		return &Node{
			Kind:  KindOperation,
			Op:    e.Op.String(),
			Left:  NewNode(e.Left),
			Right: NewNode(e.Right),
		}
	}
	panic(fmt.Sprintf("assert(expr.type != %T)", expr))
}

// Label is the one line description of the node used by the tree format.
func (n *Node) Label() string {
	switch n.Kind {
	case KindVar:
		return fmt.Sprintf("Var(%q)", n.Name)
	case KindNumber:
		return fmt.Sprintf("Number(%d)", *n.Value)
	case KindOperation:
		return fmt.Sprintf("Operation(%s)", n.Op)
	}
	return n.Kind
}
