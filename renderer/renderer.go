// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package renderer writes parsed expressions in the formats the CLI and web
// service offer.
package renderer

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mdhender/calc"
)

// Format names an output format.
type Format string

const (
	FormatDebug Format = "debug" // Operation(Number(10), Add, Var("foo"))
	FormatInfix Format = "infix" // 10+foo
	FormatJSON  Format = "json"
	FormatTree  Format = "tree"
)

// ParseFormat returns the Format named by s.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatDebug, FormatInfix, FormatJSON, FormatTree:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q", s)
}

type Renderer struct {
	indent  string
	compact bool
}

func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		indent: "  ",
	}
	for _, option := range options {
		err := option(r)
		if err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Render writes the expression to w in the requested format.
// Every format ends with a newline.
func (r *Renderer) Render(w io.Writer, format Format, expr calc.Expr) error {
	if expr == nil {
		return fmt.Errorf("render: nil expression")
	}
	switch format {
	case FormatDebug, "":
		_, err := fmt.Fprintln(w, expr.String())
		return err
	case FormatInfix:
		_, err := fmt.Fprintln(w, expr.Infix())
		return err
	case FormatJSON:
		return r.JSON(w, expr)
	case FormatTree:
		return r.Tree(w, expr)
	}
	return fmt.Errorf("render: unknown format %q", format)
}

// JSON writes the Node tree for the expression as JSON.
func (r *Renderer) JSON(w io.Writer, expr calc.Expr) error {
	enc := json.NewEncoder(w)
	if !r.compact {
		enc.SetIndent("", r.indent)
	}
	return enc.Encode(NewNode(expr))
}

// Tree writes the expression as an ASCII tree, one node per line.
func (r *Renderer) Tree(w io.Writer, expr calc.Expr) error {
	sb := &strings.Builder{}
	root := NewNode(expr)
	sb.WriteString(root.Label())
	sb.WriteByte('\n')
	writeChildren(sb, root, "")
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeChildren(sb *strings.Builder, n *Node, prefix string) {
	var children []*Node
	if n.Left != nil {
		children = append(children, n.Left)
	}
	if n.Right != nil {
		children = append(children, n.Right)
	}
	for i, child := range children {
		branch, next := "|-- ", "|   "
		if i == len(children)-1 {
			branch, next = "`-- ", "    "
		}
		sb.WriteString(prefix)
		sb.WriteString(branch)
		sb.WriteString(child.Label())
		sb.WriteByte('\n')
		writeChildren(sb, child, prefix+next)
	}
}
