// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package renderer

import (
	"fmt"
	"strings"
)

type Option func(r *Renderer) error

// WithIndent sets the string used to indent JSON output.
// The indent may only contain spaces and tabs.
func WithIndent(indent string) Option {
	return func(r *Renderer) error {
		if strings.Trim(indent, " \t") != "" {
			return fmt.Errorf("indent %q: must be spaces or tabs", indent)
		}
		r.indent = indent
		return nil
	}
}

// WithCompact writes JSON on a single line.
func WithCompact(flag bool) Option {
	return func(r *Renderer) error {
		r.compact = flag
		return nil
	}
}
