// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package templates holds the HTML components for the web service.
//
// Components are written in .templ files; run `templ generate` after editing them.
package templates

import (
	"sort"

	"github.com/mdhender/calc/model"
)

// LayoutData is shared by every page.
type LayoutData struct {
	Title   string
	Version string
}

// PageTitle returns the contents of the title element.
func (d LayoutData) PageTitle() string {
	if d.Title == "" {
		return "calc"
	}
	return "calc: " + d.Title
}

// IndexData is the data for the index page.
type IndexData struct {
	Layout LayoutData

	// Input is echoed back into the form.
	Input string
	// Result is the run for the last submitted expression, if any.
	Result *model.Run
	// Tree is the rendered tree of an accepted expression.
	Tree string
	// Diagnostic is the rendered diagnostic of a rejected expression.
	Diagnostic string

	Stats       model.Stats
	ErrorCounts map[string]int
	Recent      []*model.Run
}

// runResult is "OK" for an accepted run and the error code otherwise.
func runResult(run *model.Run) string {
	if run.OK {
		return "OK"
	}
	return run.ErrorCode
}

func sortedCodes(errorCounts map[string]int) []string {
	codes := make([]string, 0, len(errorCounts))
	for code := range errorCounts {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
