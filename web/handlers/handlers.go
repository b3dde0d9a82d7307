// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package handlers implements the HTTP handlers for the web service.
package handlers

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"

	"github.com/mdhender/calc"
	"github.com/mdhender/calc/batch"
	"github.com/mdhender/calc/model"
	"github.com/mdhender/calc/renderer"
	"github.com/mdhender/calc/web/templates"
)

// DefaultRecentRuns is the number of runs shown on the index page.
const DefaultRecentRuns = 25

// Store defines the store operations needed by Handlers.
type Store interface {
	GetRun(ctx context.Context, id string) (*model.Run, error)
	ListRuns(ctx context.Context, limit int) ([]*model.Run, error)
	ErrorCounts(ctx context.Context) (map[string]int, error)
	Stats(ctx context.Context) (model.Stats, error)
}

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	store    Store
	service  *batch.Service
	renderer *renderer.Renderer
	logger   *slog.Logger
	recent   int
}

// New creates a new Handlers.
// Parsed expressions go through service, which journals them in the store.
func New(store Store, service *batch.Service, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	r, _ := renderer.New(renderer.WithCompact(true))
	return &Handlers{
		store:    store,
		service:  service,
		renderer: r,
		logger:   logger,
		recent:   DefaultRecentRuns,
	}
}

// SetRecentRuns sets the number of runs shown on the index page.
func (h *Handlers) SetRecentRuns(n int) {
	if n > 0 {
		h.recent = n
	}
}

// Routes registers every handler on mux.
func (h *Handlers) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Index)
	mux.HandleFunc("POST /parse", h.Parse)
	mux.HandleFunc("POST /api/parse", h.APIParse)
	mux.HandleFunc("GET /api/runs", h.APIRuns)
	mux.HandleFunc("GET /api/runs/{id}", h.APIRun)
}

// getLayoutData returns the data shared by every page.
func (h *Handlers) getLayoutData(title string) templates.LayoutData {
	return templates.LayoutData{
		Title:   title,
		Version: calc.Version().String(),
	}
}

// getIndexData loads the journal summary for the index page.
// Store failures are logged and leave the summary empty.
func (h *Handlers) getIndexData(r *http.Request) templates.IndexData {
	data := templates.IndexData{Layout: h.getLayoutData("")}
	ctx := r.Context()
	var err error
	if data.Stats, err = h.store.Stats(ctx); err != nil {
		h.logger.Warn("web: stats", "error", err)
	}
	if data.ErrorCounts, err = h.store.ErrorCounts(ctx); err != nil {
		h.logger.Warn("web: error counts", "error", err)
	}
	if data.Recent, err = h.store.ListRuns(ctx, h.recent); err != nil {
		h.logger.Warn("web: list runs", "error", err)
	}
	return data
}

// describe renders the tree of an accepted outcome or the diagnostic of a rejected one.
func (h *Handlers) describe(out *batch.Outcome) (tree, diagnostic string) {
	buf := &bytes.Buffer{}
	if out.Expr != nil {
		if err := h.renderer.Tree(buf, out.Expr); err != nil {
			h.logger.Error("web: render tree", "error", err)
		}
		return buf.String(), ""
	}
	if diag, ok := calc.NewDiagnostic(out.Err); ok {
		calc.PrintDiagnostic(buf, diag, "input", []byte(out.Run.Input))
	} else if out.Err != nil {
		buf.WriteString(out.Err.Error())
	}
	return "", buf.String()
}
