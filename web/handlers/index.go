// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package handlers

import (
	"net/http"

	"github.com/mdhender/calc/web/templates"
)

// Index renders the expression form and the journal.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	data := h.getIndexData(r)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.IndexPage(data).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// Parse parses the submitted form and renders the result above the journal.
func (h *Handlers) Parse(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	input := r.FormValue("expr")

	out, err := h.service.Parse(r.Context(), "web", 0, input)
	if err != nil {
		h.logger.Error("web: parse", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	data := h.getIndexData(r)
	data.Input = input
	data.Result = out.Run
	data.Tree, data.Diagnostic = h.describe(out)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if !out.Run.OK {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}
	if err := templates.IndexPage(data).Render(r.Context(), w); err != nil {
		h.logger.Error("web: render", "error", err)
	}
}
