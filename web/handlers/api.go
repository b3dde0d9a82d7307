// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/mdhender/calc/model"
	"github.com/mdhender/calc/renderer"
)

// maxRequestBytes limits the size of API request bodies.
const maxRequestBytes = 64 * 1024

// ParseRequest is the body of POST /api/parse.
type ParseRequest struct {
	Input string `json:"input"`
}

// ParseResponse is the body returned by POST /api/parse.
type ParseResponse struct {
	*model.Run
	AST        *renderer.Node `json:"ast,omitempty"`
	Diagnostic string         `json:"diagnostic,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// APIParse parses the expression in the JSON body.
// Accepted input returns 200 with the AST; rejected input returns 422 with the error.
func (h *Handlers) APIParse(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request: " + err.Error()})
		return
	}

	out, err := h.service.Parse(r.Context(), "api", 0, req.Input)
	if err != nil {
		h.logger.Error("api: parse", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		return
	}

	resp := ParseResponse{Run: out.Run}
	status := http.StatusOK
	if out.Expr != nil {
		resp.AST = renderer.NewNode(out.Expr)
	} else {
		_, resp.Diagnostic = h.describe(out)
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, resp)
}

// APIRuns lists recent runs. The optional limit query parameter defaults to 25.
func (h *Handlers) APIRuns(w http.ResponseWriter, r *http.Request) {
	limit := h.recent
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be a positive integer"})
			return
		}
		limit = n
	}

	runs, err := h.store.ListRuns(r.Context(), limit)
	if err != nil {
		h.logger.Error("api: list runs", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		return
	}
	if runs == nil {
		runs = []*model.Run{}
	}
	writeJSON(w, http.StatusOK, runs)
}

// APIRun returns a single run by ID.
func (h *Handlers) APIRun(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	run, err := h.store.GetRun(r.Context(), id)
	if err != nil {
		h.logger.Error("api: get run", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		return
	} else if run == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "run not found"})
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
