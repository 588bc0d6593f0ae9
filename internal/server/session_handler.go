// Package server exposes the session form over a JSON HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/at-ishikawa/studylog/internal/form"
	"github.com/at-ishikawa/studylog/internal/session"
)

// SessionHandler serves the session form. Requests are handled one at a time
// since the record store is not safe for concurrent use.
type SessionHandler struct {
	mu          sync.Mutex
	editor      *form.Editor
	studentName string
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(editor *form.Editor, studentName string) *SessionHandler {
	return &SessionHandler{
		editor:      editor,
		studentName: studentName,
	}
}

type listResponse struct {
	StudentName string `json:"student_name"`
	EditIndex   *int   `json:"edit_index"`
	form.View
}

type recordsResponse struct {
	Sessions []session.Record `json:"sessions"`
}

type savedResponse struct {
	Index   int  `json:"index"`
	Updated bool `json:"updated"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Routes returns the API routes.
func (h *SessionHandler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/sessions", h.serialized(h.ListSessions))
	mux.HandleFunc("GET /api/sessions/all", h.serialized(h.ListAllSessions))
	mux.HandleFunc("GET /api/sessions/new", h.serialized(h.NewDraft))
	mux.HandleFunc("POST /api/sessions", h.serialized(h.SubmitSession))
	mux.HandleFunc("POST /api/sessions/{index}/edit", h.serialized(h.BeginEdit))
	mux.HandleFunc("DELETE /api/sessions/edit", h.serialized(h.CancelEdit))
	mux.HandleFunc("DELETE /api/sessions/{index}", h.serialized(h.DeleteSession))
	mux.HandleFunc("GET /api/stats", h.serialized(h.GetStats))
	return mux
}

func (h *SessionHandler) serialized(fn http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.mu.Lock()
		defer h.mu.Unlock()
		fn(w, r)
	}
}

// ListSessions returns the filtered sessions, newest first.
// Query parameters: search, rating (repeatable), limit (negative for all).
func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	ratings, err := session.ParseRatingSet(params["rating"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	query := form.Query{
		Search:  params.Get("search"),
		Ratings: ratings,
	}
	if limit := params.Get("limit"); limit != "" {
		query.Limit, err = strconv.Atoi(limit)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid limit %q", limit))
			return
		}
	}

	resp := listResponse{
		StudentName: h.studentName,
		View:        h.editor.View(query),
	}
	if index, ok := h.editor.EditIndex(); ok {
		resp.EditIndex = &index
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListAllSessions returns every session in stored order.
func (h *SessionHandler) ListAllSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, recordsResponse{Sessions: h.editor.Records()})
}

// NewDraft returns an empty form dated today.
func (h *SessionHandler) NewDraft(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.editor.NewDraft())
}

// SubmitSession saves the posted form, updating the session in edit mode or adding a new one.
func (h *SessionHandler) SubmitSession(w http.ResponseWriter, r *http.Request) {
	var draft form.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	index, updated := h.editor.EditIndex()
	if err := h.editor.Submit(draft); err != nil {
		writeFormError(w, err)
		return
	}

	if !updated {
		writeJSON(w, http.StatusCreated, savedResponse{Index: len(h.editor.Records()) - 1})
		return
	}
	writeJSON(w, http.StatusOK, savedResponse{Index: index, Updated: true})
}

// BeginEdit puts a session in edit mode and returns its form.
func (h *SessionHandler) BeginEdit(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}
	draft, err := h.editor.BeginEdit(index)
	if err != nil {
		writeFormError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

// CancelEdit leaves edit mode.
func (h *SessionHandler) CancelEdit(w http.ResponseWriter, r *http.Request) {
	h.editor.CancelEdit()
	w.WriteHeader(http.StatusNoContent)
}

// DeleteSession removes a session.
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}
	if err := h.editor.Delete(index); err != nil {
		writeFormError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetStats returns the aggregates over every session.
func (h *SessionHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.editor.Stats())
}

func pathIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	value := r.PathValue("index")
	index, err := strconv.Atoi(value)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid session index %q", value))
		return 0, false
	}
	return index, true
}

func writeFormError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrIndexOutOfRange):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, form.ErrInvalidDraft):
		writeError(w, http.StatusBadRequest, err)
	default:
		slog.Default().Error("failed to handle a session request", "error", err)
		writeError(w, http.StatusInternalServerError, err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Default().Error("failed to write a response", "error", err)
	}
}
