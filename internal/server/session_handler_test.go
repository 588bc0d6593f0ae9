package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/studylog/internal/form"
	"github.com/at-ishikawa/studylog/internal/session"
)

func newTestHandler(t *testing.T, records []session.Record) (*SessionHandler, *session.Store) {
	t.Helper()

	store := session.NewStore(filepath.Join(t.TempDir(), "data.csv"))
	require.NoError(t, store.Replace(records))
	editor, err := form.NewEditor(store, 5)
	require.NoError(t, err)
	return NewSessionHandler(editor, "Quoc Anh"), store
}

func serve(t *testing.T, handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func sampleRecords() []session.Record {
	return []session.Record{
		{Date: "01/01/2024", Content: "Fractions", Rating: session.RatingGood},
		{Date: "15/01/2024", Content: "Decimals", Rating: session.RatingExcellent},
		{Date: "10/01/2024", Content: "Fraction word problems", Rating: session.RatingFair},
	}
}

func TestSessionHandler_ListSessions(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		wantStatus  int
		wantIndexes []int
		wantMatched int
	}{
		{
			name:        "newest first",
			target:      "/api/sessions",
			wantStatus:  http.StatusOK,
			wantIndexes: []int{1, 2, 0},
			wantMatched: 3,
		},
		{
			name:        "search and rating filters",
			target:      "/api/sessions?search=FRACTION&rating=Good&rating=Fair",
			wantStatus:  http.StatusOK,
			wantIndexes: []int{2, 0},
			wantMatched: 2,
		},
		{
			name:        "limit",
			target:      "/api/sessions?limit=1",
			wantStatus:  http.StatusOK,
			wantIndexes: []int{1},
			wantMatched: 3,
		},
		{
			name:       "unknown rating",
			target:     "/api/sessions?rating=Great",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid limit",
			target:     "/api/sessions?limit=many",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := newTestHandler(t, sampleRecords())

			rec := serve(t, handler.Routes(), http.MethodGet, tt.target, "")
			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}

			var got listResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, "Quoc Anh", got.StudentName)
			assert.Nil(t, got.EditIndex)
			assert.Equal(t, tt.wantMatched, got.Matched)
			assert.Equal(t, 3, got.Total)
			indexes := make([]int, 0, len(got.Entries))
			for _, e := range got.Entries {
				indexes = append(indexes, e.Index)
			}
			assert.Equal(t, tt.wantIndexes, indexes)
		})
	}
}

func TestSessionHandler_ListAllSessions(t *testing.T) {
	handler, _ := newTestHandler(t, sampleRecords())

	rec := serve(t, handler.Routes(), http.MethodGet, "/api/sessions/all", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got recordsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, sampleRecords(), got.Sessions)
}

func TestSessionHandler_NewDraft(t *testing.T) {
	handler, _ := newTestHandler(t, nil)

	rec := serve(t, handler.Routes(), http.MethodGet, "/api/sessions/new", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got form.Draft
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "Excellent", got.Rating)
	assert.NotEmpty(t, got.Date)
}

func TestSessionHandler_SubmitSession(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantSaved  savedResponse
		wantLen    int
	}{
		{
			name:       "adds a session",
			body:       `{"date":"2/3/2024","content":"Geometry","strengths":"","improvements":"Angles","rating":"good"}`,
			wantStatus: http.StatusCreated,
			wantSaved:  savedResponse{Index: 3},
			wantLen:    4,
		},
		{
			name:       "invalid date",
			body:       `{"date":"2024/03/02","content":"Geometry","rating":"Good"}`,
			wantStatus: http.StatusBadRequest,
			wantLen:    3,
		},
		{
			name:       "missing rating",
			body:       `{"date":"02/03/2024","content":"Geometry"}`,
			wantStatus: http.StatusBadRequest,
			wantLen:    3,
		},
		{
			name:       "malformed body",
			body:       `{"date":`,
			wantStatus: http.StatusBadRequest,
			wantLen:    3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, store := newTestHandler(t, sampleRecords())

			rec := serve(t, handler.Routes(), http.MethodPost, "/api/sessions", tt.body)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.Equal(t, tt.wantLen, store.Len())
			if tt.wantStatus != http.StatusCreated {
				var got errorResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
				assert.NotEmpty(t, got.Error)
				return
			}

			var got savedResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, tt.wantSaved, got)
			added, err := store.At(3)
			require.NoError(t, err)
			assert.Equal(t, session.Record{Date: "02/03/2024", Content: "Geometry", Improvements: "Angles", Rating: session.RatingGood}, added)
		})
	}
}

func TestSessionHandler_EditFlow(t *testing.T) {
	handler, store := newTestHandler(t, sampleRecords())
	routes := handler.Routes()

	rec := serve(t, routes, http.MethodPost, "/api/sessions/1/edit", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var draft form.Draft
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&draft))
	assert.Equal(t, form.Draft{Date: "15/01/2024", Content: "Decimals", Rating: "Excellent"}, draft)

	rec = serve(t, routes, http.MethodGet, "/api/sessions", "")
	var list listResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	require.NotNil(t, list.EditIndex)
	assert.Equal(t, 1, *list.EditIndex)

	rec = serve(t, routes, http.MethodPost, "/api/sessions", `{"date":"15/01/2024","content":"Decimals and percents","rating":"Good"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var saved savedResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&saved))
	assert.Equal(t, savedResponse{Index: 1, Updated: true}, saved)

	assert.Equal(t, 3, store.Len())
	updated, err := store.At(1)
	require.NoError(t, err)
	assert.Equal(t, "Decimals and percents", updated.Content)
	_, editing := handler.editor.EditIndex()
	assert.False(t, editing)
}

func TestSessionHandler_CancelEdit(t *testing.T) {
	handler, store := newTestHandler(t, sampleRecords())
	routes := handler.Routes()

	require.Equal(t, http.StatusOK, serve(t, routes, http.MethodPost, "/api/sessions/0/edit", "").Code)
	require.Equal(t, http.StatusNoContent, serve(t, routes, http.MethodDelete, "/api/sessions/edit", "").Code)

	rec := serve(t, routes, http.MethodPost, "/api/sessions", `{"date":"01/02/2024","content":"Review","rating":"Fair"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 4, store.Len())
}

func TestSessionHandler_IndexErrors(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
	}{
		{name: "edit out of range", method: http.MethodPost, target: "/api/sessions/3/edit", wantStatus: http.StatusNotFound},
		{name: "edit negative", method: http.MethodPost, target: "/api/sessions/-1/edit", wantStatus: http.StatusNotFound},
		{name: "edit not a number", method: http.MethodPost, target: "/api/sessions/first/edit", wantStatus: http.StatusBadRequest},
		{name: "delete out of range", method: http.MethodDelete, target: "/api/sessions/9", wantStatus: http.StatusNotFound},
		{name: "delete not a number", method: http.MethodDelete, target: "/api/sessions/x", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, store := newTestHandler(t, sampleRecords())

			rec := serve(t, handler.Routes(), tt.method, tt.target, "")
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, 3, store.Len())
		})
	}
}

func TestSessionHandler_DeleteSession(t *testing.T) {
	handler, store := newTestHandler(t, sampleRecords())

	rec := serve(t, handler.Routes(), http.MethodDelete, "/api/sessions/0", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	assert.Equal(t, []session.Record{sampleRecords()[1], sampleRecords()[2]}, store.Records())
	reloaded, err := session.Open(store.Path())
	require.NoError(t, err)
	assert.Equal(t, store.Records(), reloaded.Records())
}

func TestSessionHandler_WriteFailure(t *testing.T) {
	handler, store := newTestHandler(t, sampleRecords())
	// a directory in place of the data file makes every save fail
	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0755))

	rec := serve(t, handler.Routes(), http.MethodDelete, "/api/sessions/0", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSessionHandler_GetStats(t *testing.T) {
	handler, _ := newTestHandler(t, sampleRecords())

	rec := serve(t, handler.Routes(), http.MethodGet, "/api/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Total  int `json:"total"`
		Counts []struct {
			Rating string `json:"rating"`
			Count  int    `json:"count"`
		} `json:"counts"`
		Trend []struct {
			Index int `json:"index"`
			Score int `json:"score"`
		} `json:"trend"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, 3, got.Total)
	require.Len(t, got.Counts, 3)
	assert.Equal(t, "Excellent", got.Counts[0].Rating)
	require.Len(t, got.Trend, 3)
	assert.Equal(t, []int{0, 2, 1}, []int{got.Trend[0].Index, got.Trend[1].Index, got.Trend[2].Index})
}
