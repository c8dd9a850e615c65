package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"DTR_BACK-END/internal/utils"
)

func newTestEntriesHandler() *EntriesHandler {
	return NewEntriesHandler(nil, testConfig(), testLogger())
}

func authedRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req.WithContext(utils.WithUserID(req.Context(), uuid.New()))
}

func TestEntryIDFromPath(t *testing.T) {
	id := uuid.New()

	got, ok := entryIDFromPath("/api/entries/" + id.String())
	assert.True(t, ok)
	assert.Equal(t, id, got)

	got, ok = entryIDFromPath("/api/entries/" + id.String() + "/")
	assert.True(t, ok)
	assert.Equal(t, id, got)

	_, ok = entryIDFromPath("/api/entries")
	assert.False(t, ok)

	_, ok = entryIDFromPath("/api/entries/")
	assert.False(t, ok)

	_, ok = entryIDFromPath("/api/entries/not-a-uuid")
	assert.False(t, ok)
}

func TestCreateEntryValidation(t *testing.T) {
	h := newTestEntriesHandler()

	tests := []struct {
		name string
		body string
	}{
		{"empty payload", `{}`},
		{"missing time out", `{"date":"2025-03-10","time_in":"08:00"}`},
		{"bad date", `{"date":"10/03/2025","time_in":"08:00","time_out":"17:00"}`},
		{"bad time in", `{"date":"2025-03-10","time_in":"8am","time_out":"17:00"}`},
		{"bad time out", `{"date":"2025-03-10","time_in":"08:00","time_out":"late"}`},
		{"time out before time in", `{"date":"2025-03-10","time_in":"17:00","time_out":"08:00"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.CreateEntry(rec, authedRequest(http.MethodPost, "/api/entries", tt.body))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestEntriesRequireUserContext(t *testing.T) {
	h := newTestEntriesHandler()

	targets := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/entries"},
		{http.MethodGet, "/api/entries"},
		{http.MethodPut, "/api/entries/" + uuid.NewString()},
		{http.MethodDelete, "/api/entries/" + uuid.NewString()},
	}

	for _, tt := range targets {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader("{}"))
			rec := httptest.NewRecorder()
			h.Entries(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestEntriesDispatchRejectsUnknownMethod(t *testing.T) {
	h := newTestEntriesHandler()

	req := authedRequest(http.MethodHead, "/api/entries", "")
	rec := httptest.NewRecorder()
	h.Entries(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestUpdateEntryRequiresID(t *testing.T) {
	h := newTestEntriesHandler()

	rec := httptest.NewRecorder()
	h.UpdateEntry(rec, authedRequest(http.MethodPut, "/api/entries", `{}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteEntryRequiresID(t *testing.T) {
	h := newTestEntriesHandler()

	rec := httptest.NewRecorder()
	h.DeleteEntry(rec, authedRequest(http.MethodDelete, "/api/entries/oops", ""))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateEntryPersists(t *testing.T) {
	h := NewEntriesHandler(&fakeDB{}, testConfig(), testLogger())

	rec := httptest.NewRecorder()
	h.CreateEntry(rec, authedRequest(http.MethodPost, "/api/entries",
		`{"date":"2025-03-10","time_in":"08:00","time_out":"19:00"}`))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_hours":11`)
	assert.Contains(t, rec.Body.String(), `"overtime":2`)
}

func TestUpdateEntryNotFound(t *testing.T) {
	h := NewEntriesHandler(&fakeDB{}, testConfig(), testLogger())

	rec := httptest.NewRecorder()
	h.UpdateEntry(rec, authedRequest(http.MethodPut, "/api/entries/"+uuid.NewString(), `{}`))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateEntryLookupFailure(t *testing.T) {
	db := &fakeDB{
		queryRowFunc: func(string, ...any) pgx.Row {
			return errRow{errors.New("connection refused")}
		},
	}
	h := NewEntriesHandler(db, testConfig(), testLogger())

	rec := httptest.NewRecorder()
	h.UpdateEntry(rec, authedRequest(http.MethodPut, "/api/entries/"+uuid.NewString(), `{}`))

	// a store failure is not a missing entry
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestDeleteEntryNotFound(t *testing.T) {
	db := &fakeDB{
		execFunc: func(string, ...any) (pgconn.CommandTag, error) {
			return pgconn.NewCommandTag("DELETE 0"), nil
		},
	}
	h := NewEntriesHandler(db, testConfig(), testLogger())

	rec := httptest.NewRecorder()
	h.DeleteEntry(rec, authedRequest(http.MethodDelete, "/api/entries/"+uuid.NewString(), ""))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
