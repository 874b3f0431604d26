package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/punchamoorthee/chainrelay/internal/message"
)

// fakeLog is an in-memory stand-in for the Postgres log store.
type fakeLog struct {
	entries []string
}

func (f *fakeLog) Append(_ context.Context, record string) (uint64, error) {
	serial := uint64(len(f.entries))
	f.entries = append(f.entries, strconv.FormatUint(serial, 10)+":"+record)
	return serial, nil
}

func (f *fakeLog) Range(_ context.Context, from uint64, limit int) ([]string, error) {
	if from >= uint64(len(f.entries)) {
		return nil, nil
	}
	end := from + uint64(limit)
	if end > uint64(len(f.entries)) {
		end = uint64(len(f.entries))
	}
	return f.entries[from:end], nil
}

func newTestRouter(log *fakeLog) *mux.Router {
	h := NewHandler(log, rate.NewLimiter(rate.Inf, 1))
	r := mux.NewRouter()
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/", h.SubmitMessage).Methods("POST")
	r.HandleFunc("/{offset:[0-9]+}", h.ReadMessages).Methods("GET")
	return r
}

var (
	testKey = strings.Repeat("A", 116)
	testSig = strings.Repeat("B", 88)
)

func TestSubmitMessageAppendsPersistedForm(t *testing.T) {
	log := &fakeLog{}
	router := newTestRouter(log)

	body := "transaction:Zm9v:" + testSig + ":" + testKey
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, log.entries, 1)
	require.Equal(t, "0:"+body, log.entries[0])

	// The stored entry is the persisted wire form.
	_, err := message.ParseMessage(log.entries[0])
	require.NoError(t, err)
}

func TestSubmitMessageRejectsNewlines(t *testing.T) {
	log := &fakeLog{}
	router := newTestRouter(log)

	req := httptest.NewRequest("POST", "/", strings.NewReader("block:1:"+testKey+"\n"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "newlines")
	require.Empty(t, log.entries)
}

func TestSubmitMessageRejectsMalformedRecord(t *testing.T) {
	log := &fakeLog{}
	router := newTestRouter(log)

	req := httptest.NewRequest("POST", "/", strings.NewReader("transaction:short"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.True(t, strings.HasPrefix(rec.Body.String(), "Error: "))
	require.Empty(t, log.entries)
}

func TestSubmitMessageRejectsPersistedForm(t *testing.T) {
	// Clients may not choose serials; the persisted form is refused.
	log := &fakeLog{}
	router := newTestRouter(log)

	req := httptest.NewRequest("POST", "/", strings.NewReader("0:block:1337:"+testKey))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, log.entries)
}

func TestReadMessages(t *testing.T) {
	log := &fakeLog{}
	log.Append(context.Background(), message.Genesis().String())
	log.Append(context.Background(), "transaction:Zm9v:"+testSig+":"+testKey)
	router := newTestRouter(log)

	req := httptest.NewRequest("GET", "/0", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	lines := strings.Split(strings.TrimRight(rec.Body.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "0:"+message.Genesis().String(), lines[0])
	require.Equal(t, "1:transaction:Zm9v:"+testSig+":"+testKey, lines[1])
}

func TestReadMessagesFromOffset(t *testing.T) {
	log := &fakeLog{}
	log.Append(context.Background(), message.Genesis().String())
	log.Append(context.Background(), "block:1:"+testKey)
	log.Append(context.Background(), "block:2:"+testKey)
	router := newTestRouter(log)

	req := httptest.NewRequest("GET", "/2", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "2:block:2:"+testKey+"\n", rec.Body.String())
}

func TestReadMessagesPastEnd(t *testing.T) {
	log := &fakeLog{}
	router := newTestRouter(log)

	req := httptest.NewRequest("GET", "/100", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Body.String())
}

func TestReadMessagesCorruptEntry(t *testing.T) {
	log := &fakeLog{entries: []string{"garbage-line"}}
	router := newTestRouter(log)

	req := httptest.NewRequest("GET", "/0", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(&fakeLog{})

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
