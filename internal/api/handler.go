package api

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/time/rate"

	"github.com/punchamoorthee/chainrelay/internal/message"
)

// readBatchLimit caps how many log entries one GET returns.
const readBatchLimit = 200

// Metrics
var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "relay_http_requests_total",
		Help: "Total HTTP requests processed, labeled by status code",
	}, []string{"method", "endpoint", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "relay_http_request_duration_seconds",
		Help:    "Latency distribution of HTTP requests",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
	}, []string{"method", "endpoint"})

	decodeFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "relay_decode_failures_total",
		Help: "Rejected submissions, labeled by codec error kind",
	}, []string{"kind"})
)

// Log is the slice of the store the handlers need.
type Log interface {
	Append(ctx context.Context, record string) (uint64, error)
	Range(ctx context.Context, from uint64, limit int) ([]string, error)
}

type Handler struct {
	store   Log
	limiter *rate.Limiter
}

func NewHandler(s Log, limiter *rate.Limiter) *Handler {
	return &Handler{store: s, limiter: limiter}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httpRequestsTotal.WithLabelValues("GET", "/health", "200").Inc()
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// SubmitMessage accepts one encoded record, validates it through the
// NewMessage decoder and appends its canonical re-encoding to the log.
func (h *Handler) SubmitMessage(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(httpRequestDuration.WithLabelValues("POST", "/"))
	defer timer.ObserveDuration()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Failed to read body", "POST", "/")
		return
	}

	raw := string(body)
	if strings.Contains(raw, "\n") {
		h.respondError(w, http.StatusBadRequest, "Error: Message contains newlines", "POST", "/")
		return
	}

	msg, err := message.ParseNewMessage(raw)
	if err != nil {
		decodeFailuresTotal.WithLabelValues(errorKindLabel(err)).Inc()
		h.respondError(w, http.StatusBadRequest, "Error: "+err.Error(), "POST", "/")
		return
	}

	// Submission throttle; took the place of the fixed per-request sleep.
	if err := h.limiter.Wait(r.Context()); err != nil {
		h.respondError(w, http.StatusServiceUnavailable, "Error: Cancelled while throttled", "POST", "/")
		return
	}

	if _, err := h.store.Append(r.Context(), msg.String()); err != nil {
		log.Printf("append failed: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to append message", "POST", "/")
		return
	}

	httpRequestsTotal.WithLabelValues("POST", "/", "200").Inc()
	w.WriteHeader(http.StatusOK)
}

// ReadMessages returns up to readBatchLimit entries starting at the offset in
// the path, one "<serial>:<record>" line each. Every stored entry is run back
// through the persisted Message decoder before display.
func (h *Handler) ReadMessages(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(httpRequestDuration.WithLabelValues("GET", "/{offset}"))
	defer timer.ObserveDuration()

	offset, err := strconv.ParseUint(mux.Vars(r)["offset"], 10, 64)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Error: Failed to parse offset", "GET", "/{offset}")
		return
	}

	payloads, err := h.store.Range(r.Context(), offset, readBatchLimit)
	if err != nil {
		log.Printf("range read failed: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to read messages", "GET", "/{offset}")
		return
	}

	var buf strings.Builder
	for _, payload := range payloads {
		msg, err := message.ParseMessage(payload)
		if err != nil {
			log.Printf("stored entry is undecodable: %v", err)
			h.respondError(w, http.StatusInternalServerError, "Corrupt log entry", "GET", "/{offset}")
			return
		}
		buf.WriteString(msg.String())
		buf.WriteByte('\n')
	}

	httpRequestsTotal.WithLabelValues("GET", "/{offset}", "200").Inc()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(buf.String()))
}

func (h *Handler) respondError(w http.ResponseWriter, code int, msg, method, endpoint string) {
	httpRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(code)).Inc()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	w.Write([]byte(msg))
}

func errorKindLabel(err error) string {
	var cerr *message.Error
	if !errors.As(err, &cerr) {
		return "unknown"
	}
	switch cerr.Kind {
	case message.KindStructural:
		return "structural"
	case message.KindUnrecognizedKind:
		return "unrecognized_kind"
	case message.KindInvalidField:
		return "invalid_field"
	}
	return "unknown"
}
