package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	pnet "notifygate/internal/platform/net"

	"github.com/google/uuid"
)

// TestRequestID_MintsUUIDWhenAbsent checks a fresh id lands on context and response
func TestRequestID_MintsUUIDWhenAbsent(t *testing.T) {
	t.Parallel()

	var seen string
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = pnet.RequestID(r.Context())
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	if seen == "" {
		t.Fatalf("no request id on context")
	}
	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("minted id %q is not a uuid: %v", seen, err)
	}
	if got := w.Header().Get(HeaderRequestID); got != seen {
		t.Fatalf("response header %q != context id %q", got, seen)
	}
}

// TestRequestID_HonorsInboundHeader keeps caller-supplied correlation ids
func TestRequestID_HonorsInboundHeader(t *testing.T) {
	t.Parallel()

	var seen string
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = pnet.RequestID(r.Context())
	}))

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set(HeaderRequestID, "req-abc-123")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if seen != "req-abc-123" {
		t.Fatalf("context id = %q", seen)
	}
	if got := w.Header().Get(HeaderRequestID); got != "req-abc-123" {
		t.Fatalf("response header = %q", got)
	}
}

// TestRequestID_FallsBackToCorrelationHeader covers the secondary header
func TestRequestID_FallsBackToCorrelationHeader(t *testing.T) {
	t.Parallel()

	var seen string
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = pnet.RequestID(r.Context())
	}))

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set(HeaderCorrelationID, "corr-9")
	h.ServeHTTP(httptest.NewRecorder(), r)

	if seen != "corr-9" {
		t.Fatalf("context id = %q", seen)
	}
}
