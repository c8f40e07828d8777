package server

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/valvetrack/valve-docs/internal/common"
)

func TestLogRequestsStampsRequestID(t *testing.T) {
	var got string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = common.RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	rr := httptest.NewRecorder()
	logRequests(inner, logger).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/healthz", nil))

	if got == "" {
		t.Fatal("handler saw no request ID in its context")
	}
	if _, err := uuid.Parse(got); err != nil {
		t.Errorf("request ID %q is not a UUID: %v", got, err)
	}
	if !strings.Contains(buf.String(), got) {
		t.Errorf("request log does not carry request ID %q:\n%s", got, buf.String())
	}
}
