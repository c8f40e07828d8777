package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/valvetrack/valve-docs/internal/common"
)

// NewRouter wires the HTTP surface and wraps it with request logging.
func NewRouter(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/healthz", h.Healthz)
	mux.HandleFunc("POST /api/documents", h.UploadDocument)
	mux.HandleFunc("GET /api/valves", h.ListValves)
	mux.HandleFunc("GET /api/valves/{id}", h.GetValve)
	mux.HandleFunc("GET /api/valves/{id}/export", h.ExportValve)

	return logRequests(mux, logger)
}

func logRequests(next http.Handler, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := uuid.NewString()
		r = r.WithContext(common.WithRequestID(r.Context(), reqID))
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("http.request",
			"request_id", reqID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
