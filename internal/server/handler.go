// Package server exposes the extraction pipeline and valve registry over
// HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/valvetrack/valve-docs/constants"
	"github.com/valvetrack/valve-docs/internal/common"
	"github.com/valvetrack/valve-docs/internal/export"
	"github.com/valvetrack/valve-docs/internal/pipeline"
	"github.com/valvetrack/valve-docs/internal/repository"
	"github.com/valvetrack/valve-docs/internal/resolver"
)

type Handler struct {
	MaxUploadBytes int64
	StorageDir     string

	Pipeline *pipeline.Pipeline
	Valves   repository.ValveRepository
	Docs     repository.DocumentRepository
	Exporter *export.Service

	logger *slog.Logger
}

func NewHandler(cfg common.ServerConfig, pipe *pipeline.Pipeline, valves repository.ValveRepository, docs repository.DocumentRepository, exporter *export.Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		MaxUploadBytes: cfg.MaxUploadBytes,
		StorageDir:     cfg.StorageDir,
		Pipeline:       pipe,
		Valves:         valves,
		Docs:           docs,
		Exporter:       exporter,
		logger:         logger,
	}
}

// UploadDocument accepts one multipart PDF, runs the pipeline to completion,
// then persists the original bytes. The pipeline rewinds the upload stream,
// so the copy below writes the full file; an unreadable document returns 422
// and nothing is stored.
func (h *Handler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.MaxUploadBytes); err != nil {
		maxMB := h.MaxUploadBytes / (1024 * 1024)
		http.Error(w, fmt.Sprintf("file too large (max %dMB) or invalid form", maxMB), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file is required", http.StatusBadRequest)
		return
	}
	defer func() {
		_ = file.Close()
	}()

	if !constants.IsAllowedExt(filepath.Ext(header.Filename)) {
		http.Error(w, "only PDF files are allowed", http.StatusBadRequest)
		return
	}
	if header.Size > h.MaxUploadBytes {
		maxMB := h.MaxUploadBytes / (1024 * 1024)
		http.Error(w, fmt.Sprintf("file too large (max %dMB)", maxMB), http.StatusRequestEntityTooLarge)
		return
	}

	id := uuid.New()
	storedPath := filepath.Join(h.StorageDir, fmt.Sprintf("%s.pdf", id.String()))

	ec := resolver.ExtractionContext{
		Brand: r.FormValue("marca"),
		Model: r.FormValue("modelo"),
		Size:  r.FormValue("tamano"),
	}
	if org := r.FormValue("organization_id"); org != "" {
		orgID, perr := uuid.Parse(org)
		if perr != nil {
			http.Error(w, "organization_id must be a UUID", http.StatusBadRequest)
			return
		}
		ec.OrganizationID = &orgID
	}

	res, err := h.Pipeline.Process(ctx, file, pipeline.ProcessRequest{
		Filename:   header.Filename,
		StoredPath: storedPath,
		Context:    ec,
	})
	if err != nil {
		if common.IsUnreadable(err) {
			http.Error(w, "could not process this document", http.StatusUnprocessableEntity)
			return
		}
		h.logger.Error("upload processing failed",
			"request_id", common.RequestIDFromContext(ctx),
			"filename", header.Filename,
			"error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if err := h.storeOriginal(file, storedPath); err != nil {
		h.logger.Error("failed to store original file",
			"request_id", common.RequestIDFromContext(ctx),
			"path", storedPath,
			"error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"document":      res.Document,
		"fields":        res.FieldSet,
		"valve":         res.Valve,
		"valve_created": res.ValveCreated,
	})
}

func (h *Handler) storeOriginal(file io.Reader, storedPath string) error {
	if err := os.MkdirAll(h.StorageDir, 0o755); err != nil {
		return err
	}
	out, err := os.Create(storedPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()
	_, err = io.Copy(out, file)
	return err
}

// ListValves returns every registry record the caller may see.
func (h *Handler) ListValves(w http.ResponseWriter, r *http.Request) {
	valves, err := h.Valves.List(r.Context())
	if err != nil {
		h.logger.Error("list valves failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"valves": valves})
}

// GetValve returns one valve plus its document history and service-due
// flags.
func (h *Handler) GetValve(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "id must be a UUID", http.StatusBadRequest)
		return
	}
	valve, err := h.Valves.GetByID(r.Context(), id)
	if errors.Is(err, common.ErrNotFound) {
		http.Error(w, "valve not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("get valve failed", "valve_id", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	docs, err := h.Docs.ListByValve(r.Context(), id)
	if err != nil {
		h.logger.Error("list valve documents failed", "valve_id", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	now := time.Now().UTC()
	writeJSON(w, http.StatusOK, map[string]any{
		"valve":             valve,
		"documents":         docs,
		"needs_calibration": valve.NeedsCalibration(now),
		"needs_service":     valve.NeedsService(now),
	})
}

// ExportValve streams the valve's history workbook.
func (h *Handler) ExportValve(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "id must be a UUID", http.StatusBadRequest)
		return
	}
	data, err := h.Exporter.ExportValveHistoryXLSX(r.Context(), id)
	if errors.Is(err, common.ErrNotFound) {
		http.Error(w, "valve not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("export failed", "valve_id", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "hoja_vida_"+id.String()+".xlsx"))
	_, _ = w.Write(data)
}

// Healthz reports liveness.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
