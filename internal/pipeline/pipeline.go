// Package pipeline runs the extraction stages for one uploaded document:
// text extraction, classification, field extraction, date normalization, and
// equipment resolution.
package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/valvetrack/valve-docs/constants"
	"github.com/valvetrack/valve-docs/internal/classify"
	"github.com/valvetrack/valve-docs/internal/dates"
	"github.com/valvetrack/valve-docs/internal/entity"
	"github.com/valvetrack/valve-docs/internal/fields"
	"github.com/valvetrack/valve-docs/internal/pdftext"
	"github.com/valvetrack/valve-docs/internal/repository"
	"github.com/valvetrack/valve-docs/internal/resolver"
)

type Pipeline struct {
	Logger    *slog.Logger
	Extractor *pdftext.Extractor
	Docs      repository.DocumentRepository
	Resolver  *resolver.Resolver
}

func NewPipeline(extractor *pdftext.Extractor, docs repository.DocumentRepository, res *resolver.Resolver, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		Logger:    logger,
		Extractor: extractor,
		Docs:      docs,
		Resolver:  res,
	}
}

// ClassifyAndExtract is the pure entry point: it reads the PDF stream,
// classifies the document, and populates the field bag for the winning type.
// The stream cursor is rewound before returning. Only an unreadable source
// aborts; missing fields are absent values, never errors.
func (p *Pipeline) ClassifyAndExtract(r io.ReadSeeker) (classify.Classification, fields.FieldSet, error) {
	text, err := p.Extractor.Extract(r)
	if err != nil {
		return classify.Classification{}, fields.FieldSet{}, err
	}
	return p.classifyText(text)
}

func (p *Pipeline) classifyText(text string) (classify.Classification, fields.FieldSet, error) {
	cls := classify.Classify(text)
	fs := fields.Extract(cls.Type, text)

	p.Logger.Info("extract.classified",
		"type", cls.Type,
		"calibration_detected", cls.CalibrationDetected,
		"maintenance_detected", cls.MaintenanceDetected,
		"calibration_score", cls.CalibrationTieScore,
		"maintenance_score", cls.MaintenanceTieScore,
	)
	return cls, fs, nil
}

// ProcessRequest carries the upload metadata for a full pipeline run.
type ProcessRequest struct {
	Filename   string
	StoredPath string
	Context    resolver.ExtractionContext
}

// ProcessResult is the outcome of one complete run.
type ProcessResult struct {
	Document     *entity.Document
	FieldSet     fields.FieldSet
	Valve        *entity.Valve
	ValveCreated bool
}

// Process executes the whole pipeline to completion for one document:
// classify and extract, normalize dates, persist the record, resolve the
// valve, link it, and stamp the valve's service history. Runs are synchronous
// and independent; the registry is the only shared resource.
func (p *Pipeline) Process(ctx context.Context, r io.ReadSeeker, req ProcessRequest) (*ProcessResult, error) {
	start := time.Now()
	p.Logger.Info("pipeline.start", "filename", req.Filename)

	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind source stream: %w", err)
	}

	text, err := p.Extractor.ExtractBytes(content)
	if err != nil {
		p.Logger.Error("pipeline.unreadable", "filename", req.Filename, "error", err)
		return nil, err
	}

	cls, fs, err := p.classifyText(text)
	if err != nil {
		return nil, err
	}

	needsReview, reason := fields.Review(fs)
	fieldsJSON, err := json.Marshal(fs)
	if err != nil {
		return nil, fmt.Errorf("marshal field bag: %w", err)
	}

	hash := sha256.Sum256(content)
	now := time.Now().UTC()
	doc := &entity.Document{
		DocumentType:     cls.Type,
		DocumentNumber:   fs.DocumentNumber,
		OriginalFilename: req.Filename,
		StoredPath:       req.StoredPath,
		ContentHash:      hash[:],
		FileSize:         int64(len(content)),
		FieldsJSON:       fieldsJSON,
		DocumentDate:     dates.NormalizePtr(fs.DocumentDate()),
		ExpiryDate:       expiryDate(fs),
		Extracted:        true,
		NeedsReview:      needsReview,
		ReviewReason:     reason,
		UploadedAt:       now,
		ExtractedAt:      &now,
	}
	doc, err = p.Docs.Insert(ctx, doc)
	if err != nil {
		return nil, err
	}

	valve, created, err := p.Resolver.Resolve(ctx, fs.SerialNumber, req.Context.Model, req.Context)
	if err != nil {
		// The record is already persisted; a registry failure leaves it
		// unlinked for manual follow-up rather than aborting the upload.
		p.Logger.Error("pipeline.resolve_failed", "document_id", doc.ID, "error", err)
		return &ProcessResult{Document: doc, FieldSet: fs}, nil
	}
	if valve != nil {
		if err := p.Docs.SetValveID(ctx, doc.ID, valve.ID); err != nil {
			return nil, err
		}
		doc.ValveID = &valve.ID
		if err := p.Resolver.StampServiceHistory(ctx, valve, cls.Type, doc.DocumentDate, doc.Extracted); err != nil {
			p.Logger.Error("pipeline.stamp_failed", "valve_id", valve.ID, "error", err)
		}
	}

	p.Logger.Info("pipeline.ok",
		"document_id", doc.ID,
		"type", doc.DocumentType,
		"document_number", doc.DocumentNumber,
		"serial_number", fs.SerialNumber,
		"valve_created", created,
		"needs_review", doc.NeedsReview,
		"duration", time.Since(start),
	)
	return &ProcessResult{Document: doc, FieldSet: fs, Valve: valve, ValveCreated: created}, nil
}

func expiryDate(fs fields.FieldSet) *time.Time {
	if fs.DocumentType == constants.DocTypeMaintenance {
		return dates.NormalizePtr(fs.NextServiceDate)
	}
	return dates.NormalizePtr(fs.ExpiryDate)
}
