package repository

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/valvetrack/valve-docs/constants"
	"github.com/valvetrack/valve-docs/internal/common"
	"github.com/valvetrack/valve-docs/internal/entity"
)

// DocumentRepository persists extracted certificate/report records.
type DocumentRepository interface {
	Insert(ctx context.Context, d *entity.Document) (*entity.Document, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Document, error)
	SetValveID(ctx context.Context, docID, valveID uuid.UUID) error
	ListByValve(ctx context.Context, valveID uuid.UUID) ([]*entity.Document, error)
}

type documentRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewDocumentRepository(db *sql.DB, logger *slog.Logger) DocumentRepository {
	return &documentRepository{db: db, logger: logger}
}

const documentColumns = `id, valve_id, document_type, document_number, original_filename,
	stored_path, content_hash, file_size, fields_json, document_date, expiry_date,
	extracted, needs_review, review_reason, uploaded_at, extracted_at`

func (r *documentRepository) Insert(ctx context.Context, d *entity.Document) (*entity.Document, error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.UploadedAt.IsZero() {
		d.UploadedAt = time.Now().UTC()
	}

	var valveID any
	if d.ValveID != nil {
		valveID = d.ValveID.String()
	}
	fieldsJSON := d.FieldsJSON
	if len(fieldsJSON) == 0 {
		fieldsJSON = []byte("{}")
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO documents (id, valve_id, document_type, document_number, original_filename,
			stored_path, content_hash, file_size, fields_json, document_date, expiry_date,
			extracted, needs_review, review_reason, uploaded_at, extracted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		d.ID.String(), valveID, string(d.DocumentType), d.DocumentNumber, d.OriginalFilename,
		d.StoredPath, hex.EncodeToString(d.ContentHash), d.FileSize, string(fieldsJSON),
		timeArg(d.DocumentDate), timeArg(d.ExpiryDate),
		boolArg(d.Extracted), boolArg(d.NeedsReview), d.ReviewReason,
		d.UploadedAt.Format(time.RFC3339), timeArg(d.ExtractedAt))
	if err != nil {
		r.logger.Error("failed to insert document", "filename", d.OriginalFilename, "error", err)
		return nil, common.WrapError(err, "insert document")
	}
	return d, nil
}

func (r *documentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE id = $1`, id.String())
	return scanDocument(row)
}

// SetValveID links a document to its resolved valve (idempotent).
func (r *documentRepository) SetValveID(ctx context.Context, docID, valveID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE documents SET valve_id = $1 WHERE id = $2`,
		valveID.String(), docID.String())
	if err != nil {
		r.logger.Error("failed to link document to valve", "document_id", docID, "valve_id", valveID, "error", err)
		return common.WrapError(err, "link document to valve")
	}
	return nil
}

func (r *documentRepository) ListByValve(ctx context.Context, valveID uuid.UUID) ([]*entity.Document, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE valve_id = $1
		 ORDER BY uploaded_at DESC`, valveID.String())
	if err != nil {
		return nil, common.WrapError(err, "list documents")
	}
	defer rows.Close()

	var out []*entity.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func scanDocument(row rowScanner) (*entity.Document, error) {
	var (
		d                   entity.Document
		idStr, docType      string
		valveStr            sql.NullString
		hashHex, fieldsJSON string
		docDate, expiry     sql.NullString
		extracted, review   int64
		uploadedAt          string
		extractedAt         sql.NullString
	)
	err := row.Scan(&idStr, &valveStr, &docType, &d.DocumentNumber, &d.OriginalFilename,
		&d.StoredPath, &hashHex, &d.FileSize, &fieldsJSON, &docDate, &expiry,
		&extracted, &review, &d.ReviewReason, &uploadedAt, &extractedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, common.WrapError(err, "scan document")
	}
	d.ID, err = uuid.Parse(idStr)
	if err != nil {
		return nil, common.WrapError(err, "parse document id")
	}
	if valveStr.Valid {
		if vid, perr := uuid.Parse(valveStr.String); perr == nil {
			d.ValveID = &vid
		}
	}
	d.DocumentType = constants.DocumentType(docType)
	d.ContentHash, _ = hex.DecodeString(hashHex)
	d.FieldsJSON = []byte(fieldsJSON)
	d.DocumentDate = parseTimePtr(docDate)
	d.ExpiryDate = parseTimePtr(expiry)
	d.Extracted = extracted != 0
	d.NeedsReview = review != 0
	d.UploadedAt = parseTime(uploadedAt)
	d.ExtractedAt = parseTimePtr(extractedAt)
	return &d, nil
}

func boolArg(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
