package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/valvetrack/valve-docs/constants"
)

// Document is a persisted certificate/report record with the data extracted
// from its PDF.
type Document struct {
	ID               uuid.UUID              `json:"id"`
	ValveID          *uuid.UUID             `json:"valve_id,omitempty"`
	DocumentType     constants.DocumentType `json:"tipo_documento"`
	DocumentNumber   string                 `json:"numero_documento,omitempty"`
	OriginalFilename string                 `json:"nombre_original"`
	StoredPath       string                 `json:"stored_path,omitempty"`
	ContentHash      []byte                 `json:"-"`
	FileSize         int64                  `json:"file_size"`

	// Extracted payload: the raw field bag as JSON plus normalized dates.
	FieldsJSON   []byte     `json:"-"`
	DocumentDate *time.Time `json:"fecha_documento,omitempty"`
	ExpiryDate   *time.Time `json:"fecha_vencimiento,omitempty"`

	Extracted    bool   `json:"extraido_exitosamente"`
	NeedsReview  bool   `json:"needs_review"`
	ReviewReason string `json:"review_reason,omitempty"`

	UploadedAt  time.Time  `json:"uploaded_at"`
	ExtractedAt *time.Time `json:"fecha_extraccion_datos,omitempty"`
}

// Expired reports whether the document's validity window has passed. Records
// without an expiry date never expire.
func (d *Document) Expired(now time.Time) bool {
	if d.ExpiryDate == nil {
		return false
	}
	return d.ExpiryDate.Before(now.Truncate(24 * time.Hour))
}
