// Package resolver links extracted documents to equipment records,
// creating minimal valve records for serials the registry has never seen.
package resolver

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/valvetrack/valve-docs/constants"
	"github.com/valvetrack/valve-docs/internal/common"
	"github.com/valvetrack/valve-docs/internal/entity"
	"github.com/valvetrack/valve-docs/internal/repository"
)

// ExtractionContext carries what the upload context knows about the
// equipment, used to seed newly created records.
type ExtractionContext struct {
	OrganizationID *uuid.UUID
	Brand          string
	Model          string
	Size           string
}

type Resolver struct {
	valves repository.ValveRepository
	logger *slog.Logger
}

func NewResolver(valves repository.ValveRepository, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{valves: valves, logger: logger}
}

// Resolve finds or creates the equipment record for an extracted serial
// number and/or model name:
//
//  1. exact case-sensitive serial match,
//  2. case-insensitive first match by model,
//  3. create a minimal record keyed on whichever identifier exists
//     (serial preferred), seeded from the extraction context.
//
// With no identifiers at all it returns (nil, false, nil) and touches
// nothing. Concurrent resolves of the same brand-new serial can race; the
// UNIQUE serial constraint makes the loser fail rather than duplicate.
func (r *Resolver) Resolve(ctx context.Context, serial, model string, ec ExtractionContext) (*entity.Valve, bool, error) {
	serial = strings.TrimSpace(serial)
	model = strings.TrimSpace(model)

	if serial != "" {
		v, err := r.valves.GetBySerial(ctx, serial)
		if err == nil {
			r.logger.Info("resolver.matched", "by", "serial", "valve_id", v.ID, "serial_number", serial)
			return v, false, nil
		}
		if !errors.Is(err, common.ErrNotFound) {
			return nil, false, err
		}
	}

	if model != "" {
		v, err := r.valves.FindByModel(ctx, model)
		if err == nil {
			r.logger.Info("resolver.matched", "by", "model", "valve_id", v.ID, "model", model)
			return v, false, nil
		}
		if !errors.Is(err, common.ErrNotFound) {
			return nil, false, err
		}
	}

	if serial == "" && model == "" {
		return nil, false, nil
	}

	newSerial := serial
	if newSerial == "" {
		newSerial = model
	}
	v := &entity.Valve{
		SerialNumber:   newSerial,
		OrganizationID: ec.OrganizationID,
		Brand:          ec.Brand,
		Model:          firstNonEmpty(model, ec.Model),
		Size:           ec.Size,
	}
	created, err := r.valves.Create(ctx, v)
	if err != nil {
		return nil, false, err
	}
	r.logger.Info("resolver.created", "valve_id", created.ID, "serial_number", newSerial)
	return created, true, nil
}

// StampServiceHistory updates the valve's last-calibration or last-service
// date from a processed document. The stamp is skipped when extraction was
// not flagged successful or the document carries no normalized date.
func (r *Resolver) StampServiceHistory(ctx context.Context, valve *entity.Valve, docType constants.DocumentType, docDate *time.Time, extractionOK bool) error {
	if valve == nil || !extractionOK || docDate == nil {
		return nil
	}
	switch docType {
	case constants.DocTypeCalibration:
		return r.valves.StampCalibration(ctx, valve.ID, *docDate)
	case constants.DocTypeMaintenance, constants.DocumentType(constants.ServiceRepair):
		return r.valves.StampService(ctx, valve.ID, *docDate)
	default:
		return nil
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
