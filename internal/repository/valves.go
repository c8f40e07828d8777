package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/valvetrack/valve-docs/internal/common"
	"github.com/valvetrack/valve-docs/internal/entity"
)

// ValveRepository is the equipment registry boundary consumed by the
// resolver.
type ValveRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Valve, error)
	// GetBySerial performs an exact, case-sensitive serial lookup.
	GetBySerial(ctx context.Context, serial string) (*entity.Valve, error)
	// FindByModel returns the oldest record whose model matches
	// case-insensitively. When several valves share a model this silently
	// picks the first; no ambiguity signal is raised (known limitation).
	FindByModel(ctx context.Context, model string) (*entity.Valve, error)
	Create(ctx context.Context, v *entity.Valve) (*entity.Valve, error)
	List(ctx context.Context) ([]*entity.Valve, error)
	// StampCalibration/StampService overwrite one of the two
	// service-history dates.
	StampCalibration(ctx context.Context, id uuid.UUID, date time.Time) error
	StampService(ctx context.Context, id uuid.UUID, date time.Time) error
}

type valveRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewValveRepository(db *sql.DB, logger *slog.Logger) ValveRepository {
	return &valveRepository{db: db, logger: logger}
}

const valveColumns = `id, organization_id, serial_number, brand, model, size,
	location_tag, last_calibration_date, last_service_date, created_at, updated_at`

func (r *valveRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Valve, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+valveColumns+` FROM valves WHERE id = $1`, id.String())
	return scanValve(row)
}

func (r *valveRepository) GetBySerial(ctx context.Context, serial string) (*entity.Valve, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+valveColumns+` FROM valves WHERE serial_number = $1`, serial)
	return scanValve(row)
}

func (r *valveRepository) FindByModel(ctx context.Context, model string) (*entity.Valve, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+valveColumns+` FROM valves WHERE LOWER(model) = LOWER($1)
		 ORDER BY created_at, id LIMIT 1`, model)
	return scanValve(row)
}

func (r *valveRepository) Create(ctx context.Context, v *entity.Valve) (*entity.Valve, error) {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	now := time.Now().UTC()
	v.CreatedAt = now
	v.UpdatedAt = now

	var orgID any
	if v.OrganizationID != nil {
		orgID = v.OrganizationID.String()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO valves (id, organization_id, serial_number, brand, model, size,
			location_tag, last_calibration_date, last_service_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		v.ID.String(), orgID, v.SerialNumber, v.Brand, v.Model, v.Size,
		v.LocationTag, timeArg(v.LastCalibrationDate), timeArg(v.LastServiceDate),
		now.Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		r.logger.Error("failed to create valve", "serial_number", v.SerialNumber, "error", err)
		return nil, common.WrapError(err, "create valve")
	}
	return v, nil
}

func (r *valveRepository) List(ctx context.Context) ([]*entity.Valve, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+valveColumns+` FROM valves ORDER BY created_at DESC`)
	if err != nil {
		return nil, common.WrapError(err, "list valves")
	}
	defer rows.Close()

	var out []*entity.Valve
	for rows.Next() {
		v, err := scanValve(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *valveRepository) StampCalibration(ctx context.Context, id uuid.UUID, date time.Time) error {
	return r.stamp(ctx, id, "last_calibration_date", date)
}

func (r *valveRepository) StampService(ctx context.Context, id uuid.UUID, date time.Time) error {
	return r.stamp(ctx, id, "last_service_date", date)
}

func (r *valveRepository) stamp(ctx context.Context, id uuid.UUID, column string, date time.Time) error {
	// column is one of two fixed names, never caller input.
	_, err := r.db.ExecContext(ctx,
		`UPDATE valves SET `+column+` = $1, updated_at = $2 WHERE id = $3`,
		date.Format(time.RFC3339), time.Now().UTC().Format(time.RFC3339), id.String())
	if err != nil {
		r.logger.Error("failed to stamp service history", "valve_id", id, "column", column, "error", err)
		return common.WrapError(err, "stamp service history")
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanValve(row rowScanner) (*entity.Valve, error) {
	var (
		v                  entity.Valve
		idStr              string
		orgStr             sql.NullString
		lastCal, lastSrv   sql.NullString
		createdAt, updated string
	)
	err := row.Scan(&idStr, &orgStr, &v.SerialNumber, &v.Brand, &v.Model, &v.Size,
		&v.LocationTag, &lastCal, &lastSrv, &createdAt, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, common.WrapError(err, "scan valve")
	}
	v.ID, err = uuid.Parse(idStr)
	if err != nil {
		return nil, common.WrapError(err, "parse valve id")
	}
	if orgStr.Valid {
		if org, perr := uuid.Parse(orgStr.String); perr == nil {
			v.OrganizationID = &org
		}
	}
	v.LastCalibrationDate = parseTimePtr(lastCal)
	v.LastServiceDate = parseTimePtr(lastSrv)
	v.CreatedAt = parseTime(createdAt)
	v.UpdatedAt = parseTime(updated)
	return &v, nil
}

func timeArg(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

func parseTimePtr(ns sql.NullString) *time.Time {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, ns.String)
	if err != nil {
		return nil
	}
	return &t
}
