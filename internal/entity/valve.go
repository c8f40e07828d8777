package entity

import (
	"time"

	"github.com/google/uuid"
)

// Valve represents an equipment record for data transfer between layers.
// The serial number is the unique identifier used to link documents.
type Valve struct {
	ID                  uuid.UUID  `json:"id"`
	OrganizationID      *uuid.UUID `json:"organization_id,omitempty"`
	SerialNumber        string     `json:"numero_serie"`
	Brand               string     `json:"marca,omitempty"`
	Model               string     `json:"modelo,omitempty"`
	Size                string     `json:"tamano,omitempty"`
	LocationTag         string     `json:"tag_localizacion,omitempty"`
	LastCalibrationDate *time.Time `json:"fecha_ultima_calibracion,omitempty"`
	LastServiceDate     *time.Time `json:"fecha_ultimo_servicio,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// Staleness windows for service-due checks.
const (
	calibrationDue = 365 * 24 * time.Hour
	serviceDue     = 180 * 24 * time.Hour
)

// NeedsCalibration reports whether the valve is overdue for calibration
// relative to now (never-calibrated valves are always due).
func (v *Valve) NeedsCalibration(now time.Time) bool {
	if v.LastCalibrationDate == nil {
		return true
	}
	return now.Sub(*v.LastCalibrationDate) > calibrationDue
}

// NeedsService reports whether the valve is overdue for maintenance.
func (v *Valve) NeedsService(now time.Time) bool {
	if v.LastServiceDate == nil {
		return true
	}
	return now.Sub(*v.LastServiceDate) > serviceDue
}
