// Package fields populates typed field bags from extracted document text
// using ordered regex chains.
package fields

import (
	"github.com/valvetrack/valve-docs/constants"
)

// FieldSet is the superset record of everything the per-type extractors can
// pull out of a document. Every field is independently optional: an empty
// string means "not found", never an error. JSON tags match the persisted
// document record columns.
type FieldSet struct {
	DocumentType   constants.DocumentType `json:"tipo_documento"`
	DocumentNumber string                 `json:"numero_documento,omitempty"`
	SerialNumber   string                 `json:"numero_serie,omitempty"`

	// Calibration certificate fields.
	IssueDate       string `json:"fecha_emision,omitempty"`
	ExpiryDate      string `json:"fecha_vencimiento,omitempty"`
	InitialPressure string `json:"presion_inicial,omitempty"`
	FinalPressure   string `json:"presion_final,omitempty"`
	Temperature     string `json:"temperatura,omitempty"`
	Result          string `json:"resultado,omitempty"`
	Laboratory      string `json:"laboratorio,omitempty"`
	Technician      string `json:"tecnico_responsable,omitempty"`
	PressureUnit    string `json:"unidad_presion,omitempty"`

	// Maintenance report fields.
	ServiceDate     string `json:"fecha_mantenimiento,omitempty"`
	MaintenanceType string `json:"tipo_mantenimiento,omitempty"`
	WorkDescription string `json:"descripcion_trabajos,omitempty"`
	ValveCondition  string `json:"estado_valvula,omitempty"`
	Observations    string `json:"observaciones,omitempty"`
	NextServiceDate string `json:"proximo_mantenimiento,omitempty"`
	MaterialsUsed   string `json:"materiales_utilizados,omitempty"`
	Duration        string `json:"duracion,omitempty"`
}

// DocumentDate returns the raw primary date of the record: issue date for
// calibration certificates, service date for maintenance reports.
func (f FieldSet) DocumentDate() string {
	if f.DocumentType == constants.DocTypeMaintenance {
		return f.ServiceDate
	}
	return f.IssueDate
}

// Extract dispatches to the per-type extractor. Unknown documents go through
// the calibration extractor as the last-resort default so a field bag is
// always produced.
func Extract(docType constants.DocumentType, text string) FieldSet {
	if docType == constants.DocTypeMaintenance {
		return ExtractMaintenance(text)
	}
	fs := ExtractCalibration(text)
	fs.DocumentType = docType
	return fs
}
