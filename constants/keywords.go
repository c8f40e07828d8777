package constants

// Detector keyword sets. Terms cover Spanish and English labels, including
// accented and unaccented spellings, because lab certificates arrive in both
// languages. Treat these as immutable configuration.

// CalibrationKeywords flags a document as a calibration certificate when at
// least MinKeywordHits of them appear.
var CalibrationKeywords = []string{
	"calibración", "calibracion", "calibration",
	"certificado", "certificate",
	"presión", "presion", "pressure",
	"calibrado", "calibrated",
}

// MaintenanceKeywords flags a document as a maintenance report.
var MaintenanceKeywords = []string{
	"mantenimiento", "maintenance",
	"informe", "report", "reporte",
	"servicio técnico", "technical service",
	"revisión", "inspection",
}

// MinKeywordHits is the distinct-keyword threshold for a positive detection.
const MinKeywordHits = 2

// Tie-break subsets: when both detectors fire, raw occurrence counts of these
// smaller type-defining stems decide the winner.
var (
	CalibrationTieBreak = []string{"presión", "calibr", "presion"}
	MaintenanceTieBreak = []string{"mantenim", "servicio", "revisión"}
)
