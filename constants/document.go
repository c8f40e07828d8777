package constants

import "strings"

// DocumentType is the canonical classification for an uploaded document.
type DocumentType string

// Stable values (store these exact strings in DB).
const (
	DocTypeCalibration DocumentType = "calibracion"
	DocTypeMaintenance DocumentType = "mantenimiento"
	DocTypeUnknown     DocumentType = "desconocido"
)

// ServiceType mirrors the service-history categories on a valve record.
type ServiceType string

const (
	ServiceCalibration ServiceType = "calibracion"
	ServiceMaintenance ServiceType = "mantenimiento"
	ServiceRepair      ServiceType = "reparacion"
	ServiceOther       ServiceType = "otro"
)

// Result values produced by the two-stage pass/fail scan.
const (
	ResultApproved = "APROBADO"
	ResultRejected = "RECHAZADO"
)

// AllowedExtensions holds the file extensions accepted for document upload.
var AllowedExtensions = map[string]struct{}{
	"pdf": {},
}

// MaxUploadBytes caps uploaded certificate/report size.
const MaxUploadBytes = 10 * 1024 * 1024

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsAllowedExt checks if a file extension is in the allowed set.
func IsAllowedExt(ext string) bool {
	_, ok := AllowedExtensions[NormalizeExt(ext)]
	return ok
}
