package fields

import (
	"strings"
	"testing"

	"github.com/valvetrack/valve-docs/constants"
)

const calibrationText = `Certificado: CERT-2026-001
Certificado de Calibración de Válvula de Seguridad
Serie: SN-12345-A
Presión inicial: 100 PSI
Presión final: 105 PSI
Temperatura: 20 C
Fecha: 16/02/2026
Resultado: Aprobado
Laboratorio: LabCal SAS`

func TestExtractCalibration(t *testing.T) {
	fs := ExtractCalibration(calibrationText)

	if fs.DocumentType != constants.DocTypeCalibration {
		t.Errorf("DocumentType = %s", fs.DocumentType)
	}
	checks := []struct {
		name, got, want string
	}{
		{"DocumentNumber", fs.DocumentNumber, "CERT-2026-001"},
		{"SerialNumber", fs.SerialNumber, "SN-12345-A"},
		{"InitialPressure", fs.InitialPressure, "100"},
		{"FinalPressure", fs.FinalPressure, "105"},
		{"Temperature", fs.Temperature, "20"},
		{"IssueDate", fs.IssueDate, "16/02/2026"},
		{"Result", fs.Result, constants.ResultApproved},
		{"Laboratory", fs.Laboratory, "LabCal SAS"},
		{"PressureUnit", fs.PressureUnit, "PSI"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %q, want %q", c.name, c.got, c.want)
		}
	}
	if fs.ExpiryDate != "" {
		t.Errorf("ExpiryDate = %q, want empty", fs.ExpiryDate)
	}
}

func TestExtractCalibrationExpiry(t *testing.T) {
	fs := ExtractCalibration("Certificado: C-1\nVencimiento: 16/02/2027")
	if fs.ExpiryDate != "16/02/2027" {
		t.Errorf("ExpiryDate = %q, want 16/02/2027", fs.ExpiryDate)
	}
}

const maintenanceText = `Mantenimiento de Válvula de Seguridad
Informe: MNT-2026-117
Número de Serie: SN-77001-B
Fecha de Mantenimiento: 03/03/2026
Tipo: Preventivo
Trabajos: Limpieza y ajuste del resorte
Estado: Operativo
Material: resorte nuevo
Material: empaque
Próximo Mantenimiento: 03/09/2026
Duración: 2.5 horas
Técnico: Juan Pérez`

func TestExtractMaintenance(t *testing.T) {
	fs := ExtractMaintenance(maintenanceText)

	if fs.DocumentType != constants.DocTypeMaintenance {
		t.Errorf("DocumentType = %s", fs.DocumentType)
	}
	checks := []struct {
		name, got, want string
	}{
		{"DocumentNumber", fs.DocumentNumber, "MNT-2026-117"},
		{"SerialNumber", fs.SerialNumber, "SN-77001-B"},
		{"ServiceDate", fs.ServiceDate, "03/03/2026"},
		{"MaintenanceType", fs.MaintenanceType, "Preventivo"},
		{"WorkDescription", fs.WorkDescription, "Limpieza y ajuste del resorte"},
		{"ValveCondition", fs.ValveCondition, "Operativo"},
		{"NextServiceDate", fs.NextServiceDate, "03/09/2026"},
		{"MaterialsUsed", fs.MaterialsUsed, "resorte nuevo empaque"},
		{"Duration", fs.Duration, "2.5 horas"},
		{"Technician", fs.Technician, "Juan Pérez"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %q, want %q", c.name, c.got, c.want)
		}
	}
}

func TestExtractUnknownFallsBackToCalibration(t *testing.T) {
	fs := Extract(constants.DocTypeUnknown, "Serie: X-1\nResultado: Aprobado")
	if fs.DocumentType != constants.DocTypeUnknown {
		t.Errorf("DocumentType = %s, want preserved %s", fs.DocumentType, constants.DocTypeUnknown)
	}
	if fs.SerialNumber != "X-1" {
		t.Errorf("SerialNumber = %q, want X-1", fs.SerialNumber)
	}
	if fs.Result != constants.ResultApproved {
		t.Errorf("Result = %q", fs.Result)
	}
}

func TestExtractResult(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Resultado: Aprobado", constants.ResultApproved},
		{"Result: Passed", constants.ResultApproved},
		{"Estado: Aceptable", constants.ResultApproved},
		{"Cumple con la norma", constants.ResultApproved},
		{"Resultado: Rechazado", constants.ResultRejected},
		{"La válvula No cumple con la norma", constants.ResultRejected},
		{"Out of tolerance", constants.ResultRejected},
		{"Informe sin veredicto", ""},
	}
	for _, tt := range tests {
		if got := ExtractResult(tt.text); got != tt.want {
			t.Errorf("ExtractResult(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestExtractResultNoCumpleIsNotApproved(t *testing.T) {
	// The positive "Cumple" pattern is line-anchored; mid-sentence "No
	// cumple" must read as a rejection.
	if got := ExtractResult("Veredicto final. No cumple."); got != constants.ResultRejected {
		t.Fatalf("ExtractResult = %q, want %s", got, constants.ResultRejected)
	}
}

func TestReview(t *testing.T) {
	ok := ExtractCalibration(calibrationText)
	if needs, reason := Review(ok); needs {
		t.Errorf("complete certificate flagged for review: %s", reason)
	}

	missing := ExtractCalibration("Certificado de Calibración\nPresión inicial: 100 PSI")
	needs, reason := Review(missing)
	if !needs {
		t.Fatal("field bag without document number or serial must be flagged")
	}
	if !strings.Contains(reason, "schema") {
		t.Errorf("reason = %q, expected schema validation detail", reason)
	}
}
