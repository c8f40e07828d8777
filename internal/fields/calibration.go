package fields

import (
	"github.com/valvetrack/valve-docs/constants"
	"github.com/valvetrack/valve-docs/internal/textmatch"
)

// Ordered chains for calibration certificates: explicit labels first, generic
// fallbacks last.
var (
	// Longer labels come before the bare CERT stem: leftmost-first
	// alternation would otherwise stop at "Cert" inside "Certificado" and
	// capture the label's own tail instead of the number.
	calDocumentNumber = textmatch.Chain(
		`(?:Certificado|Certificate|Calibración|CERT)[\s:]*([A-Z0-9\-\/]+)`,
		`(?:N|Nº|No)\.?[\s:]*([A-Z0-9\-\/]+)`,
		`Número[\s:]*([A-Z0-9\-\/]+)`,
	)
	// The label must be followed by a real separator: serials themselves
	// start with "SN", and a separator-less match would capture "-12345-A"
	// out of "SN-12345-A".
	calSerialNumber = textmatch.Chain(
		`(?:Número[\s]de[\s]Serie|Serial[\s]Number|S/N|SN)[\s:]+([A-Z0-9\-]+)`,
		`(?:Serie)[\s:]*([A-Z0-9\-]+)`,
		`(?:Válvula)[\s:]*([A-Z0-9\-]+)`,
	)
	calIssueDate = textmatch.Chain(
		`(?:Fecha|Emisión|Date|Emitted|FECHA)[\s:]*(\d{1,2}[\s\-\/\.]\d{1,2}[\s\-\/\.]\d{4})`,
		`(\d{4}[\s\-\/]\d{1,2}[\s\-\/]\d{1,2})`,
		`(\d{1,2}[\s\-\/\.]\d{1,2}[\s\-\/\.]\d{4})`,
	)
	calExpiryDate = textmatch.Chain(
		`(?:Vencimiento|Válido hasta|Expiration|Valid until|VENCIMIENTO)[\s:]*(\d{1,2}[\s\-\/\.]\d{1,2}[\s\-\/\.]\d{4})`,
		`(?:Próxima calibración|Next calibration)[\s:]*(\d{1,2}[\s\-\/\.]\d{1,2}[\s\-\/\.]\d{4})`,
	)
	calInitialPressure = textmatch.Chain(
		`(?:Presión|Pressure)[\s]inicial[\s:]*([0-9.]+)`,
		`Initial[\s]Pressure[\s:]*([0-9.]+)`,
		`P\.?[\s]inicial[\s:]*([0-9.]+)`,
	)
	calFinalPressure = textmatch.Chain(
		`(?:Presión|Pressure)[\s]final[\s:]*([0-9.]+)`,
		`Final[\s]Pressure[\s:]*([0-9.]+)`,
		`P\.?[\s]final[\s:]*([0-9.]+)`,
	)
	calTemperature = textmatch.Chain(
		`(?:Temperatura|Temperature)[\s:]*([0-9\.\,]+)`,
		`T\.?[\s:]*([0-9\.\,]+)[\s]*(?:°?C|°?F)?`,
	)
	calLaboratory = textmatch.Chain(
		`(?:Laboratorio|Laboratory|Lab)[\s:]*([^\n]+)`,
		`Acreditado por[\s:]*([^\n]+)`,
	)
	calTechnician = textmatch.Chain(
		`(?:Técnico|Technician|Responsable|Signed by)[\s:]*(?:de)?[\s]*([A-Za-záéíóúñ\s]+)`,
		`Firma[\s:]*([A-Za-záéíóúñ\s]+)`,
	)
	calPressureUnit = textmatch.Chain(
		`(?:Presión[\s]inicial)[\s:]*[0-9.]+[\s]*(PSI|bar|atm|kPa)`,
		`Unidad[\s:]*([A-Z]+)`,
	)
)

// ExtractCalibration populates the field bag for a calibration certificate.
func ExtractCalibration(text string) FieldSet {
	return FieldSet{
		DocumentType:    constants.DocTypeCalibration,
		DocumentNumber:  textmatch.FindFirst(text, calDocumentNumber),
		SerialNumber:    textmatch.FindFirst(text, calSerialNumber),
		IssueDate:       textmatch.FindFirst(text, calIssueDate),
		ExpiryDate:      textmatch.FindFirst(text, calExpiryDate),
		InitialPressure: textmatch.FindFirst(text, calInitialPressure),
		FinalPressure:   textmatch.FindFirst(text, calFinalPressure),
		Temperature:     textmatch.FindFirst(text, calTemperature),
		Result:          ExtractResult(text),
		Laboratory:      textmatch.FindFirst(text, calLaboratory),
		Technician:      textmatch.FindFirst(text, calTechnician),
		PressureUnit:    textmatch.FindFirst(text, calPressureUnit),
	}
}
