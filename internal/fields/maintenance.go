package fields

import (
	"strings"

	"github.com/valvetrack/valve-docs/constants"
	"github.com/valvetrack/valve-docs/internal/textmatch"
)

// Ordered chains for maintenance reports.
var (
	mntDocumentNumber = textmatch.Chain(
		`(?:Informe|Reporte|Report)[\s:]*([A-Z0-9\-\/]+)`,
		`(?:N|Nº|No)\.?[\s:]*([A-Z0-9\-\/]+)`,
		`Número[\s:]*([A-Z0-9\-\/]+)`,
	)
	mntSerialNumber = textmatch.Chain(
		`(?:Número[\s]de[\s]Serie|Serial[\s]Number|S/N|SN)[\s:]+([A-Z0-9\-]+)`,
		`(?:Serie)[\s:]*([A-Z0-9\-]+)`,
		`(?:Válvula)[\s:]*([A-Z0-9\-]+)`,
	)
	mntServiceDate = textmatch.Chain(
		`(?:Fecha|Mantenimiento|Date|Service[\s]Date)[\s:]*(\d{1,2}[\s\-\/]\d{1,2}[\s\-\/]\d{4})`,
		`(\d{4}\-\d{2}\-\d{2})`,
	)
	mntMaintenanceType = textmatch.Chain(
		`(?:Tipo|Tipo[\s]de[\s]Mantenimiento)[\s:]*([^\n]+)`,
		`(Preventivo|Correctivo|Inspección|Overhaul)`,
		`(?:Preventive|Corrective|Maintenance[\s]Type)[\s:]*([^\n]+)`,
	)
	mntWorkDescription = textmatch.Chain(
		`(?:Trabajos|Descripción|Work[\s]Done|Activities)[\s:]*([^\n]+)`,
		`(?:Se realizaron|Performed)[\s:]*([^\n]+)`,
	)
	mntValveCondition = textmatch.Chain(
		`(?:Estado|Condition)[\s:]*([^\n]+)`,
		`(Bueno|Defectuoso|Deteriorado|Good|Bad|Deteriorated)`,
	)
	mntObservations = textmatch.Chain(
		`(?:Observaciones|Notas|Notes|Remarks)[\s:]*([^\n]+)`,
		`(?:Comentarios)[\s:]*([^\n]+)`,
	)
	mntNextServiceDate = textmatch.Chain(
		`(?:Próximo|Próxima|Next)[\s](?:Mantenimiento|Maintenance)[\s:]*(\d{1,2}[\s\-\/]\d{1,2}[\s\-\/]\d{4})`,
		`(?:Programado para)[\s:]*(\d{1,2}[\s\-\/]\d{1,2}[\s\-\/]\d{4})`,
	)
	mntTechnician = textmatch.Chain(
		`(?:Técnico|Responsable|Technician|Executed by)[\s:]*([A-Za-záéíóúñ\s]+)`,
		`Realizado por[\s:]*([A-Za-záéíóúñ\s]+)`,
		`Firma[\s:]*([A-Za-záéíóúñ\s]+)`,
	)
	mntMaterials = textmatch.Chain(
		`(?:Material|Componente)[\s:]*([^\n]+)`,
	)[0]
	mntDuration = textmatch.Chain(
		`(?:Duración|Duration|Tiempo)[\s:]*([0-9.]+[\s](?:horas|hours))`,
		`(?:Duración)[\s:]*([^\n]+)`,
	)
)

// materialsLimit caps the multi-match materials scan.
const materialsLimit = 5

// ExtractMaintenance populates the field bag for a maintenance report.
func ExtractMaintenance(text string) FieldSet {
	return FieldSet{
		DocumentType:    constants.DocTypeMaintenance,
		DocumentNumber:  textmatch.FindFirst(text, mntDocumentNumber),
		SerialNumber:    textmatch.FindFirst(text, mntSerialNumber),
		ServiceDate:     textmatch.FindFirst(text, mntServiceDate),
		MaintenanceType: textmatch.FindFirst(text, mntMaintenanceType),
		WorkDescription: textmatch.FindFirst(text, mntWorkDescription),
		ValveCondition:  textmatch.FindFirst(text, mntValveCondition),
		Observations:    textmatch.FindFirst(text, mntObservations),
		NextServiceDate: textmatch.FindFirst(text, mntNextServiceDate),
		Technician:      textmatch.FindFirst(text, mntTechnician),
		MaterialsUsed:   strings.Join(textmatch.FindAll(text, mntMaterials, materialsLimit), " "),
		Duration:        textmatch.FindFirst(text, mntDuration),
	}
}
