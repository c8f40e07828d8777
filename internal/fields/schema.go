package fields

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/valvetrack/valve-docs/constants"
)

// BuildDocumentJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map describing a well-formed field bag for the given document type.
// Validation is advisory: a failing record is flagged for review, never
// rejected.
func BuildDocumentJSONSchema(docType constants.DocumentType) map[string]any {
	props := map[string]any{
		"tipo_documento":      map[string]any{"type": "string"},
		"numero_documento":    map[string]any{"type": "string", "minLength": 1},
		"numero_serie":        map[string]any{"type": "string", "minLength": 1},
		"tecnico_responsable": map[string]any{"type": "string"},
	}
	required := []string{"tipo_documento", "numero_documento", "numero_serie"}

	switch docType {
	case constants.DocTypeMaintenance:
		props["fecha_mantenimiento"] = dateProp()
		props["tipo_mantenimiento"] = map[string]any{"type": "string"}
		props["descripcion_trabajos"] = map[string]any{"type": "string"}
		props["estado_valvula"] = map[string]any{"type": "string"}
		props["observaciones"] = map[string]any{"type": "string"}
		props["proximo_mantenimiento"] = dateProp()
		props["materiales_utilizados"] = map[string]any{"type": "string"}
		props["duracion"] = map[string]any{"type": "string"}
		required = append(required, "fecha_mantenimiento")
	default:
		props["fecha_emision"] = dateProp()
		props["fecha_vencimiento"] = dateProp()
		props["presion_inicial"] = decimalProp()
		props["presion_final"] = decimalProp()
		props["temperatura"] = map[string]any{"type": "string"}
		props["resultado"] = map[string]any{
			"type": "string",
			"enum": []string{constants.ResultApproved, constants.ResultRejected},
		}
		props["laboratorio"] = map[string]any{"type": "string"}
		props["unidad_presion"] = map[string]any{"type": "string"}
		required = append(required, "fecha_emision")
	}

	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}

func dateProp() map[string]any {
	// Raw extracted dates, before normalization: digits with the accepted
	// separators.
	return map[string]any{"type": "string", "pattern": `^[\d\s\-\/\.]+$`}
}

func decimalProp() map[string]any {
	return map[string]any{"type": "string", "pattern": `^\d+(\.\d+)?$`}
}

// ValidateAgainstSchema validates a marshaled field bag against schemaMap.
func ValidateAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("field bag does not match schema: %w", err)
	}
	return nil
}

// Review checks a field bag against its type schema and reports whether the
// record needs manual review, with the reason.
func Review(fs FieldSet) (bool, string) {
	data, err := json.Marshal(fs)
	if err != nil {
		return true, err.Error()
	}
	if err := ValidateAgainstSchema(BuildDocumentJSONSchema(fs.DocumentType), data); err != nil {
		return true, err.Error()
	}
	return false, ""
}
