package fields

import (
	"github.com/valvetrack/valve-docs/constants"
	"github.com/valvetrack/valve-docs/internal/textmatch"
)

// The result scan is two-staged on purpose: positive phrases first, then
// negative. A single alternation would let "No cumple" satisfy a pattern
// looking for "cumple" and report a failed calibration as approved.
var (
	resultPositive = textmatch.Chain(
		`(?:Resultado|Result)[\s:]*(?:Sí|Aprobado|Conforme|Passed|OK|PASS)`,
		// Anchored so the "cumple" inside "No cumple" never reads as a pass.
		`(?:^|:[\s]*)Cumple`,
		`(?:Meets|Within[\s]tolerance)`,
		`Estado[\s:]*Aceptable`,
	)
	resultNegative = textmatch.Chain(
		`(?:Resultado|Result)[\s:]*(?:No|Rechazado|No[\s]conforme|Failed|FAIL)`,
		`(?:No[\s]cumple|Does[\s]not[\s]meet|Out[\s]of[\s]tolerance)`,
		`Estado[\s:]*Inaceptable`,
	)
)

// ExtractResult returns APROBADO, RECHAZADO, or "" when the document states
// no verdict.
func ExtractResult(text string) string {
	if textmatch.MatchesAny(text, resultPositive) {
		return constants.ResultApproved
	}
	if textmatch.MatchesAny(text, resultNegative) {
		return constants.ResultRejected
	}
	return ""
}
