// Package classify decides whether extracted document text is a calibration
// certificate, a maintenance report, or neither.
package classify

import (
	"strings"

	"github.com/valvetrack/valve-docs/constants"
)

// Classification carries the dispatch outcome plus the detection signals that
// produced it, so the tie-break stays auditable.
type Classification struct {
	Type                constants.DocumentType
	CalibrationDetected bool
	MaintenanceDetected bool
	CalibrationTieScore int
	MaintenanceTieScore int
}

// detect reports whether at least constants.MinKeywordHits distinct keywords
// from the set appear in the lower-cased text.
func detect(lower string, keywords []string) bool {
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			hits++
			if hits >= constants.MinKeywordHits {
				return true
			}
		}
	}
	return false
}

// tieScore sums raw occurrence counts (not distinct keywords) of the
// type-defining stems.
func tieScore(lower string, stems []string) int {
	score := 0
	for _, s := range stems {
		score += strings.Count(lower, s)
	}
	return score
}

// Classify runs both detectors against the text and resolves the winner.
// Phase one detects each type independently; phase two scores only when both
// fire. Calibration takes exact-tie precedence. When neither detects, the
// type is Unknown and the caller falls back to the calibration extractor so a
// field bag is always produced.
func Classify(text string) Classification {
	lower := strings.ToLower(text)

	c := Classification{
		CalibrationDetected: detect(lower, constants.CalibrationKeywords),
		MaintenanceDetected: detect(lower, constants.MaintenanceKeywords),
	}

	switch {
	case c.CalibrationDetected && c.MaintenanceDetected:
		c.CalibrationTieScore = tieScore(lower, constants.CalibrationTieBreak)
		c.MaintenanceTieScore = tieScore(lower, constants.MaintenanceTieBreak)
		if c.CalibrationTieScore >= c.MaintenanceTieScore {
			c.Type = constants.DocTypeCalibration
		} else {
			c.Type = constants.DocTypeMaintenance
		}
	case c.CalibrationDetected:
		c.Type = constants.DocTypeCalibration
	case c.MaintenanceDetected:
		c.Type = constants.DocTypeMaintenance
	default:
		c.Type = constants.DocTypeUnknown
	}
	return c
}
