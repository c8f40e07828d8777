// Package dates converts free-form extracted date strings into calendar dates.
package dates

import (
	"log/slog"
	"strings"
	"time"
)

// layouts are tried in priority order: day-first with the separators seen on
// Spanish-language certificates, ISO order, two-digit-year variants, then a
// month-first fallback for US-style documents. Day-first must come before
// month-first so 16/02/2026 resolves to February 16.
var layouts = []string{
	"2/1/2006",
	"2-1-2006",
	"2.1.2006",
	"2 1 2006",
	"2006-1-2",
	"2/1/06",
	"2-1-06",
	"1/2/2006",
}

// Normalize parses s against the known layouts and returns the first date
// that parses. The second return is false when nothing matched; that outcome
// is recoverable and only logged, never an error, so a document with a
// mangled date still yields a usable record.
func Normalize(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	slog.Warn("unparseable date string", "value", s)
	return time.Time{}, false
}

// NormalizePtr is Normalize for callers that persist optional dates.
func NormalizePtr(s string) *time.Time {
	if t, ok := Normalize(s); ok {
		return &t
	}
	return nil
}
