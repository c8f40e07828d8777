// Package textmatch evaluates ordered regex chains against extracted text.
//
// Chains are listed from the most specific label to the loosest generic
// fallback, so list order encodes confidence: the first pattern that yields a
// non-empty capture wins and the rest are never evaluated.
package textmatch

import (
	"regexp"
	"strings"
)

// Chain compiles patterns case-insensitively in multiline mode, preserving
// order. Intended for package-level variables; panics on a bad pattern.
func Chain(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile("(?im)"+p))
	}
	return compiled
}

// FindFirst returns the first pattern's first capture group that is non-empty
// after trimming. A pattern that matches but captures only whitespace does not
// stop the scan; the next pattern in the chain is still tried.
func FindFirst(text string, chain []*regexp.Regexp) string {
	for _, re := range chain {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		// Patterns without a capture group match on presence alone.
		if len(m) < 2 {
			return strings.TrimSpace(m[0])
		}
		if v := strings.TrimSpace(m[1]); v != "" {
			return v
		}
	}
	return ""
}

// FindAll collects up to limit distinct non-empty trimmed captures of a single
// pattern, in order of first appearance. Used for fields that repeat, such as
// materials consumed during a service.
func FindAll(text string, re *regexp.Regexp, limit int) []string {
	if limit <= 0 {
		limit = 5
	}
	matches := re.FindAllStringSubmatch(text, -1)
	out := make([]string, 0, limit)
	seen := make(map[string]struct{}, limit)
	for _, m := range matches {
		if len(m) < 2 {
			continue
		}
		v := strings.TrimSpace(m[1])
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
		if len(out) == limit {
			break
		}
	}
	return out
}

// MatchesAny reports whether any pattern in the chain matches at all,
// regardless of captures. Used by presence-only scans such as the pass/fail
// result detection.
func MatchesAny(text string, chain []*regexp.Regexp) bool {
	for _, re := range chain {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
