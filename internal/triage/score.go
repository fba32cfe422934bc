// Package triage implements the deterministic scoring and resolution logic
// that turns a structured extraction plus the original report text into a
// confidence value and a lifecycle decision.
package triage

import (
	"regexp"
	"strings"

	"github.com/spec-kit/triage-service/internal/domain"
)

// Support levels returned by FieldScore.
const (
	scoreUnknown  = 0.3
	scoreInferred = 0.7
	scoreVerbatim = 1.0
)

// FieldScore rates how well a single extracted field value is supported by
// the source text. An empty or "unknown" value scores 0.3; a value present
// verbatim (case-insensitive, whole-word) scores 1.0; anything else is
// treated as inferred and scores 0.7.
func FieldScore(fieldValue, sourceText string) float64 {
	value := strings.ToLower(strings.TrimSpace(fieldValue))
	if value == "" || value == domain.ValueUnknown {
		return scoreUnknown
	}
	pattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(value) + `\b`)
	if pattern.MatchString(strings.ToLower(sourceText)) {
		return scoreVerbatim
	}
	return scoreInferred
}
