package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldScore(t *testing.T) {
	const text = "Server crash on login, critical issue with auth system"

	cases := []struct {
		name  string
		value string
		want  float64
	}{
		{"empty value", "", 0.3},
		{"whitespace value", "   ", 0.3},
		{"unknown sentinel", "unknown", 0.3},
		{"unknown sentinel mixed case", "UnKnOwN", 0.3},
		{"verbatim single word", "crash", 1.0},
		{"verbatim mixed case", "CRASH", 1.0},
		{"verbatim multi word", "auth system", 1.0},
		{"inferred value", "database", 0.7},
		{"substring is not a whole word", "cras", 0.7},
		{"regex metacharacters are literal", "auth (system)", 0.7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, FieldScore(tc.value, text), 0.0001)
		})
	}
}

func TestFieldScoreWordBoundary(t *testing.T) {
	// "crash" inside "crashes" has no trailing word boundary, so it does
	// not count as direct textual evidence.
	assert.InDelta(t, 0.7, FieldScore("crash", "server crashes on login"), 0.0001)
	assert.InDelta(t, 1.0, FieldScore("crashes", "server crashes on login"), 0.0001)
}
