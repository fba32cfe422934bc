package triage

import (
	"math"
	"strings"
)

// Calibration bounds. The field scores are heuristic, so the calculator
// never reports near-zero confidence and never reports full certainty.
const (
	ConfidenceFloor   = 40
	ConfidenceCeiling = 95

	// redundancyCap limits confidence when issue type and affected system
	// are the same string: identical fields signal a low-information
	// extraction, not corroborating evidence.
	redundancyCap = 70
)

// Confidence combines the three field scores into one calibrated integer
// confidence in [ConfidenceFloor, ConfidenceCeiling]. Pure and
// deterministic: identical inputs always yield the identical output.
func Confidence(issueType, severity, affectedSystem, description string) int {
	raw := (FieldScore(issueType, description) +
		FieldScore(severity, description) +
		FieldScore(affectedSystem, description)) / 3 * 100

	if issueType != "" && affectedSystem != "" && strings.EqualFold(issueType, affectedSystem) {
		raw = math.Min(raw, redundancyCap)
	}

	if raw < ConfidenceFloor {
		raw = ConfidenceFloor
	}
	if raw > ConfidenceCeiling {
		raw = ConfidenceCeiling
	}
	return int(math.Round(raw))
}
