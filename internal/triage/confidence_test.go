package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfidenceFullSupportIsCappedAtCeiling(t *testing.T) {
	const desc = "Server crash on login, critical issue with auth system"

	got := Confidence("crash", "critical", "auth system", desc)
	assert.Equal(t, 95, got, "perfect triple match clamps to the ceiling")
}

func TestConfidenceAllUnknownClampsToFloor(t *testing.T) {
	got := Confidence("unknown", "unknown", "unknown", "printer makes a weird noise")
	assert.Equal(t, 40, got, "raw 30 clamps to the floor")
}

func TestConfidenceMixedSupport(t *testing.T) {
	const desc = "Server crash on login, critical issue with auth system"

	// crash and critical verbatim, affected system inferred: (1+1+0.7)/3*100.
	got := Confidence("crash", "critical", "database", desc)
	assert.Equal(t, 90, got)

	// one verbatim, one inferred, one unknown: (1+0.7+0.3)/3*100.
	got = Confidence("crash", "unknown", "database", desc)
	assert.Equal(t, 67, got)
}

func TestConfidenceRedundancyPenalty(t *testing.T) {
	const desc = "payment gateway timeout, critical failure in payment gateway"

	// All three fields verbatim would score 95, but identical issue type
	// and affected system cap the result at 70.
	got := Confidence("payment gateway", "critical", "payment gateway", desc)
	assert.Equal(t, 70, got)

	// Case differences do not defeat the cap.
	got = Confidence("Payment Gateway", "critical", "payment gateway", desc)
	assert.Equal(t, 70, got)
}

func TestConfidenceAlwaysInRange(t *testing.T) {
	values := []string{"", "unknown", "crash", "auth system", "database", "slow"}
	descriptions := []string{
		"",
		"Server crash on login, critical issue with auth system",
		"everything is slow today",
	}
	for _, issue := range values {
		for _, sev := range values {
			for _, system := range values {
				for _, desc := range descriptions {
					got := Confidence(issue, sev, system, desc)
					assert.GreaterOrEqual(t, got, ConfidenceFloor)
					assert.LessOrEqual(t, got, ConfidenceCeiling)
				}
			}
		}
	}
}

func TestConfidenceIsDeterministic(t *testing.T) {
	const desc = "Server crash on login, critical issue with auth system"

	first := Confidence("crash", "critical", "auth system", desc)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, Confidence("crash", "critical", "auth system", desc))
	}
}
