package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/triage-service/internal/domain"
)

func TestDecideThresholdBoundary(t *testing.T) {
	cases := []struct {
		confidence  int
		wantStatus  domain.TicketStatus
		wantFixCall bool
	}{
		{40, domain.TicketStatusNeedReview, false},
		{84, domain.TicketStatusNeedReview, false},
		{85, domain.TicketStatusClosed, true},
		{95, domain.TicketStatusClosed, true},
	}
	for _, tc := range cases {
		decision := Decide(tc.confidence)
		assert.Equal(t, tc.wantStatus, decision.Status, "confidence %d", tc.confidence)
		assert.Equal(t, tc.wantFixCall, decision.GenerateFix, "confidence %d", tc.confidence)
	}
}
