package domain

import "time"

// ResolutionEntry is an immutable audit record of a human-approved manual
// closure. Entries are append-only; nothing in the system updates or
// removes them.
type ResolutionEntry struct {
	Seq             int64
	TicketNo        string
	Resolution      string
	ApprovedByHuman bool
	CreatedAt       time.Time
}
