package bus

import "time"

// Event represents a domain event published on the bus.
type Event struct {
	Kind      string
	Timestamp time.Time
	Payload   any
}

// Event kinds published by the daemon. Subscribers filter by namespace
// prefix, e.g. "lead." receives every lead mutation.
const (
	KindLeadCreated    = "lead.created"
	KindLeadUpdated    = "lead.updated"
	KindLeadDeleted    = "lead.deleted"
	KindLeadResearched = "lead.researched"
	KindLeadLetter     = "lead.letter_generated"
	KindImportFinished = "import.finished"
	KindSeedFinished   = "import.seeded"
)

// LeadRef is the payload for lead.* events.
type LeadRef struct {
	ID     int64  `json:"id"`
	Status string `json:"status,omitempty"`
}

// ImportResult is the payload for import.* events.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}
