package event_bus

import "time"

// StatusRecorded is published after an aggregation run persisted a completion
// verdict for the current logical day.
type StatusRecorded struct {
	Date time.Time
	// DeckID is -1 when the verdict covers all decks.
	DeckID       int64
	Completed    bool
	TotalPending int
}
