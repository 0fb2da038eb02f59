package core

import "fmt"

// EventType represents the kind of change applied to a principal's notes.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a successful write.
// Index is the position the write targeted at the time it was applied.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Principal Principal `json:"principal"`
	Index     uint64    `json:"index"`
	Timestamp int64     `json:"timestamp"` // Unix timestamp
}

// String implements fmt.Stringer (and lifecycle.Event).
func (e Event) String() string {
	return fmt.Sprintf("%s %s[%d]", e.Type, e.Principal, e.Index)
}
