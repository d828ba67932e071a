package domain

import (
	"fmt"
	"time"
)

// RootMessage is returned by the JSON root endpoint
const RootMessage = "Smart Traffic Management API is running 🚦"

// Label is a congestion label for a junction
type Label string

const (
	LabelLow      Label = "Low"
	LabelModerate Label = "Moderate"
	LabelHigh     Label = "High"
	LabelSevere   Label = "Severe"
)

// Labels returns the closed set of congestion labels
func Labels() []Label {
	return []Label{LabelLow, LabelModerate, LabelHigh, LabelSevere}
}

// Valid reports whether l belongs to the closed label set
func (l Label) Valid() bool {
	switch l {
	case LabelLow, LabelModerate, LabelHigh, LabelSevere:
		return true
	}
	return false
}

// Snapshot maps junction identifiers to their congestion label.
// A snapshot is built for a single response and never reused.
type Snapshot map[string]Label

// JunctionID returns the identifier of the n-th junction
func JunctionID(n int) string {
	return fmt.Sprintf("junction_%d", n)
}

// EventType identifies feed events
type EventType string

const (
	EventTypeSnapshot EventType = "traffic.snapshot"
)

// Event is published on the feed topic
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Variant   string    `json:"variant"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
}
