package data

import (
	"encoding/json"
	"fmt"
	"os"

	"project-feasibility/internal/model"

	"github.com/google/uuid"
)

// eventsFile accepts either a bare JSON array of events or {"events": [...]}.
type eventsFile struct {
	Events []model.Event `json:"events"`
}

// LoadEventsJSON reads an event list, preserving file order.
func LoadEventsJSON(path string) ([]model.Event, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var events []model.Event
	if err := json.Unmarshal(raw, &events); err == nil {
		return events, nil
	}
	var wrapped eventsFile
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to parse events file %s: %w", path, err)
	}
	return wrapped.Events, nil
}

// SaveEventsJSON writes events as an indented JSON array.
func SaveEventsJSON(path string, events []model.Event) error {
	if events == nil {
		events = []model.Event{}
	}
	raw, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal events: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write events file: %w", err)
	}
	return nil
}

// WithIDs returns a copy of events where every event without an id gets a fresh UUID.
func WithIDs(events []model.Event) []model.Event {
	out := model.CloneEvents(events)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = uuid.NewString()
		}
	}
	return out
}
