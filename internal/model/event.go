package model

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidEvent is returned when an event has an unknown type/mode or a bad year window.
var ErrInvalidEvent = errors.New("invalid event")

// EventType names the parameter an event perturbs.
// Keep these values stable; they are exchanged with the event editor.
type EventType string

const (
	EventCapacity     EventType = "capacity"
	EventPricePeak    EventType = "price_peak"
	EventPriceOffPeak EventType = "price_offpeak"
	EventExpenseOpex  EventType = "expense_opex"
	EventExpenseFuel  EventType = "expense_fuel"
)

// EventTypes lists every supported type in display order.
var EventTypes = []EventType{
	EventCapacity,
	EventPricePeak,
	EventPriceOffPeak,
	EventExpenseOpex,
	EventExpenseFuel,
}

func (t EventType) Valid() bool {
	switch t {
	case EventCapacity, EventPricePeak, EventPriceOffPeak, EventExpenseOpex, EventExpenseFuel:
		return true
	default:
		return false
	}
}

// EventMode is how an event's Value combines with the current parameter value.
type EventMode string

const (
	ModePercent  EventMode = "percent"  // p * (1 + v/100)
	ModeAbsolute EventMode = "absolute" // v
	ModeDelta    EventMode = "delta"    // p + v
)

var EventModes = []EventMode{ModePercent, ModeAbsolute, ModeDelta}

func (m EventMode) Valid() bool {
	switch m {
	case ModePercent, ModeAbsolute, ModeDelta:
		return true
	default:
		return false
	}
}

// Apply combines v into current according to the mode.
func (m EventMode) Apply(current, v float64) float64 {
	switch m {
	case ModePercent:
		return current * (1 + v/100)
	case ModeAbsolute:
		return v
	case ModeDelta:
		return current + v
	default:
		return current
	}
}

// Event is a time-windowed perturbation of one base parameter.
// StartYear and EndYear are inclusive.
type Event struct {
	ID          string    `json:"id" yaml:"id"`
	Type        EventType `json:"type" yaml:"type"`
	Mode        EventMode `json:"mode" yaml:"mode"`
	StartYear   int       `json:"start_year" yaml:"start_year"`
	EndYear     int       `json:"end_year" yaml:"end_year"`
	Value       float64   `json:"value" yaml:"value"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
}

// DefaultEvent mirrors the editor's "add event" template: a 10% capacity cut in years 11-20.
func DefaultEvent(id string) Event {
	return Event{
		ID:          id,
		Type:        EventCapacity,
		Mode:        ModePercent,
		StartYear:   11,
		EndYear:     20,
		Value:       -10,
		Description: "New Event",
	}
}

// Validate checks the event against a project horizon of lifeYears operating years.
func (e Event) Validate(lifeYears int) error {
	if !e.Type.Valid() {
		return fmt.Errorf("%w %q: unknown type %q", ErrInvalidEvent, e.ID, e.Type)
	}
	if !e.Mode.Valid() {
		return fmt.Errorf("%w %q: unknown mode %q", ErrInvalidEvent, e.ID, e.Mode)
	}
	if e.StartYear > e.EndYear {
		return fmt.Errorf("%w %q: start_year %d > end_year %d", ErrInvalidEvent, e.ID, e.StartYear, e.EndYear)
	}
	if e.StartYear < 0 || e.EndYear > lifeYears {
		return fmt.Errorf("%w %q: years [%d, %d] outside [0, %d]", ErrInvalidEvent, e.ID, e.StartYear, e.EndYear, lifeYears)
	}
	if math.IsNaN(e.Value) || math.IsInf(e.Value, 0) {
		return fmt.Errorf("%w %q: value must be finite", ErrInvalidEvent, e.ID)
	}
	return nil
}

// Covers reports whether year t falls inside the event window.
func (e Event) Covers(t int) bool {
	return t >= e.StartYear && t <= e.EndYear
}

// ValidateEvents validates every event, failing on the first bad one.
func ValidateEvents(events []Event, lifeYears int) error {
	for _, e := range events {
		if err := e.Validate(lifeYears); err != nil {
			return err
		}
	}
	return nil
}

// CloneEvents returns an independent copy of events.
func CloneEvents(events []Event) []Event {
	if events == nil {
		return nil
	}
	return append([]Event(nil), events...)
}
