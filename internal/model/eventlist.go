package model

import "fmt"

// EventList is an ordered, caller-owned set of events bound to a project horizon.
// Every edit returns a new list; the receiver is never mutated, so a list that has been
// handed to a projection can keep being edited without affecting it.
type EventList struct {
	lifeYears int
	events    []Event
}

// NewEventList builds a list for a horizon of lifeYears, validating each event.
func NewEventList(lifeYears int, events ...Event) (EventList, error) {
	if err := ValidateEvents(events, lifeYears); err != nil {
		return EventList{}, err
	}
	return EventList{lifeYears: lifeYears, events: CloneEvents(events)}, nil
}

func (l EventList) Len() int { return len(l.events) }

func (l EventList) LifeYears() int { return l.lifeYears }

// Events returns a copy of the events in order.
func (l EventList) Events() []Event { return CloneEvents(l.events) }

// Get returns the event with the given id.
func (l EventList) Get(id string) (Event, bool) {
	if i := l.index(id); i >= 0 {
		return l.events[i], true
	}
	return Event{}, false
}

// Add appends e. Ids are caller-assigned and not checked for uniqueness.
func (l EventList) Add(e Event) (EventList, error) {
	if err := e.Validate(l.lifeYears); err != nil {
		return l, err
	}
	out := l.clone()
	out.events = append(out.events, e)
	return out, nil
}

// Remove drops every event with the given id.
func (l EventList) Remove(id string) EventList {
	out := EventList{lifeYears: l.lifeYears, events: make([]Event, 0, len(l.events))}
	for _, e := range l.events {
		if e.ID != id {
			out.events = append(out.events, e)
		}
	}
	return out
}

func (l EventList) SetType(id string, t EventType) (EventList, error) {
	return l.update(id, func(e *Event) { e.Type = t })
}

func (l EventList) SetMode(id string, m EventMode) (EventList, error) {
	return l.update(id, func(e *Event) { e.Mode = m })
}

// SetWindow moves both ends at once so the list never holds start > end.
func (l EventList) SetWindow(id string, startYear, endYear int) (EventList, error) {
	return l.update(id, func(e *Event) {
		e.StartYear = startYear
		e.EndYear = endYear
	})
}

func (l EventList) SetValue(id string, v float64) (EventList, error) {
	return l.update(id, func(e *Event) { e.Value = v })
}

func (l EventList) SetDescription(id, desc string) (EventList, error) {
	return l.update(id, func(e *Event) { e.Description = desc })
}

func (l EventList) update(id string, fn func(*Event)) (EventList, error) {
	i := l.index(id)
	if i < 0 {
		return l, fmt.Errorf("%w: no event with id %q", ErrInvalidEvent, id)
	}
	e := l.events[i]
	fn(&e)
	if err := e.Validate(l.lifeYears); err != nil {
		return l, err
	}
	out := l.clone()
	out.events[i] = e
	return out, nil
}

func (l EventList) index(id string) int {
	for i, e := range l.events {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (l EventList) clone() EventList {
	return EventList{lifeYears: l.lifeYears, events: CloneEvents(l.events)}
}
