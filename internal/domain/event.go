package domain

import "time"

// Event is one earthquake as shown on the screen. Values are immutable once
// built by the parse step.
type Event struct {
	Title             string `json:"title"`
	NumOfPeople       string `json:"felt"` // people who reported feeling it
	PerceivedStrength string `json:"cdi"`  // community-reported intensity
}

// NewEvent builds an Event from the three feature properties.
func NewEvent(title, numOfPeople, perceivedStrength string) Event {
	return Event{
		Title:             title,
		NumOfPeople:       numOfPeople,
		PerceivedStrength: perceivedStrength,
	}
}

// Result is the outcome of one fetch: an Event on success, or the reason the
// fetch produced nothing.
type Result struct {
	Event     Event
	Err       error
	SettledAt time.Time
}

// Succeeded returns a Result carrying ev.
func Succeeded(ev Event) Result {
	return Result{Event: ev, SettledAt: clock.Now()}
}

// Failed returns a Result carrying err.
func Failed(err error) Result {
	return Result{Err: err, SettledAt: clock.Now()}
}

// OK reports whether the fetch produced an Event.
func (r Result) OK() bool {
	return r.Err == nil
}
