package models

import "time"

// State is the closed set of keywords a caller may filter booking
// listings by. Anything outside this set is rejected at parse time,
// never silently treated as StateAll.
type State int

const (
	StateAll State = iota
	StateCurrent
	StatePast
	StateFuture
	StateWaiting
	StateRejected
)

var stateNames = map[string]State{
	"ALL":      StateAll,
	"CURRENT":  StateCurrent,
	"PAST":     StatePast,
	"FUTURE":   StateFuture,
	"WAITING":  StateWaiting,
	"REJECTED": StateRejected,
}

// ParseState resolves a state keyword. ok is false for any keyword
// outside the recognized vocabulary.
func ParseState(keyword string) (State, bool) {
	s, ok := stateNames[keyword]
	return s, ok
}

func (s State) String() string {
	switch s {
	case StateAll:
		return "ALL"
	case StateCurrent:
		return "CURRENT"
	case StatePast:
		return "PAST"
	case StateFuture:
		return "FUTURE"
	case StateWaiting:
		return "WAITING"
	case StateRejected:
		return "REJECTED"
	}
	return "UNKNOWN"
}

// Matches reports whether the booking falls under the filter relative
// to the reference instant. Temporal filters: CURRENT is start <= now < end,
// PAST is end < now, FUTURE is start > now.
func (s State) Matches(b *Booking, now time.Time) bool {
	switch s {
	case StateAll:
		return true
	case StateCurrent:
		return !b.Start.After(now) && b.End.After(now)
	case StatePast:
		return b.End.Before(now)
	case StateFuture:
		return b.Start.After(now)
	case StateWaiting:
		return b.Status == StatusWaiting
	case StateRejected:
		return b.Status == StatusRejected
	}
	return false
}
