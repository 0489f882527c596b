package enums

import "fmt"

// EventContext describes whether an event type applies per game or per round.
type EventContext string

const (
	EventContextGame  EventContext = "game"
	EventContextRound EventContext = "round"
)

var validEventContexts = []EventContext{
	EventContextGame,
	EventContextRound,
}

// String implements fmt.Stringer.
func (c EventContext) String() string {
	return string(c)
}

// IsValid reports whether the context is recognized.
func (c EventContext) IsValid() bool {
	for _, candidate := range validEventContexts {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseEventContext converts a raw string into an EventContext.
func ParseEventContext(value string) (EventContext, error) {
	for _, candidate := range validEventContexts {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid event context %q", value)
}
