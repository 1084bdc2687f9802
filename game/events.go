package game

import "fmt"

type EventKind int

const (
	EventWallBounce EventKind = iota
	EventReset
	EventBounce
	EventPowerBounce
)

var eventNames = [...]string{
	EventWallBounce:  "wallBounce",
	EventReset:       "reset",
	EventBounce:      "bounce",
	EventPowerBounce: "powerBounce",
}

func (k EventKind) String() string {
	if k >= 0 && int(k) < len(eventNames) {
		return eventNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *EventKind) UnmarshalText(text []byte) error {
	for i, name := range eventNames {
		if name == string(text) {
			*k = EventKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown event kind %q", text)
}

// Event is a physics notification produced during a tick. Racket is the
// index of the racket involved, or -1.
type Event struct {
	Kind   EventKind `json:"kind"`
	Tick   int       `json:"tick"`
	Racket int       `json:"racket"`
}
