package bridge

import "github.com/dop251/goja"

// EventType identifies a bridge lifecycle notification.
type EventType uint8

const (
	EventBuilt      EventType = iota // a Go implementation was wrapped in a new JS object
	EventComposed                    // a parent's methods were merged into a bridge object
	EventRelabelled                  // a foreign-backed value was converted without wrapping
)

func (t EventType) String() string {
	switch t {
	case EventBuilt:
		return "built"
	case EventComposed:
		return "composed"
	case EventRelabelled:
		return "relabelled"
	default:
		return "unknown"
	}
}

// Event describes one bridge lifecycle notification.
type Event struct {
	Object     *goja.Object
	Capability string
	Type       EventType
}

// Observer receives notifications about bridge objects.
type Observer interface {
	OnBridgeEvent(Event)
}
