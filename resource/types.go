package resource

// Handle identifies one registration in a table.
// Handle 0 is reserved and always invalid.
type Handle uint32

// EventType identifies a registration lifecycle notification.
type EventType uint8

const (
	EventCreated EventType = iota
	EventDropped
)

func (t EventType) String() string {
	switch t {
	case EventCreated:
		return "created"
	case EventDropped:
		return "dropped"
	default:
		return "unknown"
	}
}

// Event represents a registration lifecycle event.
type Event struct {
	Value  any
	Kind   string
	Handle Handle
	Type   EventType
}

// Observer receives notifications about registration lifecycle events.
type Observer interface {
	OnResourceEvent(Event)
}

// Dropper is implemented by values that release something when the table
// tears them down in Clear or Close.
type Dropper interface {
	Drop()
}
