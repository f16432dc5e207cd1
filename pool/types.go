package pool

import (
	"github.com/wippyai/slotpool"
)

// State is the lifecycle state of a slot.
type State uint8

const (
	StateFree State = iota
	StateAlloc
	StateValid
)

func (s State) String() string {
	switch s {
	case StateFree:
		return "free"
	case StateAlloc:
		return "alloc"
	case StateValid:
		return "valid"
	default:
		return "unknown"
	}
}

// Config configures a pool at construction.
type Config struct {
	// Name identifies the pool in errors and events.
	Name string

	// Capacity is the number of slots including the reserved slot 0.
	// Must be in (0, slotpool.MaxPoolSize].
	Capacity int
}

// EventType identifies a slot lifecycle notification.
type EventType uint8

const (
	EventAllocated EventType = iota
	EventActivated
	EventReleased
)

func (t EventType) String() string {
	switch t {
	case EventAllocated:
		return "allocated"
	case EventActivated:
		return "activated"
	case EventReleased:
		return "released"
	default:
		return "unknown"
	}
}

// Event describes a slot state change.
type Event struct {
	Pool   string
	Handle slotpool.Handle
	Type   EventType
	From   State
	To     State
}

// Observer receives notifications about slot lifecycle events.
type Observer interface {
	OnPoolEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) OnPoolEvent(e Event) { f(e) }

// Dropper is optionally implemented by payloads that need cleanup on release.
type Dropper interface {
	Drop()
}

// Stats is a point-in-time view of a pool.
type Stats struct {
	Name     string
	Capacity int
	Live     int
	Alloc    int
	Valid    int
	Free     int

	Allocations     uint64
	Releases        uint64
	Exhaustions     uint64
	GenerationWraps uint64
}
