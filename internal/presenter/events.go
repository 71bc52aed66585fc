package presenter

import (
	"math"

	"typewriter/internal/layout"
)

type EventKind int

const (
	EventKeyPrev EventKind = iota + 1
	EventKeyNext
	EventPointer
	EventResize
	EventReplay
	EventFirst
	EventLast
)

func (k EventKind) String() string {
	switch k {
	case EventKeyPrev:
		return "key_prev"
	case EventKeyNext:
		return "key_next"
	case EventPointer:
		return "pointer"
	case EventResize:
		return "resize"
	case EventReplay:
		return "replay"
	case EventFirst:
		return "first"
	case EventLast:
		return "last"
	default:
		return "unknown"
	}
}

// Event is one input dispatched into the controller. Pointer events carry the
// X coordinate and the capture surface's left edge and width; resize events
// carry the new container size.
type Event struct {
	Kind EventKind

	X            float64
	SurfaceLeft  float64
	SurfaceWidth float64

	Viewport layout.Viewport
}

func KeyPrev() Event { return Event{Kind: EventKeyPrev} }

func KeyNext() Event { return Event{Kind: EventKeyNext} }

func Pointer(x, left, width float64) Event {
	return Event{Kind: EventPointer, X: x, SurfaceLeft: left, SurfaceWidth: width}
}

func Resize(v layout.Viewport) Event { return Event{Kind: EventResize, Viewport: v} }

type Direction int

const (
	DirectionPrev Direction = -1
	DirectionNext Direction = 1
)

// PointerFraction is the pointer's horizontal position across the surface,
// rounded to the nearest unit first. ok is false for a surface with no width.
func PointerFraction(x, left, width float64) (fraction float64, ok bool) {
	if width <= 0 {
		return 0, false
	}
	return math.Round(x-left) / width, true
}

// PointerDirection maps the left half of the surface to the previous slide
// and everything from the midpoint on to the next one.
func PointerDirection(fraction float64) Direction {
	if fraction < 0.5 {
		return DirectionPrev
	}
	return DirectionNext
}
