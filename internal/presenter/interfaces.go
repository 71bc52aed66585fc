package presenter

import (
	"typewriter/internal/engine"
	"typewriter/internal/layout"
	"typewriter/internal/slides"
)

// SlideSource is read-only access to the loaded slides by index.
type SlideSource interface {
	Len() int
	At(i int) *slides.Slide
}

// Animator starts slide runs and reports whether one is in flight.
type Animator interface {
	Busy() bool
	Begin(slide *slides.Slide) (*engine.Animation, error)
}

// Layout receives viewport changes.
type Layout interface {
	Observe(v layout.Viewport) (changed bool, err error)
}
