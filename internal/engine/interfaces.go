package engine

import (
	"context"
	"time"
)

// Sink receives every rendered frame. Each frame replaces the previous one.
type Sink interface {
	Show(frame Frame)
}

// Budget exposes the current layout. It is read on every frame so a resize
// only affects frames rendered after it.
type Budget interface {
	LinesPerSlide() int
	CharactersPerLine() int
}

// Clock suspends a run between steps.
type Clock interface {
	Sleep(ctx context.Context, d time.Duration) error
}

type SinkFunc func(Frame)

func (f SinkFunc) Show(frame Frame) { f(frame) }
