package ui

import (
	"typewriter/internal/engine"
	"typewriter/internal/presenter"
)

// Navigator is the presenter controller as seen by the view.
type Navigator interface {
	Start() (*engine.Animation, error)
	Dispatch(ev presenter.Event) (*engine.Animation, error)
	State() presenter.State
}

type View interface {
	Run() error
	Stop()
	SetDeck(title, descriptionMD string)
	FlashStatus(msg string)
	Err() error
}

type LayoutMode int

const (
	LayoutFull LayoutMode = iota
	LayoutCompact
	LayoutTooSmall
)

func (m LayoutMode) String() string {
	switch m {
	case LayoutFull:
		return "full"
	case LayoutCompact:
		return "compact"
	default:
		return "too_small"
	}
}
