package app

import "typewriter/internal/presenter"

// Presenter is the interactive surface the app runs.
type Presenter interface {
	Run() error
	Stop()
	SetDeck(title, descriptionMD string)
	FlashStatus(msg string)
}

// Navigation receives reloaded decks.
type Navigation interface {
	SetSource(source presenter.SlideSource)
}
