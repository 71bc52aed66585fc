package app

import (
	"context"
	"fmt"

	"typewriter/internal/engine"
	"typewriter/internal/layout"
	"typewriter/internal/presenter"
	"typewriter/internal/slides"
	"typewriter/internal/telemetry"
	"typewriter/internal/ui"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type App struct {
	cfg Config

	logger *telemetry.Logger
	loader slides.Loader
	layout *layout.Calculator
	engine *engine.Engine
	nav    Navigation
	view   Presenter

	sessionID string
	deck      slides.Deck
}

// New wires the interactive presenter. The deck is read by Run.
func New(cfg Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sessionID := uuid.NewString()
	logger, err := telemetry.New(telemetry.Options{
		Path:      cfg.LogPath,
		Level:     cfg.LogLevel,
		Prefix:    "typewriter",
		SessionID: sessionID,
	})
	if err != nil {
		return nil, err
	}

	calc := layout.NewCalculator(layout.CellMetrics{}, cfg.Layout.MinCharsPerLine, cfg.Layout.MinLinesPerSlide)
	theme := ui.ThemeForVariant(cfg.UI.StyleVariant)
	eng := engine.New(engine.Options{
		Markup: theme.Markup(),
		Budget: calc,
		Timing: cfg.Timing.Timing(),
		Wrap:   cfg.Layout.Wrap,
		Logger: logger.Logger,
	})
	ctrl := presenter.NewController(slides.Deck{}, eng, calc, logger.Logger)
	view := ui.New(ui.Options{
		Navigator:    ctrl,
		StyleVariant: cfg.UI.StyleVariant,
		MouseScope:   cfg.UI.MouseScope,
		Blink:        cfg.UI.Blink(),
		ShowStatus:   cfg.UI.StatusBar,
		Logger:       logger.Logger,
	})

	return &App{
		cfg:       cfg,
		logger:    logger,
		loader:    slides.NewLoader(),
		layout:    calc,
		engine:    eng,
		nav:       ctrl,
		view:      view,
		sessionID: sessionID,
	}, nil
}

// Run loads the deck and presents it until the user quits or ctx is done.
// With Watch set, edits to the deck file are picked up while presenting.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("app.start", "deck", a.cfg.DeckPath, "watch", a.cfg.Watch)

	deck, err := a.loader.LoadDeck(ctx, a.cfg.DeckPath)
	if err != nil {
		a.logger.Error("deck.load_failed", "path", a.cfg.DeckPath, "err", err)
		return fmt.Errorf("load deck: %w", err)
	}
	a.applyDeck(deck)
	a.logger.Info("deck.loaded", "path", deck.Path, "slides", deck.Len())

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(runCtx)

	g.Go(func() error {
		defer cancel()
		if gctx.Err() != nil {
			return nil
		}
		return a.view.Run()
	})
	g.Go(func() error {
		<-gctx.Done()
		a.view.Stop()
		return nil
	})
	if a.cfg.Watch {
		g.Go(func() error {
			return slides.Watch(gctx, a.loader, a.cfg.DeckPath, slides.DefaultDebounce, a.onReload)
		})
	}

	err = g.Wait()
	a.logger.Info("app.stop", "err", err)
	return err
}

func (a *App) Close() {
	_ = a.logger.Close()
}

func (a *App) SessionID() string { return a.sessionID }

func (a *App) applyDeck(deck slides.Deck) {
	a.deck = deck
	a.nav.SetSource(deck)
	a.view.SetDeck(deck.DisplayTitle(), deck.DescriptionMD)
}

func (a *App) onReload(deck slides.Deck, err error) {
	if err != nil {
		a.logger.Warn("deck.reload_failed", "path", a.cfg.DeckPath, "err", err)
		a.view.FlashStatus("Reload failed: " + err.Error())
		return
	}
	a.applyDeck(deck)
	a.logger.Info("deck.reloaded", "path", deck.Path, "slides", deck.Len())
	a.view.FlashStatus(fmt.Sprintf("Reloaded %d slides", deck.Len()))
}
