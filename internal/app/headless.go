package app

import (
	"context"
	"fmt"
	"io"

	"typewriter/internal/engine"
	"typewriter/internal/layout"
	"typewriter/internal/render"
	"typewriter/internal/slides"
	"typewriter/internal/ui"

	clog "github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"
)

// PlayMode selects how headless frames are written.
type PlayMode int

const (
	// PlayFrames writes every frame in sequence with a separator line.
	PlayFrames PlayMode = iota
	// PlayLive redraws each frame in place.
	PlayLive
)

type PlayOptions struct {
	Slide   int
	Lines   int
	Columns int
	// Plain marks highlights with brackets instead of terminal styles.
	Plain  bool
	Mode   PlayMode
	Clock  engine.Clock
	Out    io.Writer
	Logger *clog.Logger
}

// Play animates one slide of the deck outside the interactive UI.
func Play(ctx context.Context, cfg Config, loader slides.Loader, opts PlayOptions) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	deck, err := loader.LoadDeck(ctx, cfg.DeckPath)
	if err != nil {
		return fmt.Errorf("load deck: %w", err)
	}
	slide := deck.At(opts.Slide)
	if slide == nil {
		return fmt.Errorf("slide %d out of range (deck has %d)", opts.Slide, deck.Len())
	}

	lines := max(opts.Lines, cfg.Layout.MinLinesPerSlide)
	cols := max(opts.Columns, cfg.Layout.MinCharsPerLine)
	calc := layout.NewCalculator(layout.FixedMetrics{Width: 1, Height: 1}, cfg.Layout.MinCharsPerLine, cfg.Layout.MinLinesPerSlide)
	// Height is lines+1 since the calculator reserves one row.
	if _, err := calc.Observe(layout.Viewport{Width: float64(cols), Height: float64(lines + 1)}); err != nil {
		return err
	}

	var markup render.Markup = render.Brackets{Open: "[", Close: "]"}
	if !opts.Plain {
		markup = ui.ThemeForVariant(cfg.UI.StyleVariant).Markup()
	}
	eng := engine.New(engine.Options{
		Markup: markup,
		Budget: calc,
		Timing: cfg.Timing.Timing(),
		Wrap:   cfg.Layout.Wrap,
		Logger: opts.Logger,
	})

	clock := opts.Clock
	if clock == nil {
		clock = engine.RealClock{}
	}
	sink := &writerSink{w: opts.Out, mode: opts.Mode}
	if err := eng.Run(ctx, slide, sink, clock); err != nil {
		return err
	}
	return sink.err
}

type writerSink struct {
	w    io.Writer
	mode PlayMode
	err  error
}

func (s *writerSink) Show(frame engine.Frame) {
	if s.err != nil {
		return
	}
	switch s.mode {
	case PlayLive:
		_, s.err = fmt.Fprint(s.w, ansi.EraseEntireScreen+ansi.CursorHomePosition+frame.Text)
	default:
		_, s.err = fmt.Fprintf(s.w, "--- frame %d (%d,%d)\n%s\n", frame.Seq, frame.Line, frame.Column, frame.Text)
	}
}
