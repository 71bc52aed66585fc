package engine

import (
	"context"
	"errors"
	"io"
	"math/rand/v2"
	"strings"
	"sync/atomic"
	"time"

	"typewriter/internal/markup"
	"typewriter/internal/render"
	"typewriter/internal/slides"

	clog "github.com/charmbracelet/log"
)

var (
	ErrMissingSlide     = errors.New("slide is missing")
	ErrMissingSlideName = errors.New("slide name is missing")
	ErrBusy             = errors.New("animation already in progress")
)

type Options struct {
	Markup render.Markup
	Budget Budget
	Timing Timing
	// Wrap hard-wraps content at the budget's characters per line.
	Wrap   bool
	Rand   *rand.Rand
	Logger *clog.Logger
}

// Engine animates one slide at a time. The busy flag is set when a run
// begins and cleared after its last atom or on Release.
type Engine struct {
	markup render.Markup
	budget Budget
	timing Timing
	wrap   bool
	rnd    *rand.Rand
	logger *clog.Logger

	busy atomic.Bool
}

func New(opts Options) *Engine {
	e := &Engine{
		markup: opts.Markup,
		budget: opts.Budget,
		timing: opts.Timing,
		wrap:   opts.Wrap,
		rnd:    opts.Rand,
		logger: opts.Logger,
	}
	if e.markup == nil {
		e.markup = render.Brackets{}
	}
	if e.budget == nil {
		e.budget = fixedBudget{lines: render.MinLinesPerPage}
	}
	if e.timing == (Timing{}) {
		e.timing = DefaultTiming()
	}
	if e.rnd == nil {
		now := uint64(time.Now().UnixNano())
		e.rnd = rand.New(rand.NewPCG(now, now>>17|1))
	}
	if e.logger == nil {
		e.logger = clog.New(io.Discard)
	}
	return e
}

func (e *Engine) Busy() bool { return e.busy.Load() }

func (e *Engine) Timing() Timing { return e.timing }

// Begin validates the slide, claims the busy flag and tokenizes the text.
// The caller drives the returned Animation with Start and Next.
func (e *Engine) Begin(slide *slides.Slide) (*Animation, error) {
	if slide == nil {
		return nil, ErrMissingSlide
	}
	if strings.TrimSpace(slide.Name) == "" {
		return nil, ErrMissingSlideName
	}
	if !e.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}

	atoms := markup.Tokenize(slide.Text)
	e.logger.Debug("anim.begin", "slide", slide.Name, "atoms", len(atoms))
	return &Animation{
		eng:   e,
		slide: *slide,
		atoms: atoms,
		line:  1,
		col:   1,
	}, nil
}

// Run animates slide to completion, sleeping on clock between steps.
func (e *Engine) Run(ctx context.Context, slide *slides.Slide, sink Sink, clock Clock) error {
	a, err := e.Begin(slide)
	if err != nil {
		return err
	}
	defer a.Release()

	frame, err := a.Start()
	if err != nil {
		return err
	}
	sink.Show(frame)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		step, err := a.Next()
		if err != nil {
			return err
		}
		if step.Done {
			return nil
		}
		if step.Frame != nil {
			sink.Show(*step.Frame)
		}
		if err := clock.Sleep(ctx, step.Wait); err != nil {
			return err
		}
	}
}

func (e *Engine) pager() render.Pager {
	p := render.Pager{Markup: e.markup}
	if e.wrap {
		p.Columns = e.budget.CharactersPerLine()
	}
	return p
}

type fixedBudget struct {
	lines int
	cols  int
}

func (b fixedBudget) LinesPerSlide() int     { return b.lines }
func (b fixedBudget) CharactersPerLine() int { return b.cols }
