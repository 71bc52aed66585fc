package engine

import (
	"strings"
	"sync/atomic"
	"time"

	"typewriter/internal/markup"
	"typewriter/internal/render"
	"typewriter/internal/slides"
)

// Frame is one full screen handed to the sink.
type Frame struct {
	Text   string
	Slide  string
	Line   int
	Column int
	Seq    int
	Cursor bool
}

// Step is the outcome of processing one atom. Frame is nil for delay atoms.
type Step struct {
	Frame *Frame
	Wait  time.Duration
	Done  bool
}

// Animation is a single run over one slide's atoms.
type Animation struct {
	eng   *Engine
	slide slides.Slide
	atoms []markup.Atom
	next  int

	line    int
	col     int
	emitted int
	history strings.Builder
	seq     int

	released atomic.Bool
}

func (a *Animation) Slide() slides.Slide { return a.slide }

// Done reports whether every atom has been processed.
func (a *Animation) Done() bool { return a.next >= len(a.atoms) }

// Position returns the cursor's line and column.
func (a *Animation) Position() (line, col int) { return a.line, a.col }

// Start renders the blank cursor frame shown before the first atom.
func (a *Animation) Start() (Frame, error) {
	f, err := a.Frame(true)
	if err != nil {
		a.Release()
	}
	return f, err
}

// Next processes exactly one atom. After the last atom it reports Done and
// clears the engine's busy flag.
func (a *Animation) Next() (Step, error) {
	if a.Done() {
		a.Release()
		return Step{Done: true}, nil
	}

	atom := a.atoms[a.next]
	a.next++

	if atom.Kind == markup.KindDelay {
		return Step{Wait: a.eng.timing.Pause(atom.Delay)}, nil
	}

	a.emit(atom)
	frame, err := a.Frame(true)
	if err != nil {
		a.Release()
		return Step{}, err
	}
	return Step{Frame: &frame, Wait: a.eng.timing.CharDelay(a.eng.rnd)}, nil
}

// Frame renders the emitted history with the current layout. The cursor
// glyph is highlighted when cursorVisible is set and plain otherwise.
func (a *Animation) Frame(cursorVisible bool) (Frame, error) {
	p := a.eng.pager()
	cursor := markup.NonBreakingSpace
	if cursorVisible {
		cursor = p.Cursor(markup.NonBreakingSpace)
	}
	text, err := p.Paginate(a.history.String()+cursor, a.slide.Name, a.line, a.col, a.eng.budget.LinesPerSlide())
	if err != nil {
		return Frame{}, err
	}
	a.seq++
	return Frame{
		Text:   text,
		Slide:  a.slide.Name,
		Line:   a.line,
		Column: a.col,
		Seq:    a.seq,
		Cursor: cursorVisible,
	}, nil
}

// Release clears the busy flag. It is safe to call more than once.
func (a *Animation) Release() {
	if !a.released.CompareAndSwap(false, true) {
		return
	}
	a.eng.busy.Store(false)
	a.eng.logger.Debug("anim.done", "slide", a.slide.Name, "emitted", a.emitted, "line", a.line, "col", a.col)
}

func (a *Animation) emit(atom markup.Atom) {
	a.emitted++
	if atom.Kind == markup.KindLineBreak {
		a.history.WriteString(render.LineBreak)
		a.line++
		a.col = 1
		return
	}
	if atom.Highlighted {
		a.history.WriteString(a.eng.markup.Highlight(atom.Glyph))
	} else {
		a.history.WriteString(atom.Glyph)
	}
	a.col++
}
