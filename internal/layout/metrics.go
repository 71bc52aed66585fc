package layout

import (
	"errors"
	"fmt"

	"github.com/mattn/go-runewidth"
)

var ErrInvalidMetrics = errors.New("character dimensions must be positive")

// ProbeGlyph is the character measured to derive capacity.
const ProbeGlyph = "W"

// Metrics is the size of one glyph in the surface's unit (pixels for a
// browser-like surface, cells for a terminal).
type Metrics struct {
	Width  float64
	Height float64
}

func (m Metrics) Validate() error {
	if m.Width <= 0 || m.Height <= 0 {
		return fmt.Errorf("measured %gx%g: %w", m.Width, m.Height, ErrInvalidMetrics)
	}
	return nil
}

type MetricsProvider interface {
	Measure() (Metrics, error)
}

// CellMetrics measures the probe glyph in terminal cells.
type CellMetrics struct{}

func (CellMetrics) Measure() (Metrics, error) {
	return Metrics{Width: float64(runewidth.StringWidth(ProbeGlyph)), Height: 1}, nil
}

// FixedMetrics always reports the same glyph size.
type FixedMetrics Metrics

func (f FixedMetrics) Measure() (Metrics, error) { return Metrics(f), nil }
