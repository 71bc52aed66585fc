package layout

import (
	"math"
	"sync"
)

const (
	DefaultMinCharsPerLine  = 30
	DefaultMinLinesPerSlide = 2
)

// Viewport is the container size in the metrics' unit.
type Viewport struct {
	Width  float64
	Height float64
}

type LayoutMetrics struct {
	CharWidth         float64
	CharHeight        float64
	CharactersPerLine int
	LinesPerSlide     int
}

// Calculator derives slide capacity from the container size. It may be
// updated by resize handling while an animation reads it.
type Calculator struct {
	provider MetricsProvider
	minChars int
	minLines int

	mu       sync.RWMutex
	metrics  LayoutMetrics
	last     Viewport
	observed bool
}

func NewCalculator(provider MetricsProvider, minChars, minLines int) *Calculator {
	if minChars <= 0 {
		minChars = DefaultMinCharsPerLine
	}
	if minLines < DefaultMinLinesPerSlide {
		minLines = DefaultMinLinesPerSlide
	}
	return &Calculator{
		provider: provider,
		minChars: minChars,
		minLines: minLines,
		metrics: LayoutMetrics{
			CharactersPerLine: minChars,
			LinesPerSlide:     minLines,
		},
	}
}

func (c *Calculator) measure() (Metrics, error) {
	m, err := c.provider.Measure()
	if err != nil {
		return Metrics{}, err
	}
	if err := m.Validate(); err != nil {
		return Metrics{}, err
	}
	return m, nil
}

// RecomputeCharsPerLine sets charactersPerLine = max(min, floor(width/charWidth)).
func (c *Calculator) RecomputeCharsPerLine(containerWidth float64) (int, error) {
	m, err := c.measure()
	if err != nil {
		return 0, err
	}
	n := max(c.minChars, int(math.Floor(containerWidth/m.Width)))

	c.mu.Lock()
	defer c.mu.Unlock()
	c.metrics.CharWidth = m.Width
	c.metrics.CharHeight = m.Height
	c.metrics.CharactersPerLine = n
	return n, nil
}

// RecomputeLinesPerSlide sets linesPerSlide = max(min, floor(height/charHeight)-1).
// The subtracted line is reserved for the footer.
func (c *Calculator) RecomputeLinesPerSlide(containerHeight float64) (int, error) {
	m, err := c.measure()
	if err != nil {
		return 0, err
	}
	n := max(c.minLines, int(math.Floor(containerHeight/m.Height))-1)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.metrics.CharWidth = m.Width
	c.metrics.CharHeight = m.Height
	c.metrics.LinesPerSlide = n
	return n, nil
}

// Observe recomputes only the dimensions that changed since the previous
// observation. The first observation computes both.
func (c *Calculator) Observe(v Viewport) (changed bool, err error) {
	c.mu.RLock()
	last, observed := c.last, c.observed
	c.mu.RUnlock()

	widthChanged := !observed || v.Width != last.Width
	heightChanged := !observed || v.Height != last.Height
	if widthChanged {
		if _, err := c.RecomputeCharsPerLine(v.Width); err != nil {
			return false, err
		}
	}
	if heightChanged {
		if _, err := c.RecomputeLinesPerSlide(v.Height); err != nil {
			return false, err
		}
	}

	c.mu.Lock()
	c.last = v
	c.observed = true
	c.mu.Unlock()
	return widthChanged || heightChanged, nil
}

func (c *Calculator) Metrics() LayoutMetrics {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.metrics
}

func (c *Calculator) CharactersPerLine() int { return c.Metrics().CharactersPerLine }

func (c *Calculator) LinesPerSlide() int { return c.Metrics().LinesPerSlide }
