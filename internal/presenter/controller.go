package presenter

import (
	"errors"
	"io"
	"sync"

	"typewriter/internal/engine"

	clog "github.com/charmbracelet/log"
)

// State is a snapshot of the presenter's position in the deck.
type State struct {
	Current int
	Count   int
	Busy    bool
}

// Controller maps navigation input to slide runs. Requests that are out of
// bounds or arrive while a run is in flight are logged and dropped.
type Controller struct {
	anim   Animator
	layout Layout
	logger *clog.Logger

	mu      sync.Mutex
	source  SlideSource
	current int
}

func NewController(source SlideSource, anim Animator, lay Layout, logger *clog.Logger) *Controller {
	if logger == nil {
		logger = clog.New(io.Discard)
	}
	return &Controller{source: source, anim: anim, layout: lay, logger: logger}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{Current: c.current, Count: c.count(), Busy: c.anim.Busy()}
}

// Start animates the current slide. Used once the deck is loaded.
func (c *Controller) Start() (*engine.Animation, error) {
	c.mu.Lock()
	current := c.current
	c.mu.Unlock()
	return c.RequestSlide(current)
}

// RequestSlide moves to target and begins its animation. It returns a nil
// animation without error when the request is rejected.
func (c *Controller) RequestSlide(target int) (*engine.Animation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := c.count()
	if target < 0 || target >= count {
		c.logger.Debug("nav.rejected", "reason", "out_of_bounds", "target", target, "count", count)
		return nil, nil
	}
	if c.anim.Busy() {
		c.logger.Debug("nav.rejected", "reason", "busy", "target", target, "current", c.current)
		return nil, nil
	}

	c.logger.Debug("nav.switch", "from", c.current, "to", target)
	prev := c.current
	c.current = target
	a, err := c.anim.Begin(c.source.At(target))
	if errors.Is(err, engine.ErrBusy) {
		c.current = prev
		c.logger.Debug("nav.rejected", "reason", "busy", "target", target, "current", c.current)
		return nil, nil
	}
	if err != nil {
		c.current = prev
		return nil, err
	}
	return a, nil
}

// Dispatch routes one input event. Resize events update the layout and never
// consult the busy flag.
func (c *Controller) Dispatch(ev Event) (*engine.Animation, error) {
	switch ev.Kind {
	case EventResize:
		if c.layout == nil {
			return nil, nil
		}
		changed, err := c.layout.Observe(ev.Viewport)
		if err != nil {
			return nil, err
		}
		if changed {
			c.logger.Debug("layout.changed", "width", ev.Viewport.Width, "height", ev.Viewport.Height)
		}
		return nil, nil
	case EventReplay:
		return c.Replay()
	case EventKeyPrev:
		return c.step(DirectionPrev)
	case EventKeyNext:
		return c.step(DirectionNext)
	case EventPointer:
		fraction, ok := PointerFraction(ev.X, ev.SurfaceLeft, ev.SurfaceWidth)
		if !ok {
			c.logger.Debug("nav.rejected", "reason", "empty_surface", "width", ev.SurfaceWidth)
			return nil, nil
		}
		return c.step(PointerDirection(fraction))
	case EventFirst:
		return c.First()
	case EventLast:
		return c.Last()
	default:
		c.logger.Debug("nav.ignored", "event", ev.Kind.String())
		return nil, nil
	}
}

// Replay re-animates the current slide.
func (c *Controller) Replay() (*engine.Animation, error) { return c.Start() }

func (c *Controller) First() (*engine.Animation, error) { return c.jump(0) }

func (c *Controller) Last() (*engine.Animation, error) {
	c.mu.Lock()
	last := c.count() - 1
	c.mu.Unlock()
	return c.jump(last)
}

// SetSource swaps the slide source, clamping the current index into it.
func (c *Controller) SetSource(source SlideSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.source = source
	if n := c.count(); c.current >= n {
		c.current = max(0, n-1)
	}
}

func (c *Controller) step(d Direction) (*engine.Animation, error) {
	c.mu.Lock()
	target := c.current + int(d)
	c.mu.Unlock()
	return c.RequestSlide(target)
}

func (c *Controller) jump(target int) (*engine.Animation, error) {
	c.mu.Lock()
	same := target == c.current
	c.mu.Unlock()
	if same {
		return nil, nil
	}
	return c.RequestSlide(target)
}

func (c *Controller) count() int {
	if c.source == nil {
		return 0
	}
	return c.source.Len()
}
