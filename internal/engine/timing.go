package engine

import (
	"fmt"
	"math/rand/v2"
	"time"

	"typewriter/internal/markup"
)

// Timing holds the pacing of a run. The per-character delay is drawn from
// [MinChar, MaxChar) in whole milliseconds; delay markers use fixed pauses.
type Timing struct {
	MinChar time.Duration
	MaxChar time.Duration
	Short   time.Duration
	Medium  time.Duration
	Long    time.Duration
}

func DefaultTiming() Timing {
	return Timing{
		MinChar: 10 * time.Millisecond,
		MaxChar: 30 * time.Millisecond,
		Short:   150 * time.Millisecond,
		Medium:  300 * time.Millisecond,
		Long:    600 * time.Millisecond,
	}
}

func (t Timing) Validate() error {
	if t.MinChar < 0 {
		return fmt.Errorf("min character delay %v is negative", t.MinChar)
	}
	if t.MaxChar < t.MinChar {
		return fmt.Errorf("max character delay %v is below min %v", t.MaxChar, t.MinChar)
	}
	if t.Short < 0 || t.Medium < 0 || t.Long < 0 {
		return fmt.Errorf("delay marker pauses must not be negative")
	}
	return nil
}

// Pause is the fixed duration of a delay marker.
func (t Timing) Pause(d markup.Delay) time.Duration {
	switch d {
	case markup.DelayShort:
		return t.Short
	case markup.DelayMedium:
		return t.Medium
	case markup.DelayLong:
		return t.Long
	default:
		return 0
	}
}

// CharDelay draws the pause after a visible atom.
func (t Timing) CharDelay(rnd *rand.Rand) time.Duration {
	lo := t.MinChar.Milliseconds()
	hi := t.MaxChar.Milliseconds()
	if hi <= lo {
		return time.Duration(lo) * time.Millisecond
	}
	return time.Duration(lo+rnd.Int64N(hi-lo)) * time.Millisecond
}
