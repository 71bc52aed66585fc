package app

import (
	"fmt"
	"io"
	"strings"
	"time"

	"typewriter/internal/engine"
	"typewriter/internal/markup"
	"typewriter/internal/slides"

	"github.com/dustin/go-humanize"
)

// SlideReport summarizes one slide for the validate command.
type SlideReport struct {
	Index    int
	Name     string
	Bytes    int
	Stats    markup.Stats
	Estimate time.Duration
}

// Estimate is the expected animation time: the mean character pause per
// visible atom plus every fixed delay.
func Estimate(stats markup.Stats, t engine.Timing) time.Duration {
	visible := stats.Chars + stats.Lines - 1
	if visible < 0 {
		visible = 0
	}
	d := time.Duration(visible) * (t.MinChar + t.MaxChar) / 2
	for kind, n := range stats.Delays {
		d += time.Duration(n) * t.Pause(kind)
	}
	return d
}

func BuildReport(deck slides.Deck, t engine.Timing) []SlideReport {
	out := make([]SlideReport, 0, deck.Len())
	for i, s := range deck.Slides {
		stats := markup.Summarize(markup.Tokenize(s.Text))
		out = append(out, SlideReport{
			Index:    i,
			Name:     s.Name,
			Bytes:    len(s.Text),
			Stats:    stats,
			Estimate: Estimate(stats, t),
		})
	}
	return out
}

// WriteReport prints one line per slide and a total.
func WriteReport(w io.Writer, deck slides.Deck, reports []SlideReport) error {
	var total time.Duration
	var chars int64
	b := &strings.Builder{}
	fmt.Fprintf(b, "%s: %d slides\n", deck.DisplayTitle(), deck.Len())
	for _, r := range reports {
		name := r.Name
		if strings.TrimSpace(name) == "" {
			name = "(unnamed)"
		}
		delays := r.Stats.Delays[markup.DelayShort] + r.Stats.Delays[markup.DelayMedium] + r.Stats.Delays[markup.DelayLong]
		fmt.Fprintf(b, "%3d  %-24s %8s  %6s chars  %3d lines  %2d delays  ~%s\n",
			r.Index+1, name, humanize.Bytes(uint64(r.Bytes)), humanize.Comma(int64(r.Stats.Chars)),
			r.Stats.Lines, delays, r.Estimate.Round(100*time.Millisecond))
		total += r.Estimate
		chars += int64(r.Stats.Chars)
	}
	fmt.Fprintf(b, "total %s chars, ~%s\n", humanize.Comma(chars), total.Round(time.Second))
	_, err := io.WriteString(w, b.String())
	return err
}
