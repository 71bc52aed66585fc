package slides

import (
	"errors"
	"fmt"
	"strings"
)

var ErrNoSlides = errors.New("no slides found in the slide data")

// Slide is one named block of annotated text. Slides are never mutated after
// loading.
type Slide struct {
	Name string `json:"slide_name" yaml:"slide_name"`
	Text string `json:"text" yaml:"text"`
}

type Deck struct {
	Title         string  `json:"title" yaml:"title"`
	DescriptionMD string  `json:"description_md" yaml:"description_md"`
	Slides        []Slide `json:"slides" yaml:"slides"`

	Path string `json:"-" yaml:"-"`
}

func (d Deck) Len() int { return len(d.Slides) }

// At returns the slide at index i, or nil when i is out of range.
func (d Deck) At(i int) *Slide {
	if i < 0 || i >= len(d.Slides) {
		return nil
	}
	s := d.Slides[i]
	return &s
}

// DisplayTitle falls back to the first slide's name.
func (d Deck) DisplayTitle() string {
	if t := strings.TrimSpace(d.Title); t != "" {
		return t
	}
	if len(d.Slides) > 0 {
		return d.Slides[0].Name
	}
	return "untitled"
}

// Validate reports every problem in the deck. Loading only rejects empty
// decks; unnamed slides fail when they are animated.
func (d Deck) Validate() error {
	if len(d.Slides) == 0 {
		return ErrNoSlides
	}
	var errs []error
	seen := map[string]int{}
	for i, s := range d.Slides {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			errs = append(errs, fmt.Errorf("slide %d: slide_name is required", i))
			continue
		}
		if prev, ok := seen[name]; ok {
			errs = append(errs, fmt.Errorf("slide %d: duplicate slide_name %q (first at %d)", i, name, prev))
			continue
		}
		seen[name] = i
	}
	return errors.Join(errs...)
}
