package markup

import (
	"strings"
	"unicode/utf8"
)

// marker order matters: the three-character delay codes and the newline code
// must be matched before the two-character highlight code.
var markers = []struct {
	code   string
	atom   Atom
	toggle bool
}{
	{code: ShortDelayCode, atom: Pause(DelayShort)},
	{code: MediumDelayCode, atom: Pause(DelayMedium)},
	{code: LongDelayCode, atom: Pause(DelayLong)},
	{code: NewLineCode, atom: LineBreak()},
	{code: HighlightCode, toggle: true},
}

// Tokenize converts raw slide text into render atoms in a single left-to-right
// pass. Highlight markers flip the highlight state and produce no atom.
func Tokenize(raw string) []Atom {
	if raw == "" {
		return nil
	}

	atoms := make([]Atom, 0, len(raw))
	highlighted := false
	rest := raw

scan:
	for len(rest) > 0 {
		switch {
		case rest[0] == '\n':
			atoms = append(atoms, LineBreak())
			rest = rest[1:]
			continue
		case rest[0] == '\r' && strings.HasPrefix(rest, "\r\n"):
			rest = rest[1:]
			continue
		case rest[0] == '\\':
			for _, m := range markers {
				if !strings.HasPrefix(rest, m.code) {
					continue
				}
				rest = rest[len(m.code):]
				if m.toggle {
					highlighted = !highlighted
				} else {
					atoms = append(atoms, m.atom)
				}
				continue scan
			}
		}

		r, size := utf8.DecodeRuneInString(rest)
		glyph := rest[:size]
		if r == utf8.RuneError && size == 1 {
			glyph = string(utf8.RuneError)
		}
		if glyph == " " {
			glyph = NonBreakingSpace
		}
		atoms = append(atoms, Char(glyph, highlighted))
		rest = rest[size:]
	}

	if len(atoms) == 0 {
		return nil
	}
	return atoms
}

// Stats summarizes an atom sequence.
type Stats struct {
	Chars       int
	Lines       int
	Highlighted int
	Delays      map[Delay]int
}

func Summarize(atoms []Atom) Stats {
	s := Stats{Delays: map[Delay]int{}}
	for _, a := range atoms {
		if a.Kind != KindDelay && s.Lines == 0 {
			s.Lines = 1
		}
		switch a.Kind {
		case KindChar:
			s.Chars++
			if a.Highlighted {
				s.Highlighted++
			}
		case KindLineBreak:
			s.Lines++
		case KindDelay:
			s.Delays[a.Delay]++
		}
	}
	return s
}
