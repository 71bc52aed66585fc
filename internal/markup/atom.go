package markup

// Source codes recognized inside slide text.
const (
	NewLineCode     = `\n`
	HighlightCode   = `\~`
	ShortDelayCode  = `\ds`
	MediumDelayCode = `\dm`
	LongDelayCode   = `\dl`
)

// NonBreakingSpace replaces literal spaces so runs of blanks survive rendering.
const NonBreakingSpace = "\u00a0"

type Kind int

const (
	KindChar Kind = iota
	KindLineBreak
	KindDelay
)

func (k Kind) String() string {
	switch k {
	case KindChar:
		return "char"
	case KindLineBreak:
		return "linebreak"
	case KindDelay:
		return "delay"
	default:
		return "unknown"
	}
}

type Delay int

const (
	DelayShort Delay = iota + 1
	DelayMedium
	DelayLong
)

func (d Delay) String() string {
	switch d {
	case DelayShort:
		return "short"
	case DelayMedium:
		return "medium"
	case DelayLong:
		return "long"
	default:
		return "none"
	}
}

// Atom is one indivisible unit of parsed slide text. Glyph and Highlighted are
// set for KindChar only, Delay for KindDelay only.
type Atom struct {
	Kind        Kind
	Glyph       string
	Highlighted bool
	Delay       Delay
}

func Char(glyph string, highlighted bool) Atom {
	return Atom{Kind: KindChar, Glyph: glyph, Highlighted: highlighted}
}

func LineBreak() Atom { return Atom{Kind: KindLineBreak} }

func Pause(d Delay) Atom { return Atom{Kind: KindDelay, Delay: d} }

// Visible reports whether the atom produces output when emitted.
func (a Atom) Visible() bool {
	return a.Kind == KindChar || a.Kind == KindLineBreak
}

func (a Atom) String() string {
	switch a.Kind {
	case KindChar:
		if a.Highlighted {
			return "Char(" + a.Glyph + ",true)"
		}
		return "Char(" + a.Glyph + ",false)"
	case KindLineBreak:
		return "LineBreak"
	case KindDelay:
		return "Delay(" + a.Delay.String() + ")"
	default:
		return "?"
	}
}
