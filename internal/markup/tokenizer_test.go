package markup

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	nbsp := NonBreakingSpace
	tests := []struct {
		name string
		raw  string
		want []Atom
	}{
		{name: "empty", raw: "", want: nil},
		{
			name: "highlight toggles",
			raw:  `a\~b\~c`,
			want: []Atom{Char("a", false), Char("b", true), Char("c", false)},
		},
		{
			name: "short delay is not a highlight",
			raw:  `x\dsy`,
			want: []Atom{Char("x", false), Pause(DelayShort), Char("y", false)},
		},
		{
			name: "medium and long delays",
			raw:  `\dm\dl`,
			want: []Atom{Pause(DelayMedium), Pause(DelayLong)},
		},
		{
			name: "escaped newline",
			raw:  `a\nb`,
			want: []Atom{Char("a", false), LineBreak(), Char("b", false)},
		},
		{
			name: "decoded newline",
			raw:  "a\nb",
			want: []Atom{Char("a", false), LineBreak(), Char("b", false)},
		},
		{
			name: "crlf collapses to one line break",
			raw:  "a\r\nb",
			want: []Atom{Char("a", false), LineBreak(), Char("b", false)},
		},
		{
			name: "spaces become non-breaking",
			raw:  "a b",
			want: []Atom{Char("a", false), Char(nbsp, false), Char("b", false)},
		},
		{
			name: "unterminated highlight runs to the end",
			raw:  `\~ab`,
			want: []Atom{Char("a", true), Char("b", true)},
		},
		{
			name: "consecutive markers",
			raw:  `\~\ds\~x`,
			want: []Atom{Pause(DelayShort), Char("x", false)},
		},
		{
			name: "highlight persists across breaks and delays",
			raw:  `\~a\nb\dlc\~d`,
			want: []Atom{Char("a", true), LineBreak(), Char("b", true), Pause(DelayLong), Char("c", true), Char("d", false)},
		},
		{
			name: "unknown escape is literal",
			raw:  `\x\d`,
			want: []Atom{Char(`\`, false), Char("x", false), Char(`\`, false), Char("d", false)},
		},
		{
			name: "multibyte glyphs",
			raw:  "é→",
			want: []Atom{Char("é", false), Char("→", false)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Tokenize(%q)\n got %v\nwant %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestTokenizeOnlyMarkersYieldsNoChars(t *testing.T) {
	atoms := Tokenize(`\~\~`)
	if len(atoms) != 0 {
		t.Fatalf("expected no atoms, got %v", atoms)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(Tokenize(`ab\n\~cd\~\ds\ds\dl`))
	if s.Chars != 4 {
		t.Fatalf("chars: got %d", s.Chars)
	}
	if s.Lines != 2 {
		t.Fatalf("lines: got %d", s.Lines)
	}
	if s.Highlighted != 2 {
		t.Fatalf("highlighted: got %d", s.Highlighted)
	}
	if s.Delays[DelayShort] != 2 || s.Delays[DelayLong] != 1 || s.Delays[DelayMedium] != 0 {
		t.Fatalf("delays: got %v", s.Delays)
	}
	if empty := Summarize(nil); empty.Lines != 0 || empty.Chars != 0 {
		t.Fatalf("empty summary: got %+v", empty)
	}
	if pauses := Summarize(Tokenize(`\ds\dl`)); pauses.Lines != 0 || pauses.Delays[DelayLong] != 1 {
		t.Fatalf("delay-only summary: got %+v", pauses)
	}
	if breaks := Summarize(Tokenize(`\n`)); breaks.Lines != 2 {
		t.Fatalf("single break: got %d lines", breaks.Lines)
	}
}
