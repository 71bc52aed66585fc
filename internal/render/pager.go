package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const (
	LineBreak       = "\n"
	Filler          = "~"
	FooterSeparator = " [+] "
	footerSuffix    = " All"
	MinLinesPerPage = 2
)

var ErrTooFewLines = errors.New("lines per slide must be at least 2")

// Markup wraps a span of output in the highlight bracket pair.
type Markup interface {
	Highlight(s string) string
}

// Brackets is a plain-text Markup, used for headless output and tests.
type Brackets struct {
	Open  string
	Close string
}

func (b Brackets) Highlight(s string) string { return b.Open + s + b.Close }

// Pager turns the text emitted so far into one screen: a tail window of
// content lines followed by the footer.
type Pager struct {
	Markup Markup
	// Columns hard-wraps content lines at that display width. Zero disables
	// wrapping.
	Columns int
}

func (p Pager) Paginate(visible, slideName string, lineNum, colNum, linesPerSlide int) (string, error) {
	if linesPerSlide < MinLinesPerPage {
		return "", fmt.Errorf("paginate %q with %d lines: %w", slideName, linesPerSlide, ErrTooFewLines)
	}

	lines := p.split(visible)
	budget := linesPerSlide - 1
	if len(lines) > budget {
		lines = lines[len(lines)-budget:]
	}
	for len(lines) < budget {
		lines = append(lines, Filler)
	}

	out := make([]string, 0, linesPerSlide)
	out = append(out, lines...)
	out = append(out, p.Footer(slideName, lineNum, colNum))
	return strings.Join(out, LineBreak), nil
}

func (p Pager) Footer(slideName string, lineNum, colNum int) string {
	return p.highlight(fmt.Sprintf("%s%s%d,%d%s", slideName, FooterSeparator, lineNum, colNum, footerSuffix))
}

// Cursor is the highlighted glyph drawn after the last emitted atom.
func (p Pager) Cursor(glyph string) string {
	return p.highlight(glyph)
}

func (p Pager) highlight(s string) string {
	if p.Markup == nil {
		return s
	}
	return p.Markup.Highlight(s)
}

func (p Pager) split(visible string) []string {
	lines := strings.Split(visible, LineBreak)
	if p.Columns <= 0 {
		return lines
	}
	wrapped := make([]string, 0, len(lines))
	for _, line := range lines {
		if ansi.StringWidth(line) <= p.Columns {
			wrapped = append(wrapped, line)
			continue
		}
		wrapped = append(wrapped, strings.Split(ansi.Hardwrap(line, p.Columns, true), LineBreak)...)
	}
	return wrapped
}
