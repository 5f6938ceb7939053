package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/san-kum/glyphfield/internal/config"
)

const (
	pageMargin   = 4
	maxTextWidth = 72
)

// PageLine is one row of laid out page text.
type PageLine struct {
	Col   int
	Text  string
	Style lipgloss.Style
}

// Page is the content scrolled over the backdrop. The hero block fills the
// first viewport and the sections follow below it.
type Page struct {
	Content config.PageConfig
}

func NewPage(content config.PageConfig) Page { return Page{Content: content} }

// Layout wraps the content for a terminal of cols x rows.
func (p Page) Layout(cols, rows int, theme Theme) []PageLine {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	title := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	accent := lipgloss.NewStyle().Foreground(theme.Accent)
	muted := lipgloss.NewStyle().Foreground(theme.Muted)

	width := cols - 2*pageMargin
	if width > maxTextWidth {
		width = maxTextWidth
	}
	if width < 8 {
		width = cols
	}
	left := (cols - width) / 2

	var hero []PageLine
	centred := func(text string, style lipgloss.Style) {
		for _, l := range wrap(text, width) {
			col := (cols - runewidth.StringWidth(l)) / 2
			hero = append(hero, PageLine{Col: col, Text: l, Style: style})
		}
	}
	centred(strings.ToUpper(p.Content.Title), title)
	if p.Content.Tagline != "" {
		hero = append(hero, PageLine{})
		centred(p.Content.Tagline, accent)
	}

	lines := make([]PageLine, 0, rows*2)
	for i := 0; i < (rows-len(hero))/2; i++ {
		lines = append(lines, PageLine{})
	}
	lines = append(lines, hero...)
	for len(lines) < rows {
		lines = append(lines, PageLine{})
	}

	for _, s := range p.Content.Sections {
		lines = append(lines, PageLine{})
		if s.Label != "" {
			lines = append(lines, PageLine{Col: left, Text: s.Label, Style: accent})
		}
		if s.Title != "" {
			for _, l := range wrap(s.Title, width) {
				lines = append(lines, PageLine{Col: left, Text: l, Style: title})
			}
		}
		lines = append(lines, PageLine{})
		for _, l := range wrap(s.Body, width) {
			lines = append(lines, PageLine{Col: left, Text: l, Style: muted})
		}
		lines = append(lines, PageLine{})
	}
	return lines
}

// MaxScroll is the scroll offset, in logical pixels, that brings the last
// line of the page to the bottom of the viewport.
func MaxScroll(lines, rows int) float64 {
	if lines <= rows {
		return 0
	}
	return float64((lines - rows) * PxPerRow)
}

func wrap(text string, width int) []string {
	if text == "" {
		return nil
	}
	out := lipgloss.NewStyle().Width(width).Render(text)
	parts := strings.Split(out, "\n")
	for i, l := range parts {
		parts[i] = strings.TrimRight(l, " ")
	}
	return parts
}
