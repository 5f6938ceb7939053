package gui

import (
	"strings"

	"github.com/san-kum/glyphfield/internal/config"
)

type lineKind int

const (
	kindTitle lineKind = iota
	kindTagline
	kindLabel
	kindHeading
	kindBody
)

var kindSize = map[lineKind]float32{
	kindTitle:   56,
	kindTagline: 18,
	kindLabel:   14,
	kindHeading: 32,
	kindBody:    18,
}

type textLine struct {
	Text string
	X, Y float32
	Size float32
	Kind lineKind
}

// measureFunc returns the rendered width of text at size.
type measureFunc func(text string, size float32) float32

// layoutPage places the hero block in the middle of the first viewport and
// stacks the sections below it. It returns the lines and the page height.
func layoutPage(p config.PageConfig, w, h int, measure measureFunc) ([]textLine, float32) {
	if w <= 0 || h <= 0 {
		return nil, 0
	}
	width := float32(w)
	margin := width * 0.1
	textWidth := min(width-2*margin, 760)
	left := (width - textWidth) / 2

	var lines []textLine
	centre := func(text string, kind lineKind, y float32) float32 {
		size := kindSize[kind]
		for _, l := range wrapText(text, textWidth, size, measure) {
			lines = append(lines, textLine{Text: l, X: (width - measure(l, size)) / 2, Y: y, Size: size, Kind: kind})
			y += size * 1.3
		}
		return y
	}
	block := func(text string, kind lineKind, y float32) float32 {
		size := kindSize[kind]
		for _, l := range wrapText(text, textWidth, size, measure) {
			lines = append(lines, textLine{Text: l, X: left, Y: y, Size: size, Kind: kind})
			y += size * 1.5
		}
		return y
	}

	y := float32(h)/2 - kindSize[kindTitle]
	y = centre(strings.ToUpper(p.Title), kindTitle, y)
	if p.Tagline != "" {
		centre(p.Tagline, kindTagline, y+kindSize[kindTagline])
	}

	y = float32(h)
	for _, s := range p.Sections {
		y += float32(h) * 0.15
		if s.Label != "" {
			y = block(s.Label, kindLabel, y)
		}
		if s.Title != "" {
			y = block(s.Title, kindHeading, y)
		}
		y = block(s.Body, kindBody, y+kindSize[kindBody])
	}
	return lines, y + float32(h)*0.15
}

// wrapText breaks text into lines no wider than width.
func wrapText(text string, width, size float32, measure measureFunc) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	cur := words[0]
	for _, w := range words[1:] {
		next := cur + " " + w
		if measure(next, size) > width {
			lines = append(lines, cur)
			cur = w
			continue
		}
		cur = next
	}
	return append(lines, cur)
}
