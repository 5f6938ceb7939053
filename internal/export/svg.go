package export

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/glyphfield/internal/field"
	"github.com/san-kum/glyphfield/internal/viz"
)

// SVGSurface collects glyphs as SVG text elements.
type SVGSurface struct {
	width, height int
	bg            field.RGB
	body          strings.Builder
	stats         field.Stats
}

func NewSVGSurface(w, h int) *SVGSurface {
	return &SVGSurface{width: w, height: h, bg: Background}
}

func (s *SVGSurface) SetBackground(c field.RGB) { s.bg = c }

func (s *SVGSurface) Clear() {
	s.body.Reset()
	s.stats = field.Stats{}
}

func (s *SVGSurface) DrawGlyph(g field.Glyph) {
	s.stats.Add(g)
	if g.Opacity <= 0 {
		return
	}
	s.body.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="rgb(%d,%d,%d)" fill-opacity="%.3f">`,
		g.X, g.Y, g.Color.R, g.Color.G, g.Color.B, g.Opacity))
	xml.EscapeText(&s.body, []byte(string(g.Rune)))
	s.body.WriteString("</text>\n")
}

func (s *SVGSurface) Stats() field.Stats { return s.stats }

// String returns the complete SVG document.
func (s *SVGSurface) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<g font-family="monospace" font-size="%d" text-anchor="middle" dominant-baseline="central">
`, s.width, s.height, s.width, s.height, hex(s.bg), field.FontSize))
	sb.WriteString(s.body.String())
	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

func (s *SVGSurface) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}

func hex(c field.RGB) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// CanvasToSVG converts a Braille canvas to SVG format, one circle per dot in
// the colour of its cell.
func CanvasToSVG(canvas *viz.Canvas, scale float64, bg field.RGB) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="#00e5ff">
`, width, height, width, height, hex(bg)))

	// Braille dot-to-bit mapping
	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}

	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r <= 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)
			fill := ""
			if c := canvas.Colors[row][col]; c != "" {
				fill = fmt.Sprintf(` fill="%s"`, c)
			}

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"%s/>
`, cx, cy, dotRadius, fill))
					}
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
