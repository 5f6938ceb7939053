package viz

import (
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
	"github.com/san-kum/glyphfield/internal/field"
)

// A terminal cell is half as wide as it is tall, so one glyph cell of the
// field spans two columns and one row.
const (
	PxPerCol = field.CellSize / 2
	PxPerRow = field.CellSize
)

type glyphCell struct {
	r     rune
	color string
	wide  bool
}

// span is a run of overlay text covering width cells from col.
type span struct {
	col, width int
	styled     string
	plain      string
}

// GlyphCanvas is a terminal cell buffer that the renderer draws into. Text
// written to the overlay layer covers the glyphs underneath.
type GlyphCanvas struct {
	Cols, Rows int
	background colorful.Color
	glyphs     []glyphCell
	overlay    [][]span
	stats      field.Stats
	styles     map[string]lipgloss.Style
}

func NewGlyphCanvas(cols, rows int, background field.RGB) *GlyphCanvas {
	c := &GlyphCanvas{styles: make(map[string]lipgloss.Style)}
	c.SetBackground(background)
	c.Resize(cols, rows)
	return c
}

func toColorful(c field.RGB) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func (c *GlyphCanvas) SetBackground(bg field.RGB) { c.background = toColorful(bg) }

// Resize reallocates the buffers; contents are discarded.
func (c *GlyphCanvas) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	c.Cols, c.Rows = cols, rows
	c.glyphs = make([]glyphCell, cols*rows)
	c.overlay = make([][]span, rows)
	c.stats = field.Stats{}
}

// PixelSize is the logical surface size covered by the terminal.
func (c *GlyphCanvas) PixelSize() (int, int) {
	return c.Cols * PxPerCol, c.Rows * PxPerRow
}

// CellToPixel returns the centre of a terminal cell in logical pixels.
func CellToPixel(col, row int) (float64, float64) {
	return float64(col*PxPerCol) + PxPerCol/2.0, float64(row*PxPerRow) + PxPerRow/2.0
}

func (c *GlyphCanvas) Clear() {
	for i := range c.glyphs {
		c.glyphs[i] = glyphCell{}
	}
	c.stats = field.Stats{}
}

func (c *GlyphCanvas) ClearOverlay() {
	for i := range c.overlay {
		c.overlay[i] = c.overlay[i][:0]
	}
}

// Stats summarises the glyphs drawn since the last Clear.
func (c *GlyphCanvas) Stats() field.Stats { return c.stats }

// DrawGlyph blends the glyph colour over the background by its opacity and
// stores it in the cell containing its centre.
func (c *GlyphCanvas) DrawGlyph(g field.Glyph) {
	c.stats.Add(g)

	col := int(math.Floor(g.X / PxPerCol))
	row := int(math.Floor(g.Y / PxPerRow))
	if col < 0 || row < 0 || col >= c.Cols || row >= c.Rows {
		return
	}
	wide := runewidth.RuneWidth(g.Rune) == 2
	if wide && col+1 >= c.Cols {
		return
	}

	fg := c.background.BlendRgb(toColorful(g.Color), g.Opacity).Clamped()
	i := row*c.Cols + col
	c.glyphs[i] = glyphCell{r: g.Rune, color: fg.Hex(), wide: wide}
	if wide {
		c.glyphs[i+1] = glyphCell{}
	}
	if col > 0 && c.glyphs[i-1].wide {
		c.glyphs[i-1] = glyphCell{}
	}
}

// Glyph returns the rune stored at a cell, or 0.
func (c *GlyphCanvas) Glyph(col, row int) rune {
	if col < 0 || row < 0 || col >= c.Cols || row >= c.Rows {
		return 0
	}
	return c.glyphs[row*c.Cols+col].r
}

// WriteText places text on the overlay starting at (col, row), clipped to
// the canvas.
func (c *GlyphCanvas) WriteText(col, row int, text string, style lipgloss.Style) {
	if col < 0 || col >= c.Cols {
		return
	}
	text = runewidth.Truncate(text, c.Cols-col, "")
	if text == "" {
		return
	}
	c.addSpan(row, span{col: col, width: runewidth.StringWidth(text), styled: style.Render(text), plain: text})
}

// WriteBlock places pre-rendered, possibly styled, lines with their top left
// corner at (col, row).
func (c *GlyphCanvas) WriteBlock(col, row int, block string) {
	if col < 0 || col >= c.Cols {
		return
	}
	for i, line := range strings.Split(block, "\n") {
		if ansi.StringWidth(line) > c.Cols-col {
			line = ansi.Truncate(line, c.Cols-col, "")
		}
		w := ansi.StringWidth(line)
		if w == 0 {
			continue
		}
		c.addSpan(row+i, span{col: col, width: w, styled: line, plain: ansi.Strip(line)})
	}
}

// addSpan keeps the row sorted and drops earlier spans it overlaps.
func (c *GlyphCanvas) addSpan(row int, s span) {
	if row < 0 || row >= c.Rows {
		return
	}
	kept := c.overlay[row][:0]
	for _, o := range c.overlay[row] {
		if o.col+o.width <= s.col || s.col+s.width <= o.col {
			kept = append(kept, o)
		}
	}
	i := sort.Search(len(kept), func(i int) bool { return kept[i].col > s.col })
	kept = append(kept, span{})
	copy(kept[i+1:], kept[i:])
	kept[i] = s
	c.overlay[row] = kept
}

func (c *GlyphCanvas) style(hex string) lipgloss.Style {
	s, ok := c.styles[hex]
	if !ok {
		s = lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
		c.styles[hex] = s
	}
	return s
}

// Render returns the coloured frame.
func (c *GlyphCanvas) Render() string { return c.render(true) }

// Plain returns the frame without colour.
func (c *GlyphCanvas) Plain() string { return c.render(false) }

func (c *GlyphCanvas) render(colored bool) string {
	var b strings.Builder
	for row := 0; row < c.Rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		base := row * c.Cols
		spans := c.overlay[row]
		next := 0
		for col := 0; col < c.Cols; {
			if next < len(spans) && spans[next].col == col {
				if colored {
					b.WriteString(spans[next].styled)
				} else {
					b.WriteString(spans[next].plain)
				}
				col += spans[next].width
				next++
				continue
			}

			g := c.glyphs[base+col]
			blocked := g.wide && (col+1 >= c.Cols || (next < len(spans) && spans[next].col == col+1))
			if g.r == 0 || blocked {
				b.WriteByte(' ')
				col++
				continue
			}
			if colored {
				b.WriteString(c.style(g.color).Render(string(g.r)))
			} else {
				b.WriteRune(g.r)
			}
			if g.wide {
				col += 2
			} else {
				col++
			}
		}
	}
	return b.String()
}
