package field

import (
	"errors"
	"math"

	"github.com/san-kum/glyphfield/internal/noise"
)

const (
	CellSize         = 18
	FontSize         = 13
	MaxOpacity       = 0.9
	HeroRadius       = 200.0
	SectionRadius    = 150.0
	DefaultIntensity = 0.12

	// DefaultAlphabet mixes digits, katakana, symbols and punctuation.
	DefaultAlphabet = `01アイウエオカキクケコ{}[]<>|/\=+-*#@$%&!?.,:;~^abcdef0123456789`

	// ASCIIAlphabet is a single-width fallback for fonts without katakana.
	ASCIIAlphabet = `01{}[]<>|/\=+-*#@$%&!?.,:;~^abcdef0123456789`
)

// Noise scales and time rates for the four samples taken per cell.
const (
	glyphScale   = 0.15
	glyphRate    = 0.4
	scrollScale  = 0.001
	opacityScale = 0.3
	opacityRate  = 0.2
	colorScale   = 0.1
	colorRate    = 0.1
	colorSpread  = 0.3
	jitterScale  = 0.5
	jitterRate   = 0.8
	jitterOffset = 100
	jitterAmp    = 3
)

var ErrEmptyAlphabet = errors.New("field: alphabet must contain at least one glyph")

type RGB struct {
	R, G, B uint8
}

type Palette struct {
	From, To RGB
}

var (
	Cyan           = RGB{0, 229, 255}
	Orange         = RGB{255, 107, 0}
	DefaultPalette = Palette{From: Cyan, To: Orange}
)

// Params is the per-mount configuration.
type Params struct {
	Intensity float64
	Hero      bool
	Alphabet  []rune
	Palette   Palette
	Noise     noise.Source
}

// Input is one frame's snapshot of the time, scroll, pointer and surface size.
type Input struct {
	Time               float64
	Scroll             float64
	PointerX, PointerY float64
	Width, Height      int
}

// Glyph is a single drawn cell. X and Y are the jittered centre in pixels.
type Glyph struct {
	Col, Row int
	Rune     rune
	X, Y     float64
	Color    RGB
	Opacity  float64
}

// ParseAlphabet splits s into runes.
func ParseAlphabet(s string) ([]rune, error) {
	r := []rune(s)
	if len(r) == 0 {
		return nil, ErrEmptyAlphabet
	}
	return r, nil
}

// GridSize returns the number of columns and rows covering a w x h surface.
func GridSize(w, h int) (cols, rows int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	cols = int(math.Ceil(float64(w)/CellSize)) + 1
	rows = int(math.Ceil(float64(h)/CellSize)) + 1
	return cols, rows
}

// CellCenter returns the undisturbed pixel centre of a cell.
func CellCenter(col, row int) (float64, float64) {
	return float64(col*CellSize) + CellSize/2.0, float64(row*CellSize) + CellSize/2.0
}

// BaseIntensity halves the intensity while a non-hero instance is still
// within the first viewport.
func BaseIntensity(intensity float64, hero bool, scroll, viewportHeight float64) float64 {
	if hero || scroll >= viewportHeight {
		return intensity
	}
	return intensity * 0.5
}

func Radius(hero bool) float64 {
	if hero {
		return HeroRadius
	}
	return SectionRadius
}

// Influence falls off linearly from 1 at the pointer to 0 at radius.
func Influence(dist, radius float64) float64 {
	if radius <= 0 || dist >= radius {
		return 0
	}
	return 1 - dist/radius
}

// ComposeOpacity combines the base intensity, the noise opacity and the
// pointer influence. The result is always within [0, MaxOpacity].
func ComposeOpacity(base, noiseOpacity, influence float64) float64 {
	o := base*noiseOpacity + influence*0.5
	if influence > 0 {
		o += influence * 0.4
	}
	return clamp(o, 0, MaxOpacity)
}

// GlyphIndex maps a noise sample to an alphabet index, or -1 for an empty
// alphabet.
func GlyphIndex(n float64, length int) int {
	if length <= 0 {
		return -1
	}
	i := int(math.Floor(n*float64(length))) % length
	if i < 0 {
		i = -i
	}
	return i
}

// ColorT is the palette mix weight for a column.
func ColorT(col, cols int, n float64) float64 {
	if cols <= 0 {
		return 0
	}
	return math.Mod(float64(col)/float64(cols)+n*colorSpread, 1)
}

// Lerp interpolates the palette channel by channel, rounding to the nearest
// integer.
func Lerp(p Palette, t float64) RGB {
	return RGB{
		R: lerpChannel(p.From.R, p.To.R, t),
		G: lerpChannel(p.From.G, p.To.G, t),
		B: lerpChannel(p.From.B, p.To.B, t),
	}
}

func lerpChannel(a, b uint8, t float64) uint8 {
	v := math.Round(float64(a) + (float64(b)-float64(a))*t)
	return uint8(clamp(v, 0, 255))
}

// Jitter maps a noise sample in [0,1] to an offset within ±1.5 px.
func Jitter(n float64) float64 {
	return (n - 0.5) * jitterAmp
}

// Each computes every cell of the frame in row-major order and passes it
// to fn.
func Each(p Params, in Input, fn func(Glyph)) {
	src := p.Noise
	if src == nil {
		src = noise.HashSource{}
	}
	n := len(p.Alphabet)
	if n == 0 {
		return
	}

	t := in.Time
	cols, rows := GridSize(in.Width, in.Height)
	base := BaseIntensity(p.Intensity, p.Hero, in.Scroll, float64(in.Height))
	radius := Radius(p.Hero)

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			x, y := CellCenter(col, row)
			fc, fr := float64(col), float64(row)

			g := src.Sample(fc*glyphScale, fr*glyphScale+in.Scroll*scrollScale, t*glyphRate)
			idx := GlyphIndex(g, n)

			dx, dy := x-in.PointerX, y-in.PointerY
			inf := Influence(math.Sqrt(dx*dx+dy*dy), radius)

			no := src.Sample(fc*opacityScale, fr*opacityScale, t*opacityRate)*0.6 + 0.2
			op := ComposeOpacity(base, no, inf)

			ct := ColorT(col, cols, src.Sample(fr*colorScale, fc*colorScale, t*colorRate))

			jx := Jitter(src.Sample(fc*jitterScale, fr*jitterScale, t*jitterRate))
			jy := Jitter(src.Sample(fc*jitterScale+jitterOffset, fr*jitterScale, t*jitterRate))

			fn(Glyph{
				Col:     col,
				Row:     row,
				Rune:    p.Alphabet[idx],
				X:       x + jx,
				Y:       y + jy,
				Color:   Lerp(p.Palette, ct),
				Opacity: op,
			})
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo || math.IsNaN(v) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
