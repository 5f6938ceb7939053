package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/san-kum/glyphfield/internal/field"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Background is the page colour glyphs are composited over.
var Background = field.RGB{R: 6, G: 6, B: 11}

// ImageSurface rasterises glyphs into an RGBA image.
type ImageSurface struct {
	img   *image.RGBA
	face  font.Face
	bg    color.RGBA
	stats field.Stats
}

// NewImageSurface returns a w x h surface drawing with face, or with the
// 7x13 bitmap face when face is nil.
func NewImageSurface(w, h int, face font.Face) *ImageSurface {
	if face == nil {
		face = basicfont.Face7x13
	}
	s := &ImageSurface{
		img:  image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0))),
		face: face,
	}
	s.SetBackground(Background)
	s.Clear()
	return s
}

// LoadFace parses a TrueType or OpenType file into a face of the given
// pixel size.
func LoadFace(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

func (s *ImageSurface) SetBackground(c field.RGB) {
	s.bg = color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

func (s *ImageSurface) Clear() {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(s.bg), image.Point{}, draw.Src)
	s.stats = field.Stats{}
}

// DrawGlyph draws the rune centred on the glyph position with its opacity
// as alpha.
func (s *ImageSurface) DrawGlyph(g field.Glyph) {
	s.stats.Add(g)
	a := uint8(math.Round(math.Max(0, math.Min(1, g.Opacity)) * 255))
	if a == 0 {
		return
	}
	d := &font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(color.NRGBA{R: g.Color.R, G: g.Color.G, B: g.Color.B, A: a}),
		Face: s.face,
	}
	text := string(g.Rune)
	adv := d.MeasureString(text)
	m := s.face.Metrics()
	d.Dot = fixed.Point26_6{
		X: fixed.Int26_6(g.X*64) - adv/2,
		Y: fixed.Int26_6(g.Y*64) + (m.Ascent-m.Descent)/2,
	}
	d.DrawString(text)
}

func (s *ImageSurface) Image() *image.RGBA { return s.img }

// Stats summarises the glyphs drawn since the last Clear.
func (s *ImageSurface) Stats() field.Stats { return s.stats }

func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
