package export

import (
	"errors"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"math"
)

var ErrNoFrames = errors.New("export: no frames recorded")

// GIFRecorder collects frames into a looping animation.
type GIFRecorder struct {
	anim  gif.GIF
	delay int
}

// NewGIFRecorder returns a recorder whose frame delay matches fps. GIF
// delays are in hundredths of a second.
func NewGIFRecorder(fps int) *GIFRecorder {
	delay := 1
	if fps > 0 {
		delay = max(1, int(math.Round(100/float64(fps))))
	}
	return &GIFRecorder{delay: delay}
}

// Add quantises img to the Plan 9 palette with Floyd-Steinberg dithering.
func (r *GIFRecorder) Add(img image.Image) {
	p := image.NewPaletted(img.Bounds(), palette.Plan9)
	draw.FloydSteinberg.Draw(p, p.Bounds(), img, img.Bounds().Min)
	r.anim.Image = append(r.anim.Image, p)
	r.anim.Delay = append(r.anim.Delay, r.delay)
}

func (r *GIFRecorder) Frames() int { return len(r.anim.Image) }

func (r *GIFRecorder) Delay() int { return r.delay }

func (r *GIFRecorder) Encode(w io.Writer) error {
	if len(r.anim.Image) == 0 {
		return ErrNoFrames
	}
	return gif.EncodeAll(w, &r.anim)
}
