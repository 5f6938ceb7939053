package export

import (
	"errors"
	"math"
	"time"

	"github.com/san-kum/glyphfield/internal/field"
	"github.com/san-kum/glyphfield/internal/renderer"
	"go.uber.org/zap"
)

var ErrSession = errors.New("export: session needs a positive size, fps and frame count")

// Session describes an offline capture.
type Session struct {
	Width, Height int
	FPS           int
	Frames        int
	// Start is the animation time of the first frame.
	Start time.Duration
	// Scroll is applied before the first frame; ScrollSpeed adds px/s.
	Scroll      float64
	ScrollSpeed float64
	// Pointer is placed before the first frame. Sweep takes precedence.
	Pointer *Point
	// Sweep moves the pointer along a Lissajous path across the surface.
	Sweep bool
}

// Point is a pointer position in surface pixels.
type Point struct {
	X, Y float64
}

// Frame is the summary of one captured frame.
type Frame struct {
	Index int
	Time  float64
	Stats field.Stats
}

// Capture mounts a renderer on a virtual host and draws s.Frames frames to
// surface, calling onFrame after each one.
func Capture(surface renderer.Surface, opts renderer.Options, s Session, log *zap.Logger, onFrame func(Frame)) error {
	if s.Width <= 0 || s.Height <= 0 || s.FPS <= 0 || s.Frames <= 0 {
		return ErrSession
	}
	if log == nil {
		log = zap.NewNop()
	}

	host := renderer.NewVirtualHost(surface, s.Width, s.Height)
	r := renderer.New(host, log)
	r.Mount(opts)
	defer r.Unmount()

	stats, _ := surface.(interface{ Stats() field.Stats })
	dt := time.Second / time.Duration(s.FPS)
	elapsed := s.Start
	host.ScrollTo(s.Scroll)
	if s.Pointer != nil {
		host.MovePointer(s.Pointer.X, s.Pointer.Y)
	}

	for i := 0; i < s.Frames; i++ {
		t := elapsed.Seconds()
		if s.ScrollSpeed != 0 {
			host.ScrollTo(s.Scroll + s.ScrollSpeed*(t-s.Start.Seconds()))
		}
		if s.Sweep {
			host.MovePointer(sweep(t, s.Width, s.Height))
		}

		step := dt
		if i == 0 {
			step = s.Start
		}
		host.Advance(step)

		f := Frame{Index: i, Time: t}
		if stats != nil {
			f.Stats = stats.Stats()
		}
		if onFrame != nil {
			onFrame(f)
		}
		elapsed += dt
	}

	log.Debug("capture finished",
		zap.Int("frames", s.Frames),
		zap.Int("drawn", r.Frames()),
		zap.Int("width", s.Width),
		zap.Int("height", s.Height))
	return nil
}

func sweep(t float64, w, h int) (float64, float64) {
	x := float64(w) * (0.5 + 0.4*math.Sin(t*0.9))
	y := float64(h) * (0.5 + 0.4*math.Sin(t*1.3+math.Pi/4))
	return x, y
}
