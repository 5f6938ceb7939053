package renderer

import (
	"math"
	"time"

	"github.com/san-kum/glyphfield/internal/field"
	"github.com/san-kum/glyphfield/internal/noise"
	"go.uber.org/zap"
)

// offscreen keeps the pointer away from every cell until it first moves.
const offscreen = -1000

// Options configures a mount.
type Options struct {
	Intensity float64
	Hero      bool
	Alphabet  []rune
	Palette   field.Palette
	Noise     noise.Source
}

// DefaultOptions matches an unconfigured section backdrop.
func DefaultOptions() Options {
	return Options{
		Intensity: field.DefaultIntensity,
		Alphabet:  []rune(field.DefaultAlphabet),
		Palette:   field.DefaultPalette,
		Noise:     noise.HashSource{},
	}
}

func (o Options) params() field.Params {
	p := field.Params{
		Intensity: o.Intensity,
		Hero:      o.Hero,
		Alphabet:  o.Alphabet,
		Palette:   o.Palette,
		Noise:     o.Noise,
	}
	if p.Intensity < 0 || math.IsNaN(p.Intensity) {
		p.Intensity = 0
	} else if p.Intensity > 1 {
		p.Intensity = 1
	}
	if len(p.Alphabet) == 0 {
		p.Alphabet = []rune(field.DefaultAlphabet)
	}
	if p.Palette == (field.Palette{}) {
		p.Palette = field.DefaultPalette
	}
	if p.Noise == nil {
		p.Noise = noise.HashSource{}
	}
	return p
}

// signals is the state written by input listeners and read by frames.
type signals struct {
	pointerX, pointerY float64
	scroll             float64
	width, height      int
	start              time.Time
}

// Renderer is the procedural canvas renderer.
type Renderer struct {
	host   Host
	log    *zap.Logger
	sig    *signals
	handle *Handle
	frames int
}

func New(host Host, log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{host: host, log: log}
}

// Mount starts the animation loop. Mounting again replaces the running loop
// with one using opts while keeping the signals and start time.
func (r *Renderer) Mount(opts Options) {
	surface := r.host.Surface()
	if surface == nil {
		r.log.Debug("no drawing surface, renderer not started")
		r.Unmount()
		return
	}

	remount := r.handle != nil
	if remount {
		r.handle.Close()
		r.handle = nil
	}
	if r.sig == nil {
		w, h := r.host.Size()
		r.sig = &signals{
			pointerX: offscreen,
			pointerY: offscreen,
			width:    w,
			height:   h,
			start:    r.host.Now(),
		}
	}

	h := &Handle{
		host:    r.host,
		surface: surface,
		params:  opts.params(),
		sig:     r.sig,
		onFrame: func() { r.frames++ },
	}
	h.attach()
	r.handle = h

	r.log.Debug("renderer mounted",
		zap.Bool("remount", remount),
		zap.Float64("intensity", h.params.Intensity),
		zap.Bool("hero", h.params.Hero),
		zap.Int("width", r.sig.width),
		zap.Int("height", r.sig.height))
}

// Unmount stops the loop and detaches every listener. It is safe to call
// repeatedly and after a mount that did not start.
func (r *Renderer) Unmount() {
	if r.handle != nil {
		r.handle.Close()
		r.handle = nil
		r.log.Debug("renderer unmounted", zap.Int("frames", r.frames))
	}
	r.sig = nil
}

func (r *Renderer) Mounted() bool { return r.handle != nil }

// Frames reports how many frames were drawn since New.
func (r *Renderer) Frames() int { return r.frames }

// Handle owns the four subscriptions of one mount.
type Handle struct {
	host    Host
	surface Surface
	params  field.Params
	sig     *signals
	onFrame func()

	pointer, scroll, resize, frame Subscription
	closed                         bool
}

func (h *Handle) attach() {
	h.pointer = h.host.OnPointerMove(func(x, y float64) {
		h.sig.pointerX, h.sig.pointerY = x, y
	})
	h.scroll = h.host.OnScroll(func(offset float64) {
		h.sig.scroll = offset
	})
	h.resize = h.host.OnResize(func(w, hh int) {
		h.sig.width, h.sig.height = w, hh
	})
	h.frame = h.host.RequestFrame(h.draw)
}

func (h *Handle) snapshot(now time.Time) field.Input {
	s := *h.sig
	return field.Input{
		Time:     now.Sub(s.start).Seconds(),
		Scroll:   s.scroll,
		PointerX: s.pointerX,
		PointerY: s.pointerY,
		Width:    s.width,
		Height:   s.height,
	}
}

func (h *Handle) draw(now time.Time) {
	if h.closed {
		return
	}
	in := h.snapshot(now)
	h.surface.Clear()
	field.Each(h.params, in, h.surface.DrawGlyph)
	if h.onFrame != nil {
		h.onFrame()
	}
	if h.closed {
		return
	}
	h.frame = h.host.RequestFrame(h.draw)
}

// Close releases all subscriptions. Later calls do nothing.
func (h *Handle) Close() {
	if h.closed {
		return
	}
	h.closed = true
	for _, s := range []Subscription{h.frame, h.pointer, h.scroll, h.resize} {
		if s != nil {
			s.Cancel()
		}
	}
}
