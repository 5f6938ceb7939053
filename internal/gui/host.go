package gui

import (
	"math"
	"time"

	"github.com/san-kum/glyphfield/internal/renderer"
)

// Input is the window state polled once per loop iteration.
type Input struct {
	MouseX, MouseY float64
	Wheel          float64
	Width, Height  int
}

// WindowHost is a renderer.Host fed from polled window input. Pointer
// moves, scrolls and resizes are emitted only when they change.
type WindowHost struct {
	*renderer.Dispatcher
	surface   renderer.Surface
	now       time.Time
	w, h      int
	px, py    float64
	scroll    float64
	maxScroll float64
	step      float64
}

func NewWindowHost(surface renderer.Surface, w, h int, scrollStep float64) *WindowHost {
	if scrollStep <= 0 {
		scrollStep = 54
	}
	return &WindowHost{
		Dispatcher: renderer.NewDispatcher(),
		surface:    surface,
		now:        time.Now(),
		w:          w,
		h:          h,
		px:         math.NaN(),
		py:         math.NaN(),
		step:       scrollStep,
	}
}

func (h *WindowHost) Surface() renderer.Surface { return h.surface }
func (h *WindowHost) Size() (int, int)          { return h.w, h.h }
func (h *WindowHost) Now() time.Time            { return h.now }
func (h *WindowHost) Scroll() float64           { return h.scroll }

// SetScrollLimit bounds scrolling to a page of the given height.
func (h *WindowHost) SetScrollLimit(pageHeight float64) {
	h.maxScroll = math.Max(0, pageHeight-float64(h.h))
	if h.scroll > h.maxScroll {
		h.scroll = h.maxScroll
		h.EmitScroll(h.scroll)
	}
}

// Apply emits the changes in in since the last call and runs the pending
// frames at now. It returns the number of frames run.
func (h *WindowHost) Apply(in Input, now time.Time) int {
	if in.Width != h.w || in.Height != h.h {
		h.w, h.h = in.Width, in.Height
		h.EmitResize(h.w, h.h)
	}
	if in.MouseX != h.px || in.MouseY != h.py {
		h.px, h.py = in.MouseX, in.MouseY
		h.EmitPointer(h.px, h.py)
	}
	if in.Wheel != 0 {
		next := math.Max(0, math.Min(h.scroll-in.Wheel*h.step, h.maxScroll))
		if next != h.scroll {
			h.scroll = next
			h.EmitScroll(next)
		}
	}
	h.now = now
	return h.RunFrames(now)
}
