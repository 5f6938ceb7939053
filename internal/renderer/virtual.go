package renderer

import (
	"time"
)

// VirtualHost is a deterministic Host driven by explicit calls. Frames only
// run when the clock is advanced.
type VirtualHost struct {
	*Dispatcher
	surface Surface
	now     time.Time
	w, h    int
}

// NewVirtualHost returns a host of size w x h drawing to surface, which may
// be nil to simulate an unavailable surface.
func NewVirtualHost(surface Surface, w, h int) *VirtualHost {
	return &VirtualHost{
		Dispatcher: NewDispatcher(),
		surface:    surface,
		now:        time.Unix(0, 0),
		w:          w,
		h:          h,
	}
}

func (v *VirtualHost) Surface() Surface { return v.surface }
func (v *VirtualHost) Size() (int, int) { return v.w, v.h }
func (v *VirtualHost) Now() time.Time   { return v.now }

// Advance moves the clock forward by d and runs the pending frames.
func (v *VirtualHost) Advance(d time.Duration) int {
	v.now = v.now.Add(d)
	return v.RunFrames(v.now)
}

func (v *VirtualHost) MovePointer(x, y float64) { v.EmitPointer(x, y) }
func (v *VirtualHost) ScrollTo(offset float64)  { v.EmitScroll(offset) }

func (v *VirtualHost) Resize(w, h int) {
	v.w, v.h = w, h
	v.EmitResize(w, h)
}
