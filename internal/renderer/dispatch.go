package renderer

import "time"

// Dispatcher keeps the listener and frame registries of a Host. Hosts embed
// it and feed it from their own event source.
type Dispatcher struct {
	nextID  int
	pointer map[int]func(x, y float64)
	scroll  map[int]func(float64)
	resize  map[int]func(w, h int)
	frames  map[int]func(time.Time)
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		pointer: make(map[int]func(x, y float64)),
		scroll:  make(map[int]func(float64)),
		resize:  make(map[int]func(w, h int)),
		frames:  make(map[int]func(time.Time)),
	}
}

func (d *Dispatcher) OnPointerMove(fn func(x, y float64)) Subscription {
	id := d.id()
	d.pointer[id] = fn
	return SubscriptionFunc(func() { delete(d.pointer, id) })
}

func (d *Dispatcher) OnScroll(fn func(float64)) Subscription {
	id := d.id()
	d.scroll[id] = fn
	return SubscriptionFunc(func() { delete(d.scroll, id) })
}

func (d *Dispatcher) OnResize(fn func(w, h int)) Subscription {
	id := d.id()
	d.resize[id] = fn
	return SubscriptionFunc(func() { delete(d.resize, id) })
}

func (d *Dispatcher) RequestFrame(fn func(time.Time)) Subscription {
	id := d.id()
	d.frames[id] = fn
	return SubscriptionFunc(func() { delete(d.frames, id) })
}

func (d *Dispatcher) id() int {
	d.nextID++
	return d.nextID
}

func (d *Dispatcher) EmitPointer(x, y float64) {
	for _, fn := range d.pointer {
		fn(x, y)
	}
}

func (d *Dispatcher) EmitScroll(offset float64) {
	for _, fn := range d.scroll {
		fn(offset)
	}
}

func (d *Dispatcher) EmitResize(w, h int) {
	for _, fn := range d.resize {
		fn(w, h)
	}
}

// RunFrames invokes the callbacks requested before the call. Callbacks
// requested while running wait for the next call.
func (d *Dispatcher) RunFrames(now time.Time) int {
	pending := d.frames
	if len(pending) == 0 {
		return 0
	}
	d.frames = make(map[int]func(time.Time))
	for _, fn := range pending {
		fn(now)
	}
	return len(pending)
}

// Listeners reports the number of active input listeners and pending frames.
func (d *Dispatcher) Listeners() (inputs, frames int) {
	return len(d.pointer) + len(d.scroll) + len(d.resize), len(d.frames)
}
