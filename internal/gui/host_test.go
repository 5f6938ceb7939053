package gui

import (
	"testing"
	"time"

	"github.com/san-kum/glyphfield/internal/field"
	"github.com/san-kum/glyphfield/internal/renderer"
)

type countingSurface struct{ glyphs int }

func (s *countingSurface) Clear()                { s.glyphs = 0 }
func (s *countingSurface) DrawGlyph(field.Glyph) { s.glyphs++ }

func TestWindowHostEmitsChanges(t *testing.T) {
	h := NewWindowHost(nil, 800, 600, 50)
	var pointers, resizes int
	var scrolls []float64
	h.OnPointerMove(func(x, y float64) { pointers++ })
	h.OnResize(func(w, hh int) { resizes++ })
	h.OnScroll(func(o float64) { scrolls = append(scrolls, o) })
	h.SetScrollLimit(700)

	now := time.Now()
	h.Apply(Input{MouseX: 10, MouseY: 10, Width: 800, Height: 600}, now)
	h.Apply(Input{MouseX: 10, MouseY: 10, Width: 800, Height: 600}, now)
	if pointers != 1 {
		t.Errorf("pointer events = %d, want 1", pointers)
	}
	if resizes != 0 {
		t.Errorf("resize events = %d, want 0", resizes)
	}

	h.Apply(Input{MouseX: 10, MouseY: 10, Width: 1024, Height: 600}, now)
	if resizes != 1 {
		t.Errorf("resize events = %d, want 1", resizes)
	}
	if w, hh := h.Size(); w != 1024 || hh != 600 {
		t.Errorf("Size = %dx%d", w, hh)
	}

	for _, wheel := range []float64{-1, -1, -1, 3, 1} {
		h.Apply(Input{MouseX: 10, MouseY: 10, Wheel: wheel, Width: 1024, Height: 600}, now)
	}
	want := []float64{50, 100, 0}
	if len(scrolls) != len(want) {
		t.Fatalf("scrolls = %v, want %v", scrolls, want)
	}
	for i := range want {
		if scrolls[i] != want[i] {
			t.Errorf("scroll %d = %g, want %g", i, scrolls[i], want[i])
		}
	}
}

func TestWindowHostScrollLimitShrinks(t *testing.T) {
	h := NewWindowHost(nil, 800, 600, 100)
	h.SetScrollLimit(2000)
	for i := 0; i < 5; i++ {
		h.Apply(Input{Wheel: -1, Width: 800, Height: 600}, time.Now())
	}
	if h.Scroll() != 500 {
		t.Fatalf("scroll = %g, want 500", h.Scroll())
	}
	h.SetScrollLimit(900)
	if h.Scroll() != 300 {
		t.Errorf("scroll = %g after shrinking the page, want 300", h.Scroll())
	}
}

func TestWindowHostRunsRenderer(t *testing.T) {
	s := &countingSurface{}
	h := NewWindowHost(s, 180, 90, 50)
	r := renderer.New(h, nil)
	r.Mount(renderer.DefaultOptions())

	if n := h.Apply(Input{Width: 180, Height: 90}, time.Now()); n != 1 {
		t.Fatalf("frames run = %d, want 1", n)
	}
	if s.glyphs != 11*6 {
		t.Errorf("glyphs = %d, want %d", s.glyphs, 11*6)
	}

	r.Unmount()
	if n := h.Apply(Input{Width: 180, Height: 90}, time.Now()); n != 0 {
		t.Errorf("frames after unmount = %d", n)
	}
}
