package viz

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/glyphfield/internal/renderer"
)

func TestTermHostPointer(t *testing.T) {
	h := NewTermHost(NewGlyphCanvas(40, 10, bg), 54)
	var x, y float64
	h.OnPointerMove(func(px, py float64) { x, y = px, py })

	h.Handle(tea.MouseMsg{X: 3, Y: 2, Action: tea.MouseActionMotion})

	if x != 31.5 || y != 45 {
		t.Errorf("pointer = (%g, %g), want (31.5, 45)", x, y)
	}
}

func TestTermHostScrollClamps(t *testing.T) {
	h := NewTermHost(NewGlyphCanvas(40, 10, bg), 54)
	h.SetScrollLimit(100)
	var got []float64
	h.OnScroll(func(o float64) { got = append(got, o) })

	down := tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress}
	up := tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress}
	for _, msg := range []tea.MouseMsg{down, down, up, up, up} {
		h.Handle(msg)
	}

	want := []float64{54, 100, 46, 0}
	if len(got) != len(want) {
		t.Fatalf("scroll events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %g, want %g", i, got[i], want[i])
		}
	}
}

func TestTermHostKeys(t *testing.T) {
	h := NewTermHost(NewGlyphCanvas(40, 10, bg), 18)
	h.SetScrollLimit(1000)

	tests := []struct {
		key  tea.KeyType
		want float64
	}{
		{tea.KeyDown, 18},
		{tea.KeyPgDown, 18 + 162},
		{tea.KeyUp, 162},
		{tea.KeyEnd, 1000},
		{tea.KeyHome, 0},
	}
	for _, tt := range tests {
		if !h.Handle(tea.KeyMsg{Type: tt.key}) {
			t.Errorf("%v not consumed", tt.key)
		}
		if h.Scroll() != tt.want {
			t.Errorf("after %v scroll = %g, want %g", tt.key, h.Scroll(), tt.want)
		}
	}
	if h.Handle(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("z")}) {
		t.Error("unrelated key consumed")
	}
}

func TestTermHostResize(t *testing.T) {
	c := NewGlyphCanvas(0, 0, bg)
	h := NewTermHost(c, 54)
	var w, ph int
	h.OnResize(func(nw, nh int) { w, ph = nw, nh })

	h.Handle(tea.WindowSizeMsg{Width: 40, Height: 10})

	if c.Cols != 40 || c.Rows != 10 {
		t.Errorf("canvas = %dx%d, want 40x10", c.Cols, c.Rows)
	}
	if w != 360 || ph != 180 {
		t.Errorf("resize = %dx%d, want 360x180", w, ph)
	}
}

func TestTermHostDrivesRenderer(t *testing.T) {
	c := NewGlyphCanvas(40, 10, bg)
	h := NewTermHost(c, 54)
	r := renderer.New(h, nil)
	r.Mount(renderer.DefaultOptions())

	h.Handle(FrameMsg(time.Now()))

	if got := c.Stats().Cells; got != 21*11 {
		t.Errorf("drawn %d cells, want %d", got, 21*11)
	}
	if r.Frames() != 1 {
		t.Errorf("Frames = %d, want 1", r.Frames())
	}
}

func TestTermHostWithoutCanvas(t *testing.T) {
	h := NewTermHost(nil, 54)
	if h.Surface() != nil {
		t.Fatal("Surface should be nil without a canvas")
	}
	r := renderer.New(h, nil)
	r.Mount(renderer.DefaultOptions())
	if r.Mounted() {
		t.Error("renderer mounted without a surface")
	}
}
