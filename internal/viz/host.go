package viz

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/glyphfield/internal/renderer"
)

// FrameMsg is one display refresh of the terminal.
type FrameMsg time.Time

func tickFrame(fps int) tea.Cmd {
	if fps <= 0 {
		fps = 60
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg { return FrameMsg(t) })
}

// TermHost adapts Bubble Tea messages to a renderer.Host. Pointer and scroll
// positions are reported in the logical pixels of the glyph field.
type TermHost struct {
	*renderer.Dispatcher
	canvas    *GlyphCanvas
	now       time.Time
	scroll    float64
	maxScroll float64
	step      float64
}

// NewTermHost drives canvas. A nil canvas reports no surface.
func NewTermHost(canvas *GlyphCanvas, scrollStep float64) *TermHost {
	h := &TermHost{
		Dispatcher: renderer.NewDispatcher(),
		canvas:     canvas,
		now:        time.Now(),
	}
	h.SetStep(scrollStep)
	return h
}

// SetStep sets the distance of one wheel or arrow scroll. Non-positive
// steps fall back to one terminal row.
func (h *TermHost) SetStep(step float64) {
	if step <= 0 || math.IsNaN(step) {
		step = PxPerRow
	}
	h.step = step
}

func (h *TermHost) Surface() renderer.Surface {
	if h.canvas == nil {
		return nil
	}
	return h.canvas
}

func (h *TermHost) Size() (int, int) {
	if h.canvas == nil {
		return 0, 0
	}
	return h.canvas.PixelSize()
}

func (h *TermHost) Now() time.Time { return h.now }

func (h *TermHost) Scroll() float64 { return h.scroll }

// SetScrollLimit bounds the scroll offset to [0, limit].
func (h *TermHost) SetScrollLimit(limit float64) {
	h.maxScroll = math.Max(0, limit)
	if h.scroll > h.maxScroll {
		h.ScrollTo(h.maxScroll)
	}
}

// ScrollTo moves the page and notifies listeners when the offset changed.
func (h *TermHost) ScrollTo(offset float64) {
	offset = math.Max(0, math.Min(offset, h.maxScroll))
	if offset == h.scroll {
		return
	}
	h.scroll = offset
	h.EmitScroll(offset)
}

func (h *TermHost) page() float64 {
	_, ph := h.Size()
	return math.Max(h.step, float64(ph)-h.step)
}

// Handle feeds a message to the host and reports whether it was consumed.
func (h *TermHost) Handle(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case FrameMsg:
		h.now = time.Time(msg)
		h.RunFrames(h.now)
		return true

	case tea.WindowSizeMsg:
		if h.canvas != nil {
			h.canvas.Resize(msg.Width, msg.Height)
		}
		w, ph := h.Size()
		h.EmitResize(w, ph)
		return true

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			h.ScrollTo(h.scroll - h.step)
			return true
		case tea.MouseButtonWheelDown:
			h.ScrollTo(h.scroll + h.step)
			return true
		}
		if msg.Action == tea.MouseActionMotion || msg.Action == tea.MouseActionPress {
			h.EmitPointer(CellToPixel(msg.X, msg.Y))
			return true
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			h.ScrollTo(h.scroll - h.step)
		case "down", "j":
			h.ScrollTo(h.scroll + h.step)
		case "pgup":
			h.ScrollTo(h.scroll - h.page())
		case "pgdown", " ":
			h.ScrollTo(h.scroll + h.page())
		case "home":
			h.ScrollTo(0)
		case "end":
			h.ScrollTo(h.maxScroll)
		default:
			return false
		}
		return true
	}
	return false
}
