package viz

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/glyphfield/internal/config"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sized(t *testing.T) Model {
	t.Helper()
	m := NewModel(config.DefaultConfig(), nil)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	return next.(Model)
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestModelDrawsOnFrame(t *testing.T) {
	m := sized(t)
	m, cmd := update(m, FrameMsg(time.Now()))

	if cmd == nil {
		t.Error("frame should schedule the next tick")
	}
	if got := m.canvas.Stats().Cells; got != 21*11 {
		t.Errorf("drawn %d cells, want %d", got, 21*11)
	}
	if len(m.opacity) != 1 {
		t.Errorf("opacity history has %d samples, want 1", len(m.opacity))
	}
	if strings.TrimSpace(m.View()) == "" {
		t.Error("empty view after a frame")
	}
}

func TestModelKeys(t *testing.T) {
	m := sized(t)
	start := m.cfg.Intensity

	m, _ = update(m, key("h"))
	if !m.cfg.Hero {
		t.Error("h did not enable hero mode")
	}
	m, _ = update(m, key("+"))
	if got := m.cfg.Intensity; got < start+0.019 || got > start+0.021 {
		t.Errorf("intensity = %g after +, want %g", got, start+0.02)
	}
	m, _ = update(m, key("t"))
	if m.theme.Name != "cyberpunk" || m.cfg.Theme != "cyberpunk" {
		t.Errorf("theme = %s after t", m.theme.Name)
	}
	m, _ = update(m, key("n"))
	if m.cfg.Noise != "simplex" {
		t.Errorf("noise = %s after n", m.cfg.Noise)
	}
	if !m.rend.Mounted() {
		t.Error("renderer should stay mounted across setting changes")
	}
}

func TestModelIntensityClamps(t *testing.T) {
	m := sized(t)
	m.cfg.Intensity = 0.99
	m, _ = update(m, key("+"))
	m, _ = update(m, key("+"))
	if m.cfg.Intensity != 1 {
		t.Errorf("intensity = %g, want 1", m.cfg.Intensity)
	}
}

func TestModelQuitUnmounts(t *testing.T) {
	m := sized(t)
	m, cmd := update(m, key("q"))
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
	if m.rend.Mounted() {
		t.Error("renderer still mounted after quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestModelConfigReload(t *testing.T) {
	m := sized(t)

	m, _ = update(m, ConfigMsg{Err: errors.New("bad yaml")})
	if !strings.Contains(m.View(), "bad yaml") {
		t.Error("reload error not shown")
	}

	cfg := config.DefaultConfig()
	cfg.Theme = "ocean"
	cfg.Hero = true
	m, _ = update(m, ConfigMsg{Config: cfg})
	if m.err != nil {
		t.Error("error not cleared by a good reload")
	}
	if m.theme.Name != "ocean" || !m.cfg.Hero {
		t.Errorf("reload not applied: theme %s hero %v", m.theme.Name, m.cfg.Hero)
	}
}

func TestModelOverlays(t *testing.T) {
	m := sized(t)
	m, _ = update(m, FrameMsg(time.Now()))
	m, _ = update(m, key("s"))
	if !strings.Contains(m.View(), "GLYPHFIELD") {
		t.Error("stats HUD missing")
	}
	m, _ = update(m, key("s"))
	m, _ = update(m, key("?"))
	if !strings.Contains(m.View(), "KEYS") {
		t.Error("help missing")
	}
}

func TestModelScrollsPage(t *testing.T) {
	m := sized(t)
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyPgDown})
	if m.host.Scroll() == 0 {
		t.Error("page did not scroll")
	}
	if limit := MaxScroll(len(m.lines), 10); m.host.Scroll() > limit {
		t.Errorf("scroll %g beyond page end %g", m.host.Scroll(), limit)
	}
}

func TestModelReloadKeepsScrollStepUsable(t *testing.T) {
	for _, step := range []float64{0, -5, math.NaN()} {
		m := sized(t)
		cfg := config.DefaultConfig()
		cfg.ScrollStep = step
		m, _ = update(m, ConfigMsg{Config: cfg})
		m, _ = update(m, tea.KeyMsg{Type: tea.KeyDown})

		want := math.Min(PxPerRow, MaxScroll(len(m.lines), 10))
		if m.host.Scroll() != want {
			t.Errorf("step %g: scroll %g, want %g", step, m.host.Scroll(), want)
		}
	}
}
