package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/glyphfield/internal/config"
	"github.com/san-kum/glyphfield/internal/renderer"
	"go.uber.org/zap"
)

const (
	historyCapacity = 120
	intensityStep   = 0.02
)

// ConfigMsg carries a reloaded configuration, or the error that prevented it.
type ConfigMsg struct {
	Config *config.Config
	Err    error
}

// Model is the live terminal view: the glyph backdrop with the page
// scrolled over it.
type Model struct {
	cfg    *config.Config
	log    *zap.Logger
	theme  Theme
	styles Styles
	page   Page
	lines  []PageLine

	canvas *GlyphCanvas
	host   *TermHost
	rend   *renderer.Renderer

	showStats bool
	showHelp  bool
	opacity   []float64
	lastFrame time.Time
	fps       float64
	err       error
}

// NewModel mounts a renderer onto a terminal canvas configured by cfg.
func NewModel(cfg *config.Config, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	theme := GetTheme(cfg.Theme)
	canvas := NewGlyphCanvas(0, 0, theme.Background)
	host := NewTermHost(canvas, cfg.ScrollStep)
	m := Model{
		cfg:     cfg,
		log:     log,
		theme:   theme,
		styles:  NewStyles(theme),
		page:    NewPage(cfg.Page),
		canvas:  canvas,
		host:    host,
		rend:    renderer.New(host, log),
		opacity: make([]float64, 0, historyCapacity),
	}
	m.mount()
	return m
}

func (m Model) Init() tea.Cmd {
	return tickFrame(m.cfg.FPS)
}

func (m *Model) options() renderer.Options {
	return renderer.Options{
		Intensity: m.cfg.Intensity,
		Hero:      m.cfg.Hero,
		Alphabet:  m.cfg.Runes(),
		Palette:   m.theme.Palette,
		Noise:     m.cfg.NoiseSource(),
	}
}

// mount applies the current settings. The renderer keeps its pointer, scroll
// and clock across remounts.
func (m *Model) mount() {
	m.rend.Mount(m.options())
}

func (m *Model) relayout() {
	m.lines = m.page.Layout(m.canvas.Cols, m.canvas.Rows, m.theme)
	m.host.SetScrollLimit(MaxScroll(len(m.lines), m.canvas.Rows))
}

func (m *Model) setTheme(t Theme) {
	m.theme = t
	m.cfg.Theme = t.Name
	m.styles = NewStyles(t)
	m.canvas.SetBackground(t.Background)
	m.relayout()
	m.mount()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ConfigMsg:
		if msg.Err != nil {
			m.err = msg.Err
			m.log.Warn("config reload failed", zap.Error(msg.Err))
			return m, nil
		}
		m.err = nil
		m.cfg = msg.Config
		m.page = NewPage(m.cfg.Page)
		m.host.SetStep(m.cfg.ScrollStep)
		m.setTheme(GetTheme(m.cfg.Theme))
		m.log.Info("config reloaded", zap.String("theme", m.cfg.Theme), zap.Bool("hero", m.cfg.Hero))
		return m, nil

	case tea.WindowSizeMsg:
		m.host.Handle(msg)
		m.relayout()
		return m, nil

	case FrameMsg:
		now := time.Time(msg)
		if !m.lastFrame.IsZero() {
			if dt := now.Sub(m.lastFrame).Seconds(); dt > 0 {
				m.fps = 0.9*m.fps + 0.1/dt
			}
		}
		m.lastFrame = now
		m.host.Handle(msg)
		m.opacity = append(m.opacity, m.canvas.Stats().MeanOpacity)
		if len(m.opacity) > historyCapacity {
			m.opacity = m.opacity[1:]
		}
		return m, tickFrame(m.cfg.FPS)

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.rend.Unmount()
			return m, tea.Quit
		case "h":
			m.cfg.Hero = !m.cfg.Hero
			m.mount()
		case "+", "=":
			m.cfg.Intensity = min(1, m.cfg.Intensity+intensityStep)
			m.mount()
		case "-", "_":
			m.cfg.Intensity = max(0, m.cfg.Intensity-intensityStep)
			m.mount()
		case "t":
			m.setTheme(NextTheme(m.theme.Name))
		case "n":
			if m.cfg.Noise == "simplex" {
				m.cfg.Noise = "hash"
			} else {
				m.cfg.Noise = "simplex"
			}
			m.mount()
		case "s":
			m.showStats = !m.showStats
		case "?":
			m.showHelp = !m.showHelp
		default:
			m.host.Handle(msg)
		}
		return m, nil

	case tea.MouseMsg:
		m.host.Handle(msg)
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	if m.canvas.Cols == 0 || m.canvas.Rows == 0 {
		return ""
	}
	m.canvas.ClearOverlay()

	top := int(m.host.Scroll()) / PxPerRow
	for i := 0; i < m.canvas.Rows && top+i < len(m.lines); i++ {
		l := m.lines[top+i]
		if l.Text != "" {
			m.canvas.WriteText(l.Col, i, l.Text, l.Style)
		}
	}

	if m.showStats {
		m.canvas.WriteBlock(1, 0, m.hud())
	}
	if m.showHelp {
		help := m.help()
		col := (m.canvas.Cols - lipgloss.Width(help)) / 2
		row := (m.canvas.Rows - lipgloss.Height(help)) / 2
		m.canvas.WriteBlock(max(col, 0), max(row, 0), help)
	}
	if m.err != nil {
		m.canvas.WriteText(1, m.canvas.Rows-1, "config: "+m.err.Error(), m.styles.Error)
	}
	return m.canvas.Render()
}

func (m Model) hud() string {
	st := m.canvas.Stats()
	s := m.styles
	row := func(label, value string) string {
		return s.Label.Render(label) + s.Value.Render(value)
	}
	mode := "section"
	if m.cfg.Hero {
		mode = "hero"
	}

	var b strings.Builder
	b.WriteString(s.Title.Render("GLYPHFIELD") + "\n")
	b.WriteString(row("fps", fmt.Sprintf("%.0f", m.fps)) + "\n")
	b.WriteString(row("grid", fmt.Sprintf("%dx%d (%d lit)", st.Cols, st.Rows, st.Lit)) + "\n")
	b.WriteString(row("mode", mode) + "\n")
	b.WriteString(row("intensity", ProgressBar(m.cfg.Intensity, 10)+fmt.Sprintf(" %.2f", m.cfg.Intensity)) + "\n")
	b.WriteString(row("noise", m.cfg.Noise) + "\n")
	b.WriteString(row("theme", m.theme.Name) + "\n")
	b.WriteString(row("scroll", fmt.Sprintf("%.0fpx", m.host.Scroll())))
	if len(m.opacity) > 1 {
		chart := asciigraph.Plot(m.opacity,
			asciigraph.Height(4),
			asciigraph.Width(30),
			asciigraph.Precision(2),
			asciigraph.Caption("mean opacity"))
		b.WriteString("\n\n" + s.Graph.Render(chart))
	}
	return s.Panel.Render(b.String())
}

func (m Model) help() string {
	s := m.styles
	keys := [][2]string{
		{"h", "toggle hero mode"},
		{"+ / -", "intensity"},
		{"t", "cycle theme"},
		{"n", "toggle noise source"},
		{"s", "stats"},
		{"↑ ↓ pgup pgdn", "scroll"},
		{"?", "help"},
		{"q", "quit"},
	}
	var b strings.Builder
	b.WriteString(s.Title.Render("KEYS"))
	for _, k := range keys {
		b.WriteString("\n" + s.Key.Width(14).Render(k[0]) + s.Value.Render(k[1]))
	}
	return s.Panel.Render(b.String())
}

// RunLive runs the live view until the user quits. Reloaded configurations
// arriving on reload are forwarded to the model.
func RunLive(cfg *config.Config, log *zap.Logger, reload <-chan ConfigMsg) error {
	p := tea.NewProgram(NewModel(cfg, log), tea.WithAltScreen(), tea.WithMouseAllMotion())
	if reload != nil {
		go func() {
			for msg := range reload {
				p.Send(msg)
			}
		}()
	}
	_, err := p.Run()
	return err
}
