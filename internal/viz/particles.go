package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/glyphfield/internal/field"
	"github.com/san-kum/glyphfield/internal/particles"
)

// ParticleModel shows the particle network on a Braille canvas.
type ParticleModel struct {
	net     *particles.Network
	canvas  *Canvas
	camera  *Camera
	theme   Theme
	styles  Styles
	fps     int
	pointer particles.Vec3
	links   int
	running bool
}

func NewParticleModel(cfg particles.Config, theme Theme, fps int) ParticleModel {
	return ParticleModel{
		net:     particles.New(cfg),
		canvas:  NewCanvas(80, 23),
		camera:  NewCamera(),
		theme:   theme,
		styles:  NewStyles(theme),
		fps:     fps,
		pointer: particles.Vec3{X: 1e4, Y: 1e4},
		running: true,
	}
}

func (m ParticleModel) Init() tea.Cmd { return tickFrame(m.fps) }

func (m ParticleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.canvas = NewCanvas(msg.Width, msg.Height-1)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionMotion {
			sw, sh := m.canvas.SubSize()
			p := m.camera.Unproject(float64(msg.X*2+1), float64(msg.Y*4+2), sw, sh)
			m.pointer = particles.Vec3{X: p.X, Y: p.Y}
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "t":
			m.theme = NextTheme(m.theme.Name)
			m.styles = NewStyles(m.theme)
		case "x":
			m.camera.RotateX(0.1)
		case "X":
			m.camera.RotateX(-0.1)
		case "y":
			m.camera.RotateY(0.1)
		case "Y":
			m.camera.RotateY(-0.1)
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		case "r":
			m.camera.Reset()
		}

	case FrameMsg:
		if m.running {
			m.net.Step(m.pointer)
		}
		m.draw()
		return m, tickFrame(m.fps)
	}
	return m, nil
}

func (m *ParticleModel) draw() {
	m.canvas.Clear()
	m.links = DrawNetwork(m.canvas, m.net, m.camera, m.theme)
}

// DrawNetwork projects the links of net and then its particles onto c,
// returning the number of links drawn.
func DrawNetwork(c *Canvas, net *particles.Network, cam *Camera, theme Theme) int {
	bg := toColorful(theme.Background)
	wf := NewWireframe()

	links := net.Links()
	for _, l := range links {
		a, b := net.Particles[l.A].Position, net.Particles[l.B].Position
		lc := colorful.Color{R: l.Color[0], G: l.Color[1], B: l.Color[2]}
		// link colours are premultiplied by alpha
		hex := bg.BlendRgb(lc, 0.5+0.5*l.Alpha).Clamped().Hex()
		wf.AddEdge(toVec3(a), toVec3(b), hex)
	}
	Render3D(c, wf, cam)

	wf.Clear()
	bounds := net.Config().Bounds
	for _, p := range net.Particles {
		t := (p.Position.X + bounds.X) / (2 * bounds.X)
		pc := field.Lerp(theme.Palette, t)
		wf.AddPoint(toVec3(p.Position), toColorful(pc).Hex())
	}
	Render3D(c, wf, cam)
	return len(links)
}

func toVec3(v particles.Vec3) Vec3 { return Vec3{v.X, v.Y, v.Z} }

func (m ParticleModel) View() string {
	status := "running"
	if !m.running {
		status = "paused"
	}
	bar := fmt.Sprintf(" particles %d  links %d  %s  [space] pause [x/y] rotate [+/-] zoom [t] theme [q] quit",
		len(m.net.Particles), m.links, status)
	var b strings.Builder
	b.WriteString(m.canvas.Render())
	b.WriteString("\n")
	b.WriteString(m.styles.Value.Render(bar))
	return b.String()
}

// RunParticles runs the particle view until the user quits.
func RunParticles(cfg particles.Config, theme Theme, fps int) error {
	p := tea.NewProgram(NewParticleModel(cfg, theme, fps), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
