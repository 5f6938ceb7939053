package gui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/glyphfield/internal/config"
	"github.com/san-kum/glyphfield/internal/particles"
	"github.com/san-kum/glyphfield/internal/renderer"
	"github.com/san-kum/glyphfield/internal/viz"
	"go.uber.org/zap"
)

var (
	ColText    = rl.NewColor(228, 228, 231, 255)
	ColTextDim = rl.NewColor(113, 113, 122, 255)
	ColAccent  = rl.NewColor(0, 229, 255, 255)
)

const uiFontSize = 32

type App struct {
	cfg   *config.Config
	log   *zap.Logger
	theme viz.Theme

	Font      rl.Font
	ownFont   bool
	surface   *Surface
	host      *WindowHost
	rend      *renderer.Renderer
	net       *particles.Network
	camera    rl.Camera3D
	particles bool
	quit      bool

	lines      []textLine
	pageHeight float32
	layoutW    int
	layoutH    int
}

func initWindow(cfg *config.Config) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), "glyphfield")
	rl.SetTargetFPS(int32(cfg.FPS))
	rl.SetExitKey(0)
}

// loadFont loads the configured font with the alphabet's codepoints so
// katakana render, falling back to raylib's default font.
func loadFont(path string, alphabet []rune) (rl.Font, bool) {
	if path == "" {
		return rl.GetFontDefault(), false
	}
	codepoints := make([]rune, 0, 95+len(alphabet))
	for r := rune(32); r < 127; r++ {
		codepoints = append(codepoints, r)
	}
	codepoints = append(codepoints, alphabet...)
	font := rl.LoadFontEx(path, uiFontSize, codepoints, int32(len(codepoints)))
	if font.Texture.ID == 0 {
		return rl.GetFontDefault(), false
	}
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font, true
}

func NewApp(cfg *config.Config, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	theme := viz.GetTheme(cfg.Theme)
	font, own := loadFont(cfg.FontPath, cfg.Runes())
	if cfg.FontPath != "" && !own {
		log.Warn("font not loaded, using default", zap.String("path", cfg.FontPath))
	}

	surface := NewSurface(font, theme.Background)
	host := NewWindowHost(surface, rl.GetScreenWidth(), rl.GetScreenHeight(), cfg.ScrollStep)

	pcfg := particles.DefaultConfig()
	pcfg.Count = cfg.Particles.Count
	pcfg.ConnectionDistance = cfg.Particles.ConnectionDistance
	pcfg.Seed = cfg.Particles.Seed

	a := &App{
		cfg:     cfg,
		log:     log,
		theme:   theme,
		Font:    font,
		ownFont: own,
		surface: surface,
		host:    host,
		rend:    renderer.New(host, log),
		net:     particles.New(pcfg),
		camera: rl.NewCamera3D(
			rl.NewVector3(0, 0, 10),
			rl.NewVector3(0, 0, 0),
			rl.NewVector3(0, 1, 0),
			60.0,
			rl.CameraPerspective,
		),
		particles: cfg.Hero,
	}
	surface.Behind = a.drawBehind
	a.mount()
	return a
}

// Run opens a window and shows the backdrop until it is closed.
func Run(cfg *config.Config, log *zap.Logger) error {
	initWindow(cfg)
	defer rl.CloseWindow()
	app := NewApp(cfg, log)
	defer app.Close()
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && !a.quit {
		a.Update()
		a.Draw()
	}
	a.rend.Unmount()
}

func (a *App) Close() {
	a.rend.Unmount()
	if a.ownFont {
		rl.UnloadFont(a.Font)
	}
}

func (a *App) mount() {
	a.rend.Mount(renderer.Options{
		Intensity: a.cfg.Intensity,
		Hero:      a.cfg.Hero,
		Alphabet:  a.cfg.Runes(),
		Palette:   a.theme.Palette,
		Noise:     a.cfg.NoiseSource(),
	})
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) {
		a.quit = true
		return
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.cfg.Hero = !a.cfg.Hero
		a.mount()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		a.particles = !a.particles
	}
	if rl.IsKeyPressed(rl.KeyT) {
		a.theme = viz.NextTheme(a.theme.Name)
		a.cfg.Theme = a.theme.Name
		a.surface.Background = toColor(a.theme.Background)
		a.mount()
	}

	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	if w != a.layoutW || h != a.layoutH {
		a.lines, a.pageHeight = layoutPage(a.cfg.Page, w, h, a.measure)
		a.layoutW, a.layoutH = w, h
	}

	if a.particles && a.cfg.Hero {
		m := rl.GetMousePosition()
		a.net.Step(pointerWorld(a.camera, float64(m.X), float64(m.Y), w, h))
	}
}

func (a *App) input() Input {
	m := rl.GetMousePosition()
	return Input{
		MouseX: float64(m.X),
		MouseY: float64(m.Y),
		Wheel:  float64(rl.GetMouseWheelMove()),
		Width:  rl.GetScreenWidth(),
		Height: rl.GetScreenHeight(),
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	in := a.input()
	if a.host.Apply(in, time.Now()) == 0 {
		a.surface.Clear()
	}
	a.host.SetScrollLimit(float64(a.pageHeight))
	a.drawPage()
	a.DrawHUD()
	rl.EndDrawing()
}

func (a *App) drawBehind() {
	if a.particles && a.cfg.Hero {
		drawParticles(a.net, a.camera, a.theme.Palette)
	}
}

func (a *App) drawPage() {
	scroll := float32(a.host.Scroll())
	h := float32(rl.GetScreenHeight())
	for _, l := range a.lines {
		y := l.Y - scroll
		if y+l.Size < 0 || y > h {
			continue
		}
		col := ColTextDim
		switch l.Kind {
		case kindTitle, kindHeading:
			col = ColText
		case kindTagline, kindLabel:
			col = ColAccent
		}
		a.drawText(l.Text, l.X, y, l.Size, col)
	}
}

func (a *App) DrawHUD() {
	mode := "SECTION"
	if a.cfg.Hero {
		mode = "HERO"
	}
	h := float32(rl.GetScreenHeight())
	a.drawText(fmt.Sprintf("%d FPS  %s  %.2f  %s", rl.GetFPS(), mode, a.cfg.Intensity, a.theme.Name), 20, h-30, 14, ColTextDim)
	a.drawText("[H] HERO  [P] PARTICLES  [T] THEME  [Q] QUIT", float32(rl.GetScreenWidth())-360, h-30, 14, ColTextDim)
}

func (a *App) drawText(text string, x, y, size float32, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(x, y), size, 1, color)
}

func (a *App) measure(text string, size float32) float32 {
	return rl.MeasureTextEx(a.Font, text, size, 1).X
}
