package gui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/glyphfield/internal/field"
	"github.com/san-kum/glyphfield/internal/particles"
)

// Surface draws glyphs into the current raylib frame.
type Surface struct {
	Font       rl.Font
	Background rl.Color
	// Behind is drawn after clearing, under the glyphs.
	Behind  func()
	advance map[rune]float32
}

func NewSurface(font rl.Font, bg field.RGB) *Surface {
	return &Surface{Font: font, Background: toColor(bg), advance: make(map[rune]float32)}
}

func (s *Surface) Clear() {
	rl.ClearBackground(s.Background)
	if s.Behind != nil {
		s.Behind()
	}
}

// DrawGlyph centres the rune on the glyph position.
func (s *Surface) DrawGlyph(g field.Glyph) {
	if g.Opacity <= 0 {
		return
	}
	text := string(g.Rune)
	adv, ok := s.advance[g.Rune]
	if !ok {
		adv = rl.MeasureTextEx(s.Font, text, field.FontSize, 0).X
		s.advance[g.Rune] = adv
	}
	pos := rl.NewVector2(float32(g.X)-adv/2, float32(g.Y)-field.FontSize/2.0)
	rl.DrawTextEx(s.Font, text, pos, field.FontSize, 0, rl.ColorAlpha(toColor(g.Color), float32(g.Opacity)))
}

func toColor(c field.RGB) rl.Color { return rl.NewColor(c.R, c.G, c.B, 255) }

func toVector3(v particles.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}

// drawParticles renders the network with additive blending: links as lines
// whose colour is already scaled by alpha, particles as small spheres.
func drawParticles(net *particles.Network, cam rl.Camera3D, palette field.Palette) {
	rl.BeginMode3D(cam)
	rl.BeginBlendMode(rl.BlendAdditive)
	for _, l := range net.Links() {
		a, b := net.Particles[l.A].Position, net.Particles[l.B].Position
		c := rl.NewColor(channel(l.Color[0]), channel(l.Color[1]), channel(l.Color[2]), 255)
		rl.DrawLine3D(toVector3(a), toVector3(b), c)
	}
	bx := net.Config().Bounds.X
	for _, p := range net.Particles {
		c := field.Lerp(palette, (p.Position.X+bx)/(2*bx))
		rl.DrawSphereEx(toVector3(p.Position), float32(p.Scale), 6, 6, rl.ColorAlpha(toColor(c), 0.8))
	}
	rl.EndBlendMode()
	rl.EndMode3D()
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// viewportAt returns the world size visible on the z=0 plane.
func viewportAt(cam rl.Camera3D, w, h int) (float64, float64) {
	dist := math.Abs(float64(cam.Position.Z))
	vh := 2 * dist * math.Tan(float64(cam.Fovy)*math.Pi/360)
	if h == 0 {
		return 0, vh
	}
	return vh * float64(w) / float64(h), vh
}

// pointerWorld maps window coordinates to the particle plane.
func pointerWorld(cam rl.Camera3D, mx, my float64, w, h int) particles.Vec3 {
	if w == 0 || h == 0 {
		return particles.Vec3{X: 1e4, Y: 1e4}
	}
	vw, vh := viewportAt(cam, w, h)
	ndcX := mx/float64(w)*2 - 1
	ndcY := -(my/float64(h)*2 - 1)
	return particles.PointerToWorld(ndcX, ndcY, vw, vh)
}
