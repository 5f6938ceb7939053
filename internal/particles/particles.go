// Package particles simulates the drifting 3D point cloud shown behind the
// hero backdrop. Links between nearby particles are recomputed every step.
package particles

import (
	"math"
	"math/rand"

	"github.com/san-kum/glyphfield/internal/field"
)

const (
	DefaultCount              = 120
	DefaultConnectionDistance = 2.5
	DefaultPointerRadius      = 5.0
	DefaultPointerInfluence   = 3.0

	minRepelDist = 0.1
	forceScale   = 0.001
	sizeScale    = 0.08
	hoverGrowth  = 0.3
)

// DefaultBounds is the half-extent of the box particles bounce inside.
var DefaultBounds = Vec3{8, 5, 4}

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Length() float64      { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }
func (v Vec3) Dist(o Vec3) float64  { return v.Sub(o).Length() }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

type Config struct {
	Count              int
	ConnectionDistance float64
	PointerRadius      float64
	PointerInfluence   float64
	Bounds             Vec3
	Seed               int64
}

func DefaultConfig() Config {
	return Config{
		Count:              DefaultCount,
		ConnectionDistance: DefaultConnectionDistance,
		PointerRadius:      DefaultPointerRadius,
		PointerInfluence:   DefaultPointerInfluence,
		Bounds:             DefaultBounds,
	}
}

type Particle struct {
	Position Vec3
	Velocity Vec3
	BaseSize float64
	// Scale is the rendered radius after the last step.
	Scale float64
}

// Link connects two particles closer than the connection distance.
type Link struct {
	A, B  int
	Alpha float64
	Color [3]float64
}

type Network struct {
	cfg       Config
	Particles []Particle
}

func New(cfg Config) *Network {
	if cfg.Count <= 0 {
		cfg.Count = DefaultCount
	}
	if cfg.ConnectionDistance <= 0 {
		cfg.ConnectionDistance = DefaultConnectionDistance
	}
	if cfg.PointerRadius <= 0 {
		cfg.PointerRadius = DefaultPointerRadius
	}
	if cfg.PointerInfluence == 0 {
		cfg.PointerInfluence = DefaultPointerInfluence
	}
	if cfg.Bounds == (Vec3{}) {
		cfg.Bounds = DefaultBounds
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	b := cfg.Bounds
	ps := make([]Particle, cfg.Count)
	for i := range ps {
		ps[i] = Particle{
			Position: Vec3{
				(rng.Float64() - 0.5) * 2 * b.X,
				(rng.Float64() - 0.5) * 2 * b.Y,
				(rng.Float64() - 0.5) * 2 * b.Z,
			},
			Velocity: Vec3{
				(rng.Float64() - 0.5) * 0.005,
				(rng.Float64() - 0.5) * 0.005,
				(rng.Float64() - 0.5) * 0.003,
			},
			BaseSize: rng.Float64()*0.5 + 0.3,
		}
		ps[i].Scale = ps[i].BaseSize * sizeScale
	}
	return &Network{cfg: cfg, Particles: ps}
}

func (n *Network) Config() Config { return n.cfg }

// Step advances every particle once. pointer is in world units on the z=0
// plane.
func (n *Network) Step(pointer Vec3) {
	b, r := n.cfg.Bounds, n.cfg.PointerRadius
	for i := range n.Particles {
		p := &n.Particles[i]
		p.Position = p.Position.Add(p.Velocity)

		if math.Abs(p.Position.X) > b.X {
			p.Velocity.X = -p.Velocity.X
		}
		if math.Abs(p.Position.Y) > b.Y {
			p.Velocity.Y = -p.Velocity.Y
		}
		if math.Abs(p.Position.Z) > b.Z {
			p.Velocity.Z = -p.Velocity.Z
		}

		dx, dy := p.Position.X-pointer.X, p.Position.Y-pointer.Y
		dist := math.Sqrt(dx*dx + dy*dy)
		if dist < r && dist > minRepelDist {
			force := (r - dist) / r * n.cfg.PointerInfluence * forceScale
			p.Position.X += dx / dist * force
			p.Position.Y += dy / dist * force
		}

		grow := 1.0
		if dist < r {
			grow += hoverGrowth
		}
		p.Scale = p.BaseSize * grow * sizeScale
	}
}

// Links returns every pair closer than the connection distance, coloured
// from cyan to orange by the first particle's x position.
func (n *Network) Links() []Link {
	d := n.cfg.ConnectionDistance
	bx := n.cfg.Bounds.X
	links := make([]Link, 0, len(n.Particles))
	for i := 0; i < len(n.Particles); i++ {
		for j := i + 1; j < len(n.Particles); j++ {
			a, b := n.Particles[i].Position, n.Particles[j].Position
			dist := a.Dist(b)
			if dist >= d {
				continue
			}
			alpha := 1 - dist/d
			t := (a.X + bx) / (2 * bx)
			c := field.Lerp(field.DefaultPalette, t)
			links = append(links, Link{
				A:     i,
				B:     j,
				Alpha: alpha,
				Color: [3]float64{
					float64(c.R) / 255 * alpha,
					float64(c.G) / 255 * alpha,
					float64(c.B) / 255 * alpha,
				},
			})
		}
	}
	return links
}

// PointerToWorld maps normalised device coordinates in [-1,1] to the z=0
// plane of a viewport of the given world size.
func PointerToWorld(ndcX, ndcY, viewW, viewH float64) Vec3 {
	return Vec3{ndcX * viewW * 0.5, ndcY * viewH * 0.5, 0}
}
