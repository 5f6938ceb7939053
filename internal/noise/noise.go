package noise

import "math"

const (
	hashX     = 12.9898
	hashY     = 78.233
	hashScale = 43758.5453

	// drift is how far the lattice slides along x per unit of t.
	drift = 0.3
)

// Source samples a smooth field at (x, y) animated by t.
type Source interface {
	Sample(x, y, t float64) float64
}

// Hash maps a coordinate to a pseudo-random value in [0, 1).
func Hash(x, y float64) float64 {
	n := math.Sin(x*hashX+y*hashY) * hashScale
	f := n - math.Floor(n)
	// n - floor(n) rounds up to exactly 1 for tiny negative n.
	if f >= 1 {
		return 0
	}
	return f
}

// Smooth bilinearly interpolates Hash over the surrounding lattice points
// using smoothstep weights. The lattice drifts along x by t*0.3.
func Smooth(x, y, t float64) float64 {
	x0, y0 := math.Floor(x), math.Floor(y)
	off := t * drift

	a := Hash(x0+off, y0)
	b := Hash(x0+1+off, y0)
	c := Hash(x0+off, y0+1)
	d := Hash(x0+1+off, y0+1)

	sx := smoothstep(x - x0)
	sy := smoothstep(y - y0)

	return a*(1-sx)*(1-sy) + b*sx*(1-sy) + c*(1-sx)*sy + d*sx*sy
}

func smoothstep(f float64) float64 {
	return f * f * (3 - 2*f)
}

// HashSource is the reference noise field.
type HashSource struct{}

func (HashSource) Sample(x, y, t float64) float64 { return Smooth(x, y, t) }
