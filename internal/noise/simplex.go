package noise

import (
	"math"

	"github.com/ojrac/opensimplex-go"
)

// SimplexSource samples OpenSimplex noise, drifting along x like Smooth.
type SimplexSource struct {
	noise opensimplex.Noise
}

func NewSimplex(seed int64) *SimplexSource {
	return &SimplexSource{noise: opensimplex.NewNormalized(seed)}
}

func (s *SimplexSource) Sample(x, y, t float64) float64 {
	v := s.noise.Eval2(x+t*drift, y)
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 1 {
		return math.Nextafter(1, 0)
	}
	return v
}

// New returns the source registered under name.
func New(name string, seed int64) (Source, bool) {
	switch name {
	case "", "hash":
		return HashSource{}, true
	case "simplex":
		return NewSimplex(seed), true
	}
	return nil, false
}

// Names lists the available sources.
func Names() []string { return []string{"hash", "simplex"} }
