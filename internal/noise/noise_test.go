package noise

import (
	"math"
	"math/rand"
	"testing"
)

func TestHashDeterministic(t *testing.T) {
	for _, p := range [][2]float64{{0, 0}, {1.5, -3.25}, {1e6, 7}, {-42, 0.001}} {
		a := Hash(p[0], p[1])
		b := Hash(p[0], p[1])
		if math.Float64bits(a) != math.Float64bits(b) {
			t.Errorf("Hash(%v, %v) not deterministic: %v vs %v", p[0], p[1], a, b)
		}
	}
}

func TestHashRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20000; i++ {
		x := (rng.Float64() - 0.5) * 1e4
		y := (rng.Float64() - 0.5) * 1e4
		v := Hash(x, y)
		if v < 0 || v >= 1 {
			t.Fatalf("Hash(%v, %v) = %v, want [0,1)", x, y, v)
		}
	}
}

func TestHashKnownValue(t *testing.T) {
	// sin(0) = 0, so the origin hashes to 0.
	if v := Hash(0, 0); v != 0 {
		t.Errorf("Hash(0,0) = %v, want 0", v)
	}
}

func TestSmoothRange(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 20000; i++ {
		x := rng.Float64() * 200
		y := rng.Float64() * 200
		tm := rng.Float64() * 1000
		v := Smooth(x, y, tm)
		if v < 0 || v > 1 {
			t.Fatalf("Smooth(%v, %v, %v) = %v, want [0,1]", x, y, tm, v)
		}
	}
}

func TestSmoothLatticePoints(t *testing.T) {
	// On an integer lattice point the interpolation collapses to one sample.
	tests := []struct{ x, y, t float64 }{
		{0, 0, 0},
		{3, 7, 0},
		{5, 2, 1.5},
	}
	for _, tt := range tests {
		want := Hash(tt.x+tt.t*0.3, tt.y)
		got := Smooth(tt.x, tt.y, tt.t)
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("Smooth(%v,%v,%v) = %v, want %v", tt.x, tt.y, tt.t, got, want)
		}
	}
}

func TestSmoothContinuity(t *testing.T) {
	const eps = 1e-6
	for x := 0.0; x < 4; x += 0.37 {
		a := Smooth(x, 1.3, 2)
		b := Smooth(x+eps, 1.3, 2)
		if math.Abs(a-b) > 1e-3 {
			t.Errorf("discontinuity at x=%v: %v vs %v", x, a, b)
		}
	}
}

func TestSmoothstep(t *testing.T) {
	if smoothstep(0) != 0 || smoothstep(1) != 1 || smoothstep(0.5) != 0.5 {
		t.Errorf("smoothstep endpoints wrong: %v %v %v", smoothstep(0), smoothstep(0.5), smoothstep(1))
	}
}

func TestSimplexRange(t *testing.T) {
	s := NewSimplex(7)
	for x := -10.0; x < 10; x += 0.31 {
		for y := -10.0; y < 10; y += 0.47 {
			v := s.Sample(x, y, 3)
			if v < 0 || v >= 1 {
				t.Fatalf("simplex sample %v out of [0,1)", v)
			}
		}
	}
}

func TestSimplexSeeded(t *testing.T) {
	a, b := NewSimplex(11), NewSimplex(11)
	if a.Sample(1.2, 3.4, 5) != b.Sample(1.2, 3.4, 5) {
		t.Error("same seed should give same field")
	}
}

func TestNew(t *testing.T) {
	for _, name := range Names() {
		if _, ok := New(name, 1); !ok {
			t.Errorf("source %q not registered", name)
		}
	}
	if _, ok := New("perlin", 1); ok {
		t.Error("expected unknown source to be rejected")
	}
	src, _ := New("", 0)
	if _, ok := src.(HashSource); !ok {
		t.Errorf("default source = %T, want HashSource", src)
	}
}
