package field

import (
	"math"
	"testing"

	"github.com/san-kum/glyphfield/internal/noise"
)

func defaultParams(intensity float64, hero bool) Params {
	return Params{
		Intensity: intensity,
		Hero:      hero,
		Alphabet:  []rune(DefaultAlphabet),
		Palette:   DefaultPalette,
		Noise:     noise.HashSource{},
	}
}

func TestGridSize(t *testing.T) {
	tests := []struct {
		w, h       int
		cols, rows int
	}{
		{0, 0, 1, 1},
		{18, 18, 2, 2},
		{19, 36, 3, 3},
		{1920, 1080, 108, 61},
		{-5, 10, 1, 2},
	}
	for _, tt := range tests {
		cols, rows := GridSize(tt.w, tt.h)
		if cols != tt.cols || rows != tt.rows {
			t.Errorf("GridSize(%d,%d) = %d,%d, want %d,%d", tt.w, tt.h, cols, rows, tt.cols, tt.rows)
		}
	}
}

func TestGridCoversSurface(t *testing.T) {
	for _, sz := range [][2]int{{1, 1}, {17, 35}, {800, 600}, {1366, 768}} {
		cols, rows := GridSize(sz[0], sz[1])
		lastX, lastY := CellCenter(cols-1, rows-1)
		if lastX+CellSize/2.0 <= float64(sz[0]) || lastY+CellSize/2.0 <= float64(sz[1]) {
			t.Errorf("grid %dx%d does not cover %v", cols, rows, sz)
		}
	}
}

func TestBaseIntensity(t *testing.T) {
	tests := []struct {
		name      string
		intensity float64
		hero      bool
		scroll    float64
		viewport  float64
		want      float64
	}{
		{"section in first viewport", 0.2, false, 0, 800, 0.1},
		{"hero in first viewport", 0.2, true, 0, 800, 0.2},
		{"section past first viewport", 0.2, false, 800, 800, 0.2},
		{"hero past first viewport", 0.2, true, 1600, 800, 0.2},
	}
	for _, tt := range tests {
		got := BaseIntensity(tt.intensity, tt.hero, tt.scroll, tt.viewport)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestInfluence(t *testing.T) {
	r := Radius(true)
	if r != 200 {
		t.Fatalf("hero radius = %v, want 200", r)
	}
	if Radius(false) != 150 {
		t.Fatalf("section radius = %v, want 150", Radius(false))
	}
	if got := Influence(0, r); got != 1 {
		t.Errorf("influence at pointer = %v, want 1", got)
	}
	if got := Influence(200, r); got != 0 {
		t.Errorf("influence at radius = %v, want 0", got)
	}
	if got := Influence(350, r); got != 0 {
		t.Errorf("influence beyond radius = %v, want 0", got)
	}
	if got := Influence(100, r); got != 0.5 {
		t.Errorf("influence at half radius = %v, want 0.5", got)
	}
}

func TestComposeOpacityBounds(t *testing.T) {
	for base := 0.0; base <= 1.0; base += 0.05 {
		for n := 0.2; n < 0.8; n += 0.05 {
			for inf := 0.0; inf <= 1.0; inf += 0.05 {
				o := ComposeOpacity(base, n, inf)
				if o < 0 || o > MaxOpacity {
					t.Fatalf("ComposeOpacity(%v,%v,%v) = %v out of [0,0.9]", base, n, inf, o)
				}
			}
		}
	}
	if o := ComposeOpacity(-1, 0.5, 0); o != 0 {
		t.Errorf("negative base should clamp to 0, got %v", o)
	}
}

func TestComposeOpacityNoBoostOutsideRadius(t *testing.T) {
	got := ComposeOpacity(0.1, 0.5, 0)
	if math.Abs(got-0.05) > 1e-12 {
		t.Errorf("got %v, want 0.05", got)
	}
}

func TestGlyphIndex(t *testing.T) {
	for length := 1; length <= 64; length++ {
		for n := 0.0; n < 1; n += 0.0137 {
			i := GlyphIndex(n, length)
			if i < 0 || i >= length {
				t.Fatalf("GlyphIndex(%v,%d) = %d out of range", n, length, i)
			}
		}
		if i := GlyphIndex(math.Nextafter(1, 0), length); i < 0 || i >= length {
			t.Fatalf("GlyphIndex near 1 = %d for length %d", i, length)
		}
	}
	if GlyphIndex(0.5, 0) != -1 {
		t.Error("empty alphabet should yield -1")
	}
	if i := GlyphIndex(-0.3, 10); i != 3 {
		t.Errorf("negative sample index = %d, want 3", i)
	}
}

func TestLerpEndpoints(t *testing.T) {
	if got := Lerp(DefaultPalette, 0); got != Cyan {
		t.Errorf("Lerp(0) = %v, want %v", got, Cyan)
	}
	if got := Lerp(DefaultPalette, 1); got != Orange {
		t.Errorf("Lerp(1) = %v, want %v", got, Orange)
	}
	mid := Lerp(DefaultPalette, 0.5)
	want := RGB{128, 168, 128}
	if mid != want {
		t.Errorf("Lerp(0.5) = %v, want %v", mid, want)
	}
}

func TestJitterBounds(t *testing.T) {
	for n := 0.0; n <= 1; n += 0.01 {
		if j := Jitter(n); j < -1.5 || j > 1.5 {
			t.Fatalf("Jitter(%v) = %v", n, j)
		}
	}
}

func TestColorT(t *testing.T) {
	for col := 0; col < 50; col++ {
		ct := ColorT(col, 50, 0.99)
		if ct < 0 || ct >= 1 {
			t.Fatalf("ColorT out of range: %v", ct)
		}
	}
}

func TestEachCoversGrid(t *testing.T) {
	in := Input{Time: 3.2, Scroll: 0, PointerX: -1000, PointerY: -1000, Width: 360, Height: 180}
	glyphs, st := Collect(defaultParams(0.12, false), in)
	cols, rows := GridSize(360, 180)
	if len(glyphs) != cols*rows {
		t.Fatalf("got %d glyphs, want %d", len(glyphs), cols*rows)
	}
	if st.Cols != cols || st.Rows != rows {
		t.Errorf("stats grid %dx%d, want %dx%d", st.Cols, st.Rows, cols, rows)
	}
	for _, g := range glyphs {
		if g.Opacity < 0 || g.Opacity > MaxOpacity {
			t.Fatalf("glyph opacity %v out of range", g.Opacity)
		}
		cx, cy := CellCenter(g.Col, g.Row)
		if math.Abs(g.X-cx) > 1.5 || math.Abs(g.Y-cy) > 1.5 {
			t.Fatalf("jitter too large at %d,%d", g.Col, g.Row)
		}
	}
}

func TestEachDeterministic(t *testing.T) {
	in := Input{Time: 12.5, Scroll: 420, PointerX: 100, PointerY: 90, Width: 200, Height: 100}
	a, _ := Collect(defaultParams(0.3, true), in)
	b, _ := Collect(defaultParams(0.3, true), in)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("frame differs at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestEachPointerBoost(t *testing.T) {
	// Pointer exactly on the centre of cell (2,2).
	x, y := CellCenter(2, 2)
	in := Input{Time: 1, PointerX: x, PointerY: y, Width: 180, Height: 180}
	glyphs, _ := Collect(defaultParams(0.12, true), in)
	for _, g := range glyphs {
		if g.Col == 2 && g.Row == 2 && g.Opacity != MaxOpacity {
			t.Errorf("cell under pointer opacity = %v, want %v", g.Opacity, MaxOpacity)
		}
	}

	far := Input{Time: 1, PointerX: -1000, PointerY: -1000, Width: 180, Height: 180}
	glyphs, _ = Collect(defaultParams(0.12, true), far)
	for _, g := range glyphs {
		if g.Opacity > 0.12*0.8+1e-9 {
			t.Fatalf("unboosted opacity %v exceeds base*0.8", g.Opacity)
		}
	}
}

func TestEachEmptyAlphabet(t *testing.T) {
	p := defaultParams(0.1, false)
	p.Alphabet = nil
	calls := 0
	Each(p, Input{Width: 100, Height: 100}, func(Glyph) { calls++ })
	if calls != 0 {
		t.Errorf("expected no glyphs for empty alphabet, got %d", calls)
	}
}

func TestParseAlphabet(t *testing.T) {
	if _, err := ParseAlphabet(""); err != ErrEmptyAlphabet {
		t.Errorf("expected ErrEmptyAlphabet, got %v", err)
	}
	r, err := ParseAlphabet("アb")
	if err != nil || len(r) != 2 {
		t.Errorf("ParseAlphabet = %v, %v", r, err)
	}
}

func TestMeasure(t *testing.T) {
	st := Measure([]Glyph{
		{Col: 0, Row: 0, Opacity: 0.2},
		{Col: 1, Row: 0, Opacity: 0.0},
		{Col: 0, Row: 1, Opacity: 0.4},
	})
	if st.Cells != 3 || st.Lit != 2 || st.Cols != 2 || st.Rows != 2 {
		t.Errorf("unexpected stats %+v", st)
	}
	if math.Abs(st.MeanOpacity-0.2) > 1e-12 || st.MaxOpacity != 0.4 {
		t.Errorf("unexpected opacity stats %+v", st)
	}
}
