package field

// LitThreshold is the opacity above which a glyph counts as lit.
const LitThreshold = 0.1

// Stats summarises one frame.
type Stats struct {
	Cols, Rows  int
	Cells       int
	Lit         int
	MeanOpacity float64
	MaxOpacity  float64
}

// Add accumulates a glyph into s.
func (s *Stats) Add(g Glyph) {
	s.Cells++
	if g.Col+1 > s.Cols {
		s.Cols = g.Col + 1
	}
	if g.Row+1 > s.Rows {
		s.Rows = g.Row + 1
	}
	if g.Opacity > LitThreshold {
		s.Lit++
	}
	if g.Opacity > s.MaxOpacity {
		s.MaxOpacity = g.Opacity
	}
	// running mean keeps Add usable without a final pass
	s.MeanOpacity += (g.Opacity - s.MeanOpacity) / float64(s.Cells)
}

// Collect computes a whole frame into a slice.
func Collect(p Params, in Input) ([]Glyph, Stats) {
	cols, rows := GridSize(in.Width, in.Height)
	glyphs := make([]Glyph, 0, cols*rows)
	var st Stats
	Each(p, in, func(g Glyph) {
		glyphs = append(glyphs, g)
		st.Add(g)
	})
	return glyphs, st
}

func Measure(glyphs []Glyph) Stats {
	var st Stats
	for _, g := range glyphs {
		st.Add(g)
	}
	return st
}
