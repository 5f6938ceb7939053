// Package noise provides the smooth 2D noise fields that drive the glyph grid.
//
// Two sources are available:
//
//   - [HashSource]: sine-hash lattice noise with smoothstep interpolation
//   - [SimplexSource]: seeded OpenSimplex noise remapped into [0, 1)
//
// Both are pure functions of their arguments and animate through the t
// parameter, so no noise table has to be stored between frames.
package noise
