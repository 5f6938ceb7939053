// Package viz renders the glyph field and the particle network in the
// terminal.
//
// The package implements two Bubble Tea programs:
//
//   - [Model]: the live view, a [GlyphCanvas] backdrop driven through a
//     [TermHost] with the page content scrolled over it
//   - [ParticleModel]: the particle network projected onto a Braille [Canvas]
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	h     - Toggle hero mode
//	+/-   - Raise/lower intensity
//	T     - Cycle color themes
//	n     - Toggle hash/simplex noise
//	s     - Show stats HUD
//	?     - Show help overlay
//	↑↓    - Scroll the page
//
// # Coordinates
//
// The field works in logical pixels. One terminal column covers 9 of them
// and one row 18, so a field cell of 18x18 spans two columns and one row.
package viz
