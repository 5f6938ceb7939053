// Package field computes the animated glyph grid for a single frame.
//
// Every frame is recomputed from a snapshot of the input signals ([Input]);
// nothing is retained between frames. [Each] walks the grid in row-major
// order and yields one [Glyph] per cell with its rune, jittered position,
// colour and opacity. The helpers ([GridSize], [BaseIntensity], [Influence],
// [ComposeOpacity], [GlyphIndex], [Lerp]) expose each step of the pipeline.
package field
