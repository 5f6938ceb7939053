// Package renderer drives the glyph field against a host environment.
//
// A [Host] supplies the drawing surface, the clock, three input signals
// (pointer movement, scroll offset and surface size) and a frame scheduler.
// [Renderer.Mount] acquires all four subscriptions into a single [Handle];
// [Renderer.Unmount] releases them together so that no frame runs afterwards.
//
// Hosts are single-threaded: listeners and frame callbacks are invoked from
// the same goroutine, so the signals need no locking. Each frame reads the
// signals once into a [field.Input] snapshot before drawing.
package renderer
