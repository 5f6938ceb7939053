package renderer

import (
	"time"

	"github.com/san-kum/glyphfield/internal/field"
)

// Surface receives the glyphs of a frame.
type Surface interface {
	Clear()
	DrawGlyph(g field.Glyph)
}

// Subscription is a registered listener or scheduled frame. Cancel may be
// called more than once.
type Subscription interface {
	Cancel()
}

// Host is the environment a renderer is mounted into.
type Host interface {
	// Surface returns nil when nothing can be drawn.
	Surface() Surface
	Size() (w, h int)
	Now() time.Time

	OnPointerMove(fn func(x, y float64)) Subscription
	OnScroll(fn func(offset float64)) Subscription
	OnResize(fn func(w, h int)) Subscription

	// RequestFrame runs fn once on the next display refresh.
	RequestFrame(fn func(now time.Time)) Subscription
}

// SubscriptionFunc adapts a function to Subscription.
type SubscriptionFunc func()

func (f SubscriptionFunc) Cancel() { f() }
