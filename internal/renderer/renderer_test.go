package renderer_test

import (
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/glyphfield/internal/field"
	"github.com/san-kum/glyphfield/internal/renderer"
)

type recordingSurface struct {
	clears int
	glyphs []field.Glyph
}

func (s *recordingSurface) Clear() {
	s.clears++
	s.glyphs = s.glyphs[:0]
}

func (s *recordingSurface) DrawGlyph(g field.Glyph) { s.glyphs = append(s.glyphs, g) }

func (s *recordingSurface) at(col, row int) (field.Glyph, bool) {
	for _, g := range s.glyphs {
		if g.Col == col && g.Row == row {
			return g, true
		}
	}
	return field.Glyph{}, false
}

const frame = time.Second / 60

var _ = Describe("Renderer", func() {
	var (
		surface *recordingSurface
		host    *renderer.VirtualHost
		r       *renderer.Renderer
	)

	BeforeEach(func() {
		surface = &recordingSurface{}
		host = renderer.NewVirtualHost(surface, 360, 180)
		r = renderer.New(host, nil)
	})

	Describe("Mount", func() {
		It("attaches three listeners and schedules a frame", func() {
			r.Mount(renderer.DefaultOptions())
			inputs, frames := host.Listeners()
			Expect(inputs).To(Equal(3))
			Expect(frames).To(Equal(1))
			Expect(r.Mounted()).To(BeTrue())
		})

		It("draws the full grid each frame", func() {
			r.Mount(renderer.DefaultOptions())
			Expect(host.Advance(frame)).To(Equal(1))
			cols, rows := field.GridSize(360, 180)
			Expect(surface.glyphs).To(HaveLen(cols * rows))
			Expect(surface.clears).To(Equal(1))

			host.Advance(frame)
			Expect(surface.clears).To(Equal(2))
			Expect(r.Frames()).To(Equal(2))
		})

		It("does nothing without a drawing surface", func() {
			bare := renderer.NewVirtualHost(nil, 100, 100)
			rr := renderer.New(bare, nil)
			rr.Mount(renderer.DefaultOptions())
			inputs, frames := bare.Listeners()
			Expect(inputs).To(BeZero())
			Expect(frames).To(BeZero())
			Expect(rr.Mounted()).To(BeFalse())
			Expect(rr.Unmount).NotTo(Panic())
		})

		It("rebuilds cleanly when mounted again with new options", func() {
			r.Mount(renderer.DefaultOptions())
			host.MovePointer(50, 50)
			host.Advance(frame)

			opts := renderer.DefaultOptions()
			opts.Hero = true
			r.Mount(opts)

			inputs, frames := host.Listeners()
			Expect(inputs).To(Equal(3))
			Expect(frames).To(Equal(1))

			host.Advance(frame)
			Expect(surface.clears).To(Equal(2))
		})

		It("keeps the pointer position across a remount", func() {
			r.Mount(renderer.DefaultOptions())
			x, y := field.CellCenter(3, 3)
			host.MovePointer(x, y)

			opts := renderer.DefaultOptions()
			opts.Hero = true
			r.Mount(opts)
			host.Advance(frame)

			g, ok := surface.at(3, 3)
			Expect(ok).To(BeTrue())
			Expect(g.Opacity).To(Equal(field.MaxOpacity))
		})
	})

	Describe("Unmount", func() {
		It("detaches everything and stops drawing", func() {
			r.Mount(renderer.DefaultOptions())
			host.Advance(frame)
			r.Unmount()

			inputs, frames := host.Listeners()
			Expect(inputs).To(BeZero())
			Expect(frames).To(BeZero())

			drawn := surface.clears
			host.Advance(frame)
			host.Advance(frame)
			Expect(surface.clears).To(Equal(drawn))
		})

		It("is idempotent", func() {
			r.Mount(renderer.DefaultOptions())
			r.Unmount()
			Expect(r.Unmount).NotTo(Panic())
			Expect(r.Mounted()).To(BeFalse())
		})

		It("is safe before any mount", func() {
			Expect(r.Unmount).NotTo(Panic())
		})
	})

	Describe("signals", func() {
		It("starts with the pointer outside the surface", func() {
			r.Mount(renderer.DefaultOptions())
			host.Advance(frame)
			for _, g := range surface.glyphs {
				Expect(g.Opacity).To(BeNumerically("<=", field.DefaultIntensity*0.8))
			}
		})

		It("boosts cells near the pointer", func() {
			opts := renderer.DefaultOptions()
			opts.Hero = true
			r.Mount(opts)
			x, y := field.CellCenter(4, 2)
			host.MovePointer(x, y)
			host.Advance(frame)

			g, ok := surface.at(4, 2)
			Expect(ok).To(BeTrue())
			Expect(g.Opacity).To(Equal(field.MaxOpacity))
		})

		It("recomputes the grid after a resize", func() {
			r.Mount(renderer.DefaultOptions())
			host.Resize(720, 360)
			host.Advance(frame)
			cols, rows := field.GridSize(720, 360)
			Expect(surface.glyphs).To(HaveLen(cols * rows))
		})

		It("undims a section backdrop after the first viewport", func() {
			opts := renderer.DefaultOptions()
			opts.Intensity = 1
			r.Mount(opts)
			host.Advance(frame)
			var dim float64
			for _, g := range surface.glyphs {
				dim = max(dim, g.Opacity)
			}
			Expect(dim).To(BeNumerically("<=", 0.4))

			host.ScrollTo(400)
			host.Advance(frame)
			var bright float64
			for _, g := range surface.glyphs {
				bright = max(bright, g.Opacity)
			}
			Expect(bright).To(BeNumerically(">", dim))
		})

		It("clamps intensity into [0,1]", func() {
			opts := renderer.DefaultOptions()
			opts.Intensity = 7
			r.Mount(opts)
			host.ScrollTo(1000)
			host.Advance(frame)
			for _, g := range surface.glyphs {
				Expect(g.Opacity).To(BeNumerically("<=", field.MaxOpacity))
				Expect(g.Opacity).To(BeNumerically(">=", 0))
			}
		})
	})

	It("treats a NaN intensity as zero", func() {
		opts := renderer.DefaultOptions()
		opts.Intensity = math.NaN()
		r.Mount(opts)
		host.Advance(frame)
		Expect(surface.glyphs).NotTo(BeEmpty())
		for _, g := range surface.glyphs {
			Expect(math.IsNaN(g.Opacity)).To(BeFalse())
			Expect(g.Opacity).To(BeZero())
		}
	})

	Describe("Handle", func() {
		It("ignores repeated Close calls", func() {
			r.Mount(renderer.DefaultOptions())
			r.Unmount()
			r.Unmount()
			_, frames := host.Listeners()
			Expect(frames).To(BeZero())
		})

		It("schedules nothing when unmounted during a frame", func() {
			s := &unmountingSurface{}
			h := renderer.NewVirtualHost(s, 360, 180)
			rr := renderer.New(h, nil)
			s.unmount = rr.Unmount
			rr.Mount(renderer.DefaultOptions())

			Expect(h.Advance(frame)).To(Equal(1))
			Expect(rr.Mounted()).To(BeFalse())
			inputs, frames := h.Listeners()
			Expect(inputs).To(BeZero())
			Expect(frames).To(BeZero())
			Expect(h.Advance(frame)).To(BeZero())
		})
	})
})

// unmountingSurface unmounts its renderer on the first glyph it receives.
type unmountingSurface struct {
	unmount func()
	done    bool
}

func (s *unmountingSurface) Clear() {}

func (s *unmountingSurface) DrawGlyph(field.Glyph) {
	if !s.done {
		s.done = true
		s.unmount()
	}
}
