package motion

import (
	"math"
	"testing"
	"time"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// box is a minimal Element for tests.
type box struct {
	name string
	r    Rect
}

func (b *box) Bounds() Rect   { return b.r }
func (b *box) String() string { return b.name }

// --- Intersection host fake ---

type fakeWatch struct {
	el      Element
	opts    IntersectionOptions
	fn      func(IntersectionEntry)
	removed bool
}

func (w *fakeWatch) Remove() { w.removed = true }

func (w *fakeWatch) fire(intersecting bool) {
	ratio := 0.0
	if intersecting {
		ratio = 1
	}
	w.fn(IntersectionEntry{Target: w.el, IsIntersecting: intersecting, Ratio: ratio})
}

type fakeIntersectionHost struct {
	watches []*fakeWatch
}

func (h *fakeIntersectionHost) Observe(el Element, opts IntersectionOptions, fn func(IntersectionEntry)) Subscription {
	w := &fakeWatch{el: el, opts: opts, fn: fn}
	h.watches = append(h.watches, w)
	return w
}

func (h *fakeIntersectionHost) active() []*fakeWatch {
	var out []*fakeWatch
	for _, w := range h.watches {
		if !w.removed {
			out = append(out, w)
		}
	}
	return out
}

// only returns the single active watch or fails the test.
func (h *fakeIntersectionHost) only(t *testing.T) *fakeWatch {
	t.Helper()
	active := h.active()
	if len(active) != 1 {
		t.Fatalf("expected 1 active watcher, got %d", len(active))
	}
	return active[0]
}

// --- Scroll host fake ---

type fakeScrollSub struct {
	fn      func()
	removed bool
}

func (s *fakeScrollSub) Remove() { s.removed = true }

type fakeScrollHost struct {
	m    ScrollMetrics
	subs []*fakeScrollSub
}

func (h *fakeScrollHost) ScrollMetrics() ScrollMetrics { return h.m }

func (h *fakeScrollHost) OnScroll(fn func()) Subscription {
	s := &fakeScrollSub{fn: fn}
	h.subs = append(h.subs, s)
	return s
}

func (h *fakeScrollHost) scrollTo(y float64) {
	h.m.Y = y
	for _, s := range h.subs {
		if !s.removed {
			s.fn()
		}
	}
}

func (h *fakeScrollHost) activeCount() int {
	n := 0
	for _, s := range h.subs {
		if !s.removed {
			n++
		}
	}
	return n
}

// --- Frame scheduler fake ---

type fakeFrame struct {
	fn        func(time.Time)
	cancelled bool
}

func (f *fakeFrame) Cancel() { f.cancelled = true }

type fakeFrames struct {
	pending []*fakeFrame
}

func (s *fakeFrames) RequestFrame(fn func(time.Time)) FrameHandle {
	f := &fakeFrame{fn: fn}
	s.pending = append(s.pending, f)
	return f
}

// run delivers every pending, uncancelled frame with timestamp now.
// Frames requested during delivery wait for the next run.
func (s *fakeFrames) run(now time.Time) int {
	pending := s.pending
	s.pending = nil
	ran := 0
	for _, f := range pending {
		if f.cancelled {
			continue
		}
		f.fn(now)
		ran++
	}
	return ran
}

func (s *fakeFrames) live() int {
	n := 0
	for _, f := range s.pending {
		if !f.cancelled {
			n++
		}
	}
	return n
}
