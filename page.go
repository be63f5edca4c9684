package motion

import (
	"log"
	"time"

	"github.com/zoobzio/clockz"
)

// Section is a rectangular block of a Page, such as a hero banner or a
// statistics strip. Sections implement Element.
type Section struct {
	name    string
	bounds  Rect
	page    *Page
	removed bool
}

// Bounds returns the section's rectangle in document coordinates.
func (s *Section) Bounds() Rect { return s.bounds }

// SetBounds moves or resizes the section. Intersections are re-evaluated on
// the next Update.
func (s *Section) SetBounds(r Rect) {
	s.bounds = r
	if s.page != nil {
		s.page.dirty = true
	}
}

// Name returns the name given to NewSection.
func (s *Section) Name() string { return s.name }

// String returns the section name.
func (s *Section) String() string { return s.name }

// PageOption configures a Page.
type PageOption func(*Page)

// WithClock sets the clock used for frame timestamps and update deltas.
// Use this with clockz.NewFakeClock for deterministic tests.
func WithClock(clock clockz.Clock) PageOption {
	return func(p *Page) {
		p.clock = clock
	}
}

// WithDocumentHeight sets the initial document height. It defaults to the
// viewport height.
func WithDocumentHeight(h float64) PageOption {
	return func(p *Page) {
		p.docHeight = h
	}
}

// Page is an in-memory document with a scrollable viewport. It implements
// IntersectionHost, ScrollHost and FrameScheduler, so it can drive every
// hook in this package without a browser. A game loop (see package
// ebitenhost) or a test calls Update once per frame.
//
// Callbacks run on the goroutine that calls Update, in registration order.
// A Page is not safe for concurrent use.
type Page struct {
	width, height float64
	docHeight     float64
	scroll        Vec2
	clock         clockz.Clock
	lastUpdate    time.Time
	started       bool

	sections []*Section
	handlers handlerRegistry
	dirty    bool

	injectQueue []syntheticEvent
	scrollTween *scrollAnim
	runner      *ScriptRunner
	sink        EventSink
	debug       bool
}

// NewPage creates a page with a viewport of the given size, scrolled to the
// top.
func NewPage(width, height float64, opts ...PageOption) *Page {
	p := &Page{
		width:     width,
		height:    height,
		docHeight: height,
		clock:     clockz.RealClock,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewSection adds a section with the given bounds to the page.
func (p *Page) NewSection(name string, bounds Rect) *Section {
	s := &Section{name: name, bounds: bounds, page: p}
	p.sections = append(p.sections, s)
	p.dirty = true
	return s
}

// RemoveSection detaches s from the page. Watchers on s stop receiving
// notifications.
func (p *Page) RemoveSection(s *Section) {
	for i, cur := range p.sections {
		if cur == s {
			p.sections = append(p.sections[:i], p.sections[i+1:]...)
			s.removed = true
			s.page = nil
			p.dirty = true
			return
		}
	}
}

// Sections returns the sections in creation order.
func (p *Page) Sections() []*Section {
	return p.sections
}

// Section returns the section with the given name, or nil.
func (p *Page) Section(name string) *Section {
	for _, s := range p.sections {
		if s.name == name {
			return s
		}
	}
	return nil
}

// Size returns the viewport size.
func (p *Page) Size() (width, height float64) {
	return p.width, p.height
}

// DocumentHeight returns the height of the document.
func (p *Page) DocumentHeight() float64 {
	return p.docHeight
}

// ScrollPosition returns the current scroll offset.
func (p *Page) ScrollPosition() Vec2 {
	return p.scroll
}

// SetEventSink forwards viewport and scroll events to sink. Pass nil to stop.
func (p *Page) SetEventSink(sink EventSink) {
	p.sink = sink
}

// SetDebugMode enables per-update stats on stderr.
func (p *Page) SetDebugMode(enabled bool) {
	p.debug = enabled
}

// Resize changes the viewport size and re-clamps the scroll position.
func (p *Page) Resize(width, height float64) {
	if width == p.width && height == p.height {
		return
	}
	p.width, p.height = width, height
	p.dirty = true
	p.emit(Event{Type: EventResize, Width: width, Height: height, ScrollX: p.scroll.X, ScrollY: p.scroll.Y})
	p.setScroll(p.scroll.X, p.scroll.Y)
}

// SetDocumentHeight changes the document height and re-clamps the scroll
// position.
func (p *Page) SetDocumentHeight(h float64) {
	p.docHeight = h
	p.dirty = true
	p.setScroll(p.scroll.X, p.scroll.Y)
}

// ScrollTo jumps to (x, y), clamped to the scrollable range. Any smooth
// scroll in progress is abandoned.
func (p *Page) ScrollTo(x, y float64) {
	p.scrollTween = nil
	p.setScroll(x, y)
}

// ScrollBy scrolls relative to the current position.
func (p *Page) ScrollBy(dx, dy float64) {
	p.ScrollTo(p.scroll.X+dx, p.scroll.Y+dy)
}

// maxScrollY is the largest vertical offset that keeps the viewport inside
// the document.
func (p *Page) maxScrollY() float64 {
	return max(p.docHeight-p.height, 0)
}

// setScroll applies a clamped scroll position and notifies scroll listeners
// if it changed.
func (p *Page) setScroll(x, y float64) {
	x = max(x, 0)
	y = min(max(y, 0), p.maxScrollY())
	if x == p.scroll.X && y == p.scroll.Y {
		return
	}
	p.scroll = Vec2{X: x, Y: y}
	p.dirty = true
	p.emit(Event{Type: EventScroll, ScrollX: x, ScrollY: y, Width: p.width, Height: p.height})

	handlers := make([]*scrollHandler, len(p.handlers.scroll))
	copy(handlers, p.handlers.scroll)
	for _, h := range handlers {
		// A handler may remove a later one during this pass.
		if h.removed {
			continue
		}
		h.fn()
	}
}

// --- Host capabilities ---

// ScrollMetrics implements ScrollHost.
func (p *Page) ScrollMetrics() ScrollMetrics {
	return ScrollMetrics{
		X:              p.scroll.X,
		Y:              p.scroll.Y,
		ViewportHeight: p.height,
		DocumentHeight: p.docHeight,
	}
}

// OnScroll implements ScrollHost. fn runs each time the scroll position
// changes.
func (p *Page) OnScroll(fn func()) Subscription {
	return p.handlers.addScroll(fn)
}

// Observe implements IntersectionHost. The first notification is delivered
// on the next Update; later ones whenever the element crosses the threshold.
// An unparsable root margin is logged and treated as "0px".
func (p *Page) Observe(el Element, opts IntersectionOptions, fn func(IntersectionEntry)) Subscription {
	margin, err := ParseRootMargin(opts.RootMargin)
	if err != nil {
		log.Printf("[motion] Warning: %v (using 0px)", err)
	}
	p.dirty = true
	h := p.handlers.addWatcher(&intersectionWatcher{
		el:        el,
		threshold: clamp01(opts.Threshold),
		margin:    margin,
		fn:        fn,
	})
	if p.debug {
		p.debugCheckWatchers()
	}
	return h
}

// RequestFrame implements FrameScheduler. fn runs during the next Update
// with that update's timestamp. Frames requested from inside a frame
// callback run on the following Update.
func (p *Page) RequestFrame(fn func(now time.Time)) FrameHandle {
	return p.handlers.addFrame(fn)
}

// --- Update loop ---

// Update advances the page by one frame: it steps the attached script,
// consumes one injected event, advances smooth scrolling, runs frame
// callbacks and delivers intersection changes.
func (p *Page) Update() {
	now := p.clock.Now()
	var dt float32
	if p.started {
		dt = float32(now.Sub(p.lastUpdate).Seconds())
	}
	p.started = true
	p.lastUpdate = now

	var stats debugStats
	if p.runner != nil {
		p.runner.step(p)
	}
	stats.injected = p.processInjectedEvent()
	p.updateScrollTween(dt)
	stats.frames = p.flushFrames(now)
	stats.notified = p.updateIntersections()
	stats.scrollListeners = len(p.handlers.scroll)
	stats.watchers = len(p.handlers.watchers)
	p.debugLog(stats)
}

// flushFrames runs the frame callbacks that were pending when the update
// began.
func (p *Page) flushFrames(now time.Time) int {
	if len(p.handlers.frames) == 0 {
		return 0
	}
	pending := p.handlers.frames
	p.handlers.frames = nil
	ran := 0
	for _, req := range pending {
		if req.cancelled {
			continue
		}
		req.cancelled = true
		req.fn(now)
		ran++
	}
	return ran
}

// viewportRect returns the visible region of the document.
func (p *Page) viewportRect() Rect {
	return Rect{X: p.scroll.X, Y: p.scroll.Y, Width: p.width, Height: p.height}
}

// updateIntersections notifies watchers whose intersecting state changed,
// and watchers that have not received their first notification.
func (p *Page) updateIntersections() int {
	if len(p.handlers.watchers) == 0 {
		p.dirty = false
		return 0
	}
	pendingFirst := false
	for _, w := range p.handlers.watchers {
		if !w.reported {
			pendingFirst = true
			break
		}
	}
	if !p.dirty && !pendingFirst {
		return 0
	}
	p.dirty = false

	watchers := make([]*intersectionWatcher, len(p.handlers.watchers))
	copy(watchers, p.handlers.watchers)
	view := p.viewportRect()
	notified := 0
	for _, w := range watchers {
		if w.removed {
			continue
		}
		if s, ok := w.el.(*Section); ok && s.removed {
			continue
		}
		ratio, intersecting := intersect(w.el.Bounds(), view.Grow(w.margin.Resolve(p.width, p.height)), w.threshold)
		if w.reported && intersecting == w.intersecting {
			continue
		}
		w.reported = true
		w.intersecting = intersecting
		notified++
		p.emitViewport(w.el, intersecting, ratio)
		w.fn(IntersectionEntry{Target: w.el, IsIntersecting: intersecting, Ratio: ratio})
	}
	return notified
}

// intersect returns the visible fraction of el inside root and whether it
// meets threshold. A zero threshold counts any contact, including a shared
// edge. Elements without area are visible when their origin is inside root.
func intersect(el, root Rect, threshold float64) (float64, bool) {
	if el.Area() <= 0 {
		if root.Contains(el.X, el.Y) {
			return 1, true
		}
		return 0, false
	}
	ratio := el.Intersection(root).Area() / el.Area()
	if threshold == 0 {
		return ratio, el.Intersects(root)
	}
	return ratio, ratio >= threshold
}

func (p *Page) emit(e Event) {
	if p.sink != nil {
		p.sink.EmitEvent(e)
	}
}

func (p *Page) emitViewport(el Element, intersecting bool, ratio float64) {
	if p.sink == nil {
		return
	}
	t := EventLeaveViewport
	if intersecting {
		t = EventEnterViewport
	}
	p.emit(Event{
		Type:    t,
		Element: elementName(el),
		Ratio:   ratio,
		ScrollX: p.scroll.X,
		ScrollY: p.scroll.Y,
		Width:   p.width,
		Height:  p.height,
	})
}
