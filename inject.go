package motion

type syntheticKind uint8

const (
	syntheticScroll syntheticKind = iota
	syntheticResize
	syntheticDocumentHeight
)

// syntheticEvent is a queued environment change. Scroll events carry an
// absolute position so a sweep replays exactly regardless of clamping.
type syntheticEvent struct {
	kind syntheticKind
	x, y float64
	w, h float64
}

// InjectScroll queues a scroll to (x, y). The event is consumed on the next
// Update, the way a real scroll event arrives between frames.
func (p *Page) InjectScroll(x, y float64) {
	p.injectQueue = append(p.injectQueue, syntheticEvent{kind: syntheticScroll, x: x, y: y})
}

// InjectScrollBy queues a scroll relative to the position the page will have
// once every event already queued has been applied.
func (p *Page) InjectScrollBy(dx, dy float64) {
	x, y := p.queuedScroll()
	p.InjectScroll(x+dx, y+dy)
}

// InjectScrollSweep queues a scroll from fromY to toY spread linearly over
// the given number of frames. Minimum frames is 1 (a single jump to toY).
func (p *Page) InjectScrollSweep(fromY, toY float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	x, _ := p.queuedScroll()
	if frames == 1 {
		p.InjectScroll(x, toY)
		return
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		p.InjectScroll(x, fromY+(toY-fromY)*t)
	}
}

// InjectResize queues a viewport resize.
func (p *Page) InjectResize(width, height float64) {
	p.injectQueue = append(p.injectQueue, syntheticEvent{kind: syntheticResize, w: width, h: height})
}

// InjectDocumentHeight queues a change of document height, as when content
// loads below the fold.
func (p *Page) InjectDocumentHeight(h float64) {
	p.injectQueue = append(p.injectQueue, syntheticEvent{kind: syntheticDocumentHeight, h: h})
}

// PendingEvents returns the number of injected events not yet consumed.
func (p *Page) PendingEvents() int {
	return len(p.injectQueue)
}

// queuedScroll returns the scroll position after the queued scroll events,
// ignoring clamping.
func (p *Page) queuedScroll() (float64, float64) {
	x, y := p.scroll.X, p.scroll.Y
	for _, evt := range p.injectQueue {
		if evt.kind == syntheticScroll {
			x, y = evt.x, evt.y
		}
	}
	return x, y
}

// processInjectedEvent pops one event from the inject queue and applies it.
// Returns true if an event was consumed.
func (p *Page) processInjectedEvent() bool {
	if len(p.injectQueue) == 0 {
		return false
	}
	evt := p.injectQueue[0]
	copy(p.injectQueue, p.injectQueue[1:])
	p.injectQueue = p.injectQueue[:len(p.injectQueue)-1]

	switch evt.kind {
	case syntheticScroll:
		p.ScrollTo(evt.x, evt.y)
	case syntheticResize:
		p.Resize(evt.w, evt.h)
	case syntheticDocumentHeight:
		p.SetDocumentHeight(evt.h)
	}
	return true
}
