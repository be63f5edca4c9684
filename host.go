package motion

import "time"

// Element is anything an IntersectionHost can watch. Implementations must be
// comparable (pointer types in practice): observers compare elements to
// detect when a reference starts pointing somewhere else.
type Element interface {
	// Bounds returns the element's rectangle in document coordinates.
	Bounds() Rect
}

// ElementRef is a mutable reference to the element a hook should watch. The
// owning component points it at an element once that element exists and
// calls the hook's Sync method after changing it.
type ElementRef struct {
	el Element
}

// NewElementRef returns a reference to el, which may be nil.
func NewElementRef(el Element) *ElementRef {
	return &ElementRef{el: el}
}

// Current returns the referenced element or nil.
func (r *ElementRef) Current() Element {
	if r == nil {
		return nil
	}
	return r.el
}

// Set points the reference at el.
func (r *ElementRef) Set(el Element) {
	r.el = el
}

// Subscription is returned by every host registration. Remove detaches the
// callback; calling it more than once is harmless.
type Subscription interface {
	Remove()
}

// IntersectionOptions configures one intersection watcher.
type IntersectionOptions struct {
	// Threshold is the visible fraction of the element, in [0, 1], at which
	// the element counts as intersecting.
	Threshold float64
	// RootMargin grows or shrinks the viewport before intersections are
	// computed, in CSS shorthand ("0px", "-10% 0px").
	RootMargin string
}

// IntersectionEntry is delivered each time an element's intersecting state
// is reported.
type IntersectionEntry struct {
	Target         Element
	IsIntersecting bool
	// Ratio is the visible fraction of the element's area.
	Ratio float64
}

// IntersectionHost delivers intersection notifications for elements.
type IntersectionHost interface {
	Observe(el Element, opts IntersectionOptions, fn func(IntersectionEntry)) Subscription
}

// ScrollMetrics is a snapshot of the document's scroll geometry.
type ScrollMetrics struct {
	X, Y           float64
	ViewportHeight float64
	DocumentHeight float64
}

// ScrollHost delivers passive scroll notifications. Callbacks carry no data;
// receivers sample ScrollMetrics themselves.
type ScrollHost interface {
	ScrollMetrics() ScrollMetrics
	OnScroll(fn func()) Subscription
}

// FrameHandle cancels a pending frame request.
type FrameHandle interface {
	Cancel()
}

// FrameScheduler runs callbacks once before the next frame is drawn, passing
// the frame timestamp.
type FrameScheduler interface {
	RequestFrame(fn func(now time.Time)) FrameHandle
}

// EventSink receives viewport and scroll events from a Page, for example to
// forward them into an ECS world.
type EventSink interface {
	EmitEvent(event Event)
}

// EventType identifies a kind of Event.
type EventType uint8

const (
	EventEnterViewport EventType = iota // an observed element started intersecting
	EventLeaveViewport                  // an observed element stopped intersecting
	EventScroll                         // the page scroll position changed
	EventResize                         // the viewport size changed
)

// String returns the event name used in logs.
func (t EventType) String() string {
	switch t {
	case EventEnterViewport:
		return "enter-viewport"
	case EventLeaveViewport:
		return "leave-viewport"
	case EventScroll:
		return "scroll"
	case EventResize:
		return "resize"
	default:
		return "unknown"
	}
}

// Event carries page events to an EventSink.
type Event struct {
	Type EventType
	// Element is set for viewport events.
	Element string
	Ratio   float64
	// ScrollX and ScrollY are the scroll position after the event.
	ScrollX float64
	ScrollY float64
	// Width and Height are the viewport size after the event.
	Width  float64
	Height float64
}
