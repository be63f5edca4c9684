package motion

import (
	"context"
	"fmt"

	"github.com/zoobzio/capitan"
)

// DefaultViewportThreshold is the visible fraction at which an element
// counts as in view.
const DefaultViewportThreshold = 0.1

// DefaultRootMargin leaves the viewport unchanged.
const DefaultRootMargin = "0px"

// ViewportState is the visibility of one observed element.
type ViewportState struct {
	// InView reports whether the element currently intersects the viewport.
	InView bool
	// HasAnimated becomes true the first time the element is in view and
	// stays true for the life of the observer.
	HasAnimated bool
}

// ViewportOption configures a ViewportObserver.
type ViewportOption func(*ViewportObserver)

// WithThreshold sets the visible fraction, clamped to [0, 1].
func WithThreshold(t float64) ViewportOption {
	return func(o *ViewportObserver) {
		o.threshold = clamp01(t)
	}
}

// WithRootMargin sets the CSS-style margin applied to the viewport.
func WithRootMargin(m string) ViewportOption {
	return func(o *ViewportObserver) {
		o.rootMargin = m
	}
}

// WithViewportChange registers fn to run after every state change.
func WithViewportChange(fn func(ViewportState)) ViewportOption {
	return func(o *ViewportObserver) {
		o.onChange = fn
	}
}

// ViewportObserver tracks whether the element behind an ElementRef is in
// view. Components use InView to toggle between variants and HasAnimated to
// play an entrance animation once.
//
// A ViewportObserver is not safe for concurrent use; all calls and host
// callbacks are expected on the host's update loop.
type ViewportObserver struct {
	host       IntersectionHost
	ref        *ElementRef
	threshold  float64
	rootMargin string
	onChange   func(ViewportState)

	state ViewportState
	sub   Subscription

	// inputs of the live subscription, compared by Sync
	observed          Element
	observedThreshold float64
	observedMargin    string
	closed            bool
}

// NewViewportObserver creates an observer and subscribes to the element ref
// currently points at. When ref is empty nothing is attached until Sync is
// called with a populated ref.
func NewViewportObserver(host IntersectionHost, ref *ElementRef, opts ...ViewportOption) *ViewportObserver {
	o := &ViewportObserver{
		host:       host,
		ref:        ref,
		threshold:  DefaultViewportThreshold,
		rootMargin: DefaultRootMargin,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.subscribe()
	return o
}

// State returns the current visibility.
func (o *ViewportObserver) State() ViewportState {
	return o.state
}

// InView is shorthand for State().InView.
func (o *ViewportObserver) InView() bool { return o.state.InView }

// HasAnimated is shorthand for State().HasAnimated.
func (o *ViewportObserver) HasAnimated() bool { return o.state.HasAnimated }

// SetThreshold changes the threshold and re-subscribes if it differs.
func (o *ViewportObserver) SetThreshold(t float64) {
	o.threshold = clamp01(t)
	o.Sync()
}

// SetRootMargin changes the root margin and re-subscribes if it differs.
func (o *ViewportObserver) SetRootMargin(m string) {
	o.rootMargin = m
	o.Sync()
}

// Sync re-subscribes when the referenced element, threshold or root margin
// changed since the last subscription. The previous watcher is detached
// first. Sync is a no-op after Close.
func (o *ViewportObserver) Sync() {
	if o.closed {
		return
	}
	el := o.ref.Current()
	if o.sub != nil && el == o.observed &&
		o.threshold == o.observedThreshold && o.rootMargin == o.observedMargin {
		return
	}
	if o.sub == nil && el == nil {
		return
	}
	o.unsubscribe()
	o.subscribe()
}

// Close detaches the watcher. State keeps its last values.
func (o *ViewportObserver) Close() {
	o.unsubscribe()
	o.closed = true
}

func (o *ViewportObserver) subscribe() {
	el := o.ref.Current()
	if el == nil || o.host == nil {
		return
	}
	o.observed = el
	o.observedThreshold = o.threshold
	o.observedMargin = o.rootMargin
	o.sub = o.host.Observe(el, IntersectionOptions{
		Threshold:  o.threshold,
		RootMargin: o.rootMargin,
	}, o.handle)
	debugf("viewport: observing %s threshold=%.2f margin=%q", elementName(el), o.threshold, o.rootMargin)
}

func (o *ViewportObserver) unsubscribe() {
	if o.sub == nil {
		return
	}
	o.sub.Remove()
	o.sub = nil
	o.observed = nil
}

// handle applies one intersection notification. Notifications for elements
// other than the observed one are stale deliveries and are dropped.
func (o *ViewportObserver) handle(entry IntersectionEntry) {
	if o.observed == nil || (entry.Target != nil && entry.Target != o.observed) {
		return
	}
	prev := o.state
	if entry.IsIntersecting {
		o.state.InView = true
		o.state.HasAnimated = true
	} else {
		o.state.InView = false
	}
	if o.state == prev {
		return
	}
	name := elementName(o.observed)
	if o.state.InView {
		capitan.Emit(context.Background(), ViewportEntered, KeyElement.Field(name))
	} else {
		capitan.Emit(context.Background(), ViewportExited, KeyElement.Field(name))
	}
	if o.onChange != nil {
		o.onChange(o.state)
	}
}

func elementName(el Element) string {
	if s, ok := el.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", el)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
