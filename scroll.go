package motion

import (
	"context"
	"math"

	"github.com/zoobzio/capitan"
)

// DefaultDirectionThreshold is the vertical distance, in pixels, the page
// must travel from the last recorded position before the direction flips.
const DefaultDirectionThreshold = 50

const (
	atTopTolerance    = 5
	atBottomTolerance = 10
)

// Direction is the vertical scroll direction.
type Direction uint8

const (
	DirectionNone Direction = iota // no movement past the threshold yet
	DirectionUp                    // content moving toward the top of the document
	DirectionDown                  // content moving toward the bottom of the document
)

// String returns "none", "up" or "down".
func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	default:
		return "none"
	}
}

// ScrollState is derived from the document's scroll position.
type ScrollState struct {
	Position  Vec2
	Direction Direction
	// IsAtTop is true within a few pixels of the top.
	IsAtTop bool
	// IsAtBottom is true within a few pixels of the end of the document.
	IsAtBottom bool
	// ScrollPercentage is the position within the scrollable range, 0-100.
	ScrollPercentage float64
}

// ScrollOption configures a ScrollTracker.
type ScrollOption func(*ScrollTracker)

// WithDirectionThreshold sets the hysteresis distance in pixels. Negative
// values are treated as zero.
func WithDirectionThreshold(px float64) ScrollOption {
	return func(t *ScrollTracker) {
		t.threshold = max(px, 0)
	}
}

// WithScrollChange registers fn to run after every scroll sample.
func WithScrollChange(fn func(ScrollState)) ScrollOption {
	return func(t *ScrollTracker) {
		t.onChange = fn
	}
}

// ScrollTracker converts scroll notifications into a ScrollState. The
// direction only changes once the page has moved more than the threshold
// away from the last position at which a direction was recorded, which keeps
// headers from flickering on small movements.
//
// A ScrollTracker is not safe for concurrent use.
type ScrollTracker struct {
	host      ScrollHost
	threshold float64
	onChange  func(ScrollState)

	state ScrollState
	lastY float64
	sub   Subscription
}

// NewScrollTracker subscribes to host and samples the current position
// immediately.
func NewScrollTracker(host ScrollHost, opts ...ScrollOption) *ScrollTracker {
	t := &ScrollTracker{
		host:      host,
		threshold: DefaultDirectionThreshold,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.subscribe()
	return t
}

// State returns the latest derived state.
func (t *ScrollTracker) State() ScrollState {
	return t.state
}

// SetDirectionThreshold changes the hysteresis distance and re-subscribes.
func (t *ScrollTracker) SetDirectionThreshold(px float64) {
	px = max(px, 0)
	if px == t.threshold && t.sub != nil {
		return
	}
	t.threshold = px
	t.unsubscribe()
	t.subscribe()
}

// Close stops listening for scroll notifications.
func (t *ScrollTracker) Close() {
	t.unsubscribe()
}

func (t *ScrollTracker) subscribe() {
	if t.host == nil {
		return
	}
	t.sub = t.host.OnScroll(t.sample)
	t.sample()
}

func (t *ScrollTracker) unsubscribe() {
	if t.sub == nil {
		return
	}
	t.sub.Remove()
	t.sub = nil
}

// sample reads the host's metrics and updates the state.
func (t *ScrollTracker) sample() {
	m := t.host.ScrollMetrics()
	prevDir := t.state.Direction

	if math.Abs(m.Y-t.lastY) > t.threshold {
		if m.Y > t.lastY {
			t.state.Direction = DirectionDown
		} else {
			t.state.Direction = DirectionUp
		}
		t.lastY = m.Y
	}

	t.state.Position = Vec2{X: m.X, Y: m.Y}
	t.state.IsAtTop = m.Y <= atTopTolerance
	t.state.IsAtBottom = m.DocumentHeight-(m.Y+m.ViewportHeight) <= atBottomTolerance
	t.state.ScrollPercentage = scrollPercentage(m)

	if t.state.Direction != prevDir {
		capitan.Emit(context.Background(), ScrollDirectionChanged,
			KeyDirection.Field(t.state.Direction.String()),
			KeyScrollY.Field(int(math.Round(m.Y))),
		)
	}
	if t.onChange != nil {
		t.onChange(t.state)
	}
}

// scrollPercentage reports how far through the scrollable range y is. A
// document that fits the viewport counts as fully scrolled.
func scrollPercentage(m ScrollMetrics) float64 {
	scrollable := m.DocumentHeight - m.ViewportHeight
	if scrollable <= 0 {
		return 100
	}
	return min(max(m.Y/scrollable*100, 0), 100)
}
