package motion

import (
	"context"
	"math"
	"time"

	"github.com/tanema/gween/ease"
	"github.com/zoobzio/capitan"
)

// DefaultCounterDuration is how long a counter takes to go from start to end.
const DefaultCounterDuration = 2 * time.Second

// CounterOption configures a CounterAnimator.
type CounterOption func(*CounterAnimator)

// WithStart sets the value the counter starts from. The default is 0.
func WithStart(v float64) CounterOption {
	return func(a *CounterAnimator) {
		a.start = v
	}
}

// WithDuration sets the animation duration.
func WithDuration(d time.Duration) CounterOption {
	return func(a *CounterAnimator) {
		a.duration = d
	}
}

// WithTrigger sets whether the counter runs. A counter created with
// WithTrigger(false) holds its start value until SetTrigger(true).
func WithTrigger(on bool) CounterOption {
	return func(a *CounterAnimator) {
		a.trigger = on
	}
}

// WithEasing replaces the easing curve with a gween easing function. The
// default curve is an ease-out quadratic, p*(2-p), evaluated in float64.
// A nil fn restores the default.
func WithEasing(fn ease.TweenFunc) CounterOption {
	return func(a *CounterAnimator) {
		a.easing = fn
	}
}

// WithCounterChange registers fn to run whenever the value changes.
func WithCounterChange(fn func(float64)) CounterOption {
	return func(a *CounterAnimator) {
		a.onChange = fn
	}
}

// CounterAnimator counts from a start value to an end value over a duration,
// one step per frame, for statistics that tick up when scrolled into view.
// Values are floored to whole numbers; the last frame lands on end exactly.
//
// Changing any input cancels the pending frame and restarts the count, so
// two animation loops never overlap.
type CounterAnimator struct {
	frames   FrameScheduler
	start    float64
	end      float64
	duration time.Duration
	trigger  bool
	easing   ease.TweenFunc // nil: p*(2-p) in float64
	onChange func(float64)

	value     float64
	pending   FrameHandle
	firstTime time.Time
	hasFirst  bool
	running   bool
	done      bool
	closed    bool

	// gen is bumped on every restart; callbacks from older generations
	// are ignored even if the scheduler delivers them after Cancel.
	gen uint64
}

// NewCounterAnimator creates a counter toward end and, if triggered,
// requests its first frame.
func NewCounterAnimator(frames FrameScheduler, end float64, opts ...CounterOption) *CounterAnimator {
	a := &CounterAnimator{
		frames:   frames,
		end:      end,
		duration: DefaultCounterDuration,
		trigger:  true,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.value = a.start
	a.restart()
	return a
}

// Value returns the current count.
func (a *CounterAnimator) Value() float64 {
	return a.value
}

// Done reports whether the counter has reached its end value.
func (a *CounterAnimator) Done() bool {
	return a.done
}

// Set changes the end value, start value and duration. The counter restarts
// only if one of them differs from the current inputs.
func (a *CounterAnimator) Set(end, start float64, duration time.Duration) {
	if end == a.end && start == a.start && duration == a.duration {
		return
	}
	a.end, a.start, a.duration = end, start, duration
	a.restart()
}

// SetTrigger starts or stops the counter. Turning the trigger off resets the
// value to start.
func (a *CounterAnimator) SetTrigger(on bool) {
	if on == a.trigger {
		return
	}
	a.trigger = on
	a.restart()
}

// Close cancels any pending frame. The value is left where it is.
func (a *CounterAnimator) Close() {
	a.cancel()
	a.closed = true
}

// restart tears down the current loop and, if triggered, begins a new one.
func (a *CounterAnimator) restart() {
	if a.closed {
		return
	}
	a.cancel()
	a.hasFirst = false
	a.done = false
	a.setValue(a.start)
	if !a.trigger || a.frames == nil {
		return
	}
	a.running = true
	capitan.Emit(context.Background(), CounterStarted, KeyDuration.Field(a.duration))
	a.schedule()
}

// cancel drops the pending frame and invalidates in-flight callbacks.
func (a *CounterAnimator) cancel() {
	a.gen++
	if a.pending != nil {
		a.pending.Cancel()
		a.pending = nil
	}
	if a.running && !a.done {
		capitan.Emit(context.Background(), CounterCancelled, KeyValue.Field(int(a.value)))
	}
	a.running = false
}

func (a *CounterAnimator) schedule() {
	gen := a.gen
	a.pending = a.frames.RequestFrame(func(now time.Time) {
		if gen != a.gen {
			return
		}
		a.pending = nil
		a.step(now)
	})
}

// step computes the value for one frame and schedules the next until the
// duration has elapsed.
func (a *CounterAnimator) step(now time.Time) {
	if !a.hasFirst {
		a.firstTime = now
		a.hasFirst = true
	}
	elapsed := now.Sub(a.firstTime)

	p := 1.0
	if a.duration > 0 {
		p = min(float64(elapsed)/float64(a.duration), 1)
	}

	if p >= 1 {
		a.setValue(a.end)
		a.done = true
		a.running = false
		capitan.Emit(context.Background(), CounterCompleted, KeyValue.Field(int(a.end)))
		return
	}

	eased := p * (2 - p)
	if a.easing != nil {
		eased = float64(a.easing(float32(p), 0, 1, 1))
	}
	v := math.Floor(a.start + eased*(a.end-a.start))
	// Flooring can step past a fractional end when counting down.
	a.setValue(min(max(v, min(a.start, a.end)), max(a.start, a.end)))
	a.schedule()
}

func (a *CounterAnimator) setValue(v float64) {
	if v == a.value {
		return
	}
	a.value = v
	if a.onChange != nil {
		a.onChange(v)
	}
}
