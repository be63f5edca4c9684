package motion

import (
	"math"
	"testing"
	"time"

	"github.com/tanema/gween/ease"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestCounterAnimatorProgress(t *testing.T) {
	frames := &fakeFrames{}
	c := NewCounterAnimator(frames, 100, WithDuration(time.Second))

	if frames.live() != 1 {
		t.Fatalf("pending frames = %d, want 1", frames.live())
	}

	tests := []struct {
		at   time.Duration
		want float64
	}{
		{0, 0},
		{250 * time.Millisecond, 43}, // 0.25*(2-0.25) = 0.4375
		{500 * time.Millisecond, 75},
		{750 * time.Millisecond, 93}, // 0.9375
	}
	for _, tt := range tests {
		frames.run(t0.Add(tt.at))
		if c.Value() != tt.want {
			t.Errorf("at %v: Value = %f, want %f", tt.at, c.Value(), tt.want)
		}
		if c.Done() {
			t.Errorf("at %v: Done = true", tt.at)
		}
	}

	frames.run(t0.Add(1200 * time.Millisecond))
	if c.Value() != 100 {
		t.Errorf("Value = %f, want 100", c.Value())
	}
	if !c.Done() {
		t.Error("Done = false after duration")
	}
	if frames.live() != 0 {
		t.Errorf("pending frames after completion = %d, want 0", frames.live())
	}
}

func TestCounterAnimatorDefaultEasingExact(t *testing.T) {
	frames := &fakeFrames{}
	c := NewCounterAnimator(frames, 100, WithDuration(time.Second))
	frames.run(t0)
	frames.run(t0.Add(100 * time.Millisecond))
	if c.Value() != 19 { // floor(0.1*1.9*100)
		t.Errorf("Value at 100ms = %f, want 19", c.Value())
	}
}

func TestCounterAnimatorMatchesQuadraticFormula(t *testing.T) {
	ends := []float64{100, 1000, 1e5, 1e7}
	for _, end := range ends {
		mismatches := 0
		for ms := 1; ms < 1000; ms++ {
			frames := &fakeFrames{}
			c := NewCounterAnimator(frames, end, WithDuration(time.Second))
			elapsed := time.Duration(ms) * time.Millisecond
			frames.run(t0)
			frames.run(t0.Add(elapsed))

			p := float64(elapsed) / float64(time.Second)
			want := math.Floor(p * (2 - p) * end)
			if c.Value() != want {
				if mismatches == 0 {
					t.Errorf("end=%g at %dms: Value = %f, want %f", end, ms, c.Value(), want)
				}
				mismatches++
			}
		}
		if mismatches > 0 {
			t.Errorf("end=%g: %d/999 frames differ from floor(p*(2-p)*end)", end, mismatches)
		}
	}
}

func TestCounterAnimatorFirstFrameIsOrigin(t *testing.T) {
	frames := &fakeFrames{}
	c := NewCounterAnimator(frames, 100, WithDuration(time.Second))

	// The clock starts at the first delivered frame, not at construction.
	frames.run(t0.Add(time.Hour))
	if c.Value() != 0 {
		t.Errorf("Value = %f on first frame, want 0", c.Value())
	}
	frames.run(t0.Add(time.Hour + 500*time.Millisecond))
	if c.Value() != 75 {
		t.Errorf("Value = %f, want 75", c.Value())
	}
}

func TestCounterAnimatorStart(t *testing.T) {
	frames := &fakeFrames{}
	c := NewCounterAnimator(frames, 200, WithStart(100), WithDuration(time.Second), WithEasing(ease.Linear))

	if c.Value() != 100 {
		t.Errorf("initial Value = %f, want 100", c.Value())
	}
	frames.run(t0)
	frames.run(t0.Add(300 * time.Millisecond))
	if c.Value() != 130 {
		t.Errorf("Value = %f, want 130", c.Value())
	}
}

func TestCounterAnimatorCountDown(t *testing.T) {
	frames := &fakeFrames{}
	c := NewCounterAnimator(frames, 9.5, WithStart(20), WithDuration(time.Second), WithEasing(ease.Linear))
	frames.run(t0)
	for ms := 100; ms < 1000; ms += 100 {
		frames.run(t0.Add(time.Duration(ms) * time.Millisecond))
		if c.Value() < 9.5 || c.Value() > 20 {
			t.Fatalf("at %dms: Value = %f outside [9.5, 20]", ms, c.Value())
		}
	}
	frames.run(t0.Add(time.Second))
	if c.Value() != 9.5 {
		t.Errorf("final Value = %f, want 9.5", c.Value())
	}
}

func TestCounterAnimatorNotTriggered(t *testing.T) {
	frames := &fakeFrames{}
	c := NewCounterAnimator(frames, 100, WithTrigger(false), WithStart(5))
	if frames.live() != 0 {
		t.Fatalf("pending frames = %d, want 0", frames.live())
	}
	if c.Value() != 5 {
		t.Errorf("Value = %f, want 5", c.Value())
	}

	c.SetTrigger(true)
	if frames.live() != 1 {
		t.Fatalf("pending frames after trigger = %d, want 1", frames.live())
	}
	frames.run(t0)
	frames.run(t0.Add(time.Second))
	c.SetTrigger(false)
	if c.Value() != 5 {
		t.Errorf("Value after trigger off = %f, want 5", c.Value())
	}
	if frames.live() != 0 {
		t.Errorf("pending frames after trigger off = %d, want 0", frames.live())
	}
}

func TestCounterAnimatorZeroDuration(t *testing.T) {
	frames := &fakeFrames{}
	c := NewCounterAnimator(frames, 42, WithDuration(0))
	frames.run(t0)
	if c.Value() != 42 || !c.Done() {
		t.Errorf("Value = %f, Done = %v; want 42, true", c.Value(), c.Done())
	}
}

func TestCounterAnimatorSetRestarts(t *testing.T) {
	frames := &fakeFrames{}
	c := NewCounterAnimator(frames, 100, WithDuration(time.Second))
	frames.run(t0)
	frames.run(t0.Add(500 * time.Millisecond))
	old := frames.pending[0]

	c.Set(100, 0, time.Second)
	if old.cancelled {
		t.Error("Set with identical inputs restarted the counter")
	}

	c.Set(50, 0, time.Second)
	if !old.cancelled {
		t.Error("previous frame not cancelled on Set")
	}
	if frames.live() != 1 {
		t.Fatalf("pending frames = %d, want exactly 1", frames.live())
	}
	if c.Value() != 0 {
		t.Errorf("Value after restart = %f, want 0", c.Value())
	}

	frames.run(t0.Add(2 * time.Second))
	frames.run(t0.Add(2*time.Second + 500*time.Millisecond))
	if c.Value() != 37 { // floor(0.75*50)
		t.Errorf("Value = %f, want 37", c.Value())
	}
}

func TestCounterAnimatorStaleFrameIgnored(t *testing.T) {
	frames := &fakeFrames{}
	c := NewCounterAnimator(frames, 100, WithDuration(time.Second))
	first := frames.pending[0]

	c.Set(200, 0, time.Second)
	// A scheduler that ignores Cancel still must not drive the old loop.
	first.fn(t0)
	first.fn(t0.Add(900 * time.Millisecond))
	if c.Value() != 0 {
		t.Errorf("stale frame changed Value to %f", c.Value())
	}
}

func TestCounterAnimatorClose(t *testing.T) {
	frames := &fakeFrames{}
	var changes []float64
	c := NewCounterAnimator(frames, 100, WithDuration(time.Second),
		WithCounterChange(func(v float64) { changes = append(changes, v) }))
	frames.run(t0)
	frames.run(t0.Add(500 * time.Millisecond))

	c.Close()
	if frames.live() != 0 {
		t.Errorf("pending frames after Close = %d, want 0", frames.live())
	}
	if c.Value() != 75 {
		t.Errorf("Value after Close = %f, want 75", c.Value())
	}

	c.SetTrigger(false)
	c.SetTrigger(true)
	if frames.live() != 0 {
		t.Error("closed counter scheduled a frame")
	}
	if len(changes) != 1 || changes[0] != 75 {
		t.Errorf("changes = %v, want [75]", changes)
	}
}

func TestCounterAnimatorWithPage(t *testing.T) {
	page, clock := newTestPage()
	c := NewCounterAnimator(page, 100, WithDuration(time.Second))

	page.Update()
	if c.Value() != 0 {
		t.Fatalf("Value on first frame = %f, want 0", c.Value())
	}
	clock.Advance(500 * time.Millisecond)
	page.Update()
	if c.Value() != 75 {
		t.Errorf("Value at 500ms = %f, want 75", c.Value())
	}
	clock.Advance(time.Second)
	page.Update()
	if c.Value() != 100 || !c.Done() {
		t.Errorf("Value = %f, Done = %v; want 100, true", c.Value(), c.Done())
	}
	if n := len(page.handlers.frames); n != 0 {
		t.Errorf("page frames after completion = %d, want 0", n)
	}
}

func TestCounterAnimatorTriggeredByViewport(t *testing.T) {
	page, clock := newTestPage()
	stats := page.NewSection("stats", Rect{X: 0, Y: 1200, Width: 800, Height: 200})
	c := NewCounterAnimator(page, 250, WithDuration(time.Second), WithTrigger(false))
	NewViewportObserver(page, NewElementRef(stats), WithViewportChange(func(s ViewportState) {
		c.SetTrigger(s.HasAnimated)
	}))

	page.Update()
	if len(page.handlers.frames) != 0 {
		t.Fatal("counter scheduled before the section was visible")
	}

	page.ScrollTo(0, 1000)
	page.Update() // observer fires, counter requests its first frame
	page.Update() // first frame
	clock.Advance(2 * time.Second)
	page.Update()
	if c.Value() != 250 {
		t.Errorf("Value = %f, want 250", c.Value())
	}

	// Leaving and re-entering does not restart a finished counter.
	page.ScrollTo(0, 0)
	page.Update()
	page.ScrollTo(0, 1000)
	page.Update()
	if c.Value() != 250 {
		t.Errorf("Value after re-entry = %f, want 250", c.Value())
	}
}
