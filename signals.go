package motion

import "github.com/zoobzio/capitan"

// Viewport signals.
var (
	// ViewportEntered is emitted when an observed element starts intersecting.
	ViewportEntered = capitan.NewSignal(
		"motion.viewport.entered",
		"Observed element entered the viewport",
	)

	// ViewportExited is emitted when an observed element stops intersecting.
	ViewportExited = capitan.NewSignal(
		"motion.viewport.exited",
		"Observed element left the viewport",
	)
)

// ScrollDirectionChanged is emitted when a ScrollTracker flips direction.
var ScrollDirectionChanged = capitan.NewSignal(
	"motion.scroll.direction.changed",
	"Scroll direction changed",
)

// Counter signals.
var (
	// CounterStarted is emitted when a CounterAnimator schedules its first frame.
	CounterStarted = capitan.NewSignal(
		"motion.counter.started",
		"Counter animation started",
	)

	// CounterCompleted is emitted when a counter reaches its end value.
	CounterCompleted = capitan.NewSignal(
		"motion.counter.completed",
		"Counter animation completed",
	)

	// CounterCancelled is emitted when a running counter is torn down early.
	CounterCancelled = capitan.NewSignal(
		"motion.counter.cancelled",
		"Counter animation cancelled",
	)
)

// ThemeChanged is emitted when the ThemeService switches theme.
var ThemeChanged = capitan.NewSignal(
	"motion.theme.changed",
	"Theme changed",
)

// Preset signals.
var (
	// PresetsLoaded is emitted after a preset document is decoded, validated
	// and sanitized.
	PresetsLoaded = capitan.NewSignal(
		"motion.presets.loaded",
		"Motion presets loaded",
	)

	// PresetsLoadFailed is emitted when a preset document is rejected.
	PresetsLoadFailed = capitan.NewSignal(
		"motion.presets.load.failed",
		"Motion presets rejected",
	)

	// EasingRewritten is emitted for each unsupported easing replaced while
	// loading presets.
	EasingRewritten = capitan.NewSignal(
		"motion.easing.rewritten",
		"Unsupported easing replaced with fallback",
	)
)
