package motion

import "github.com/zoobzio/capitan"

// Field keys for motion events.
var (
	// KeyElement is the name of the element an event refers to.
	KeyElement = capitan.NewStringKey("element")

	// KeyDirection is the new scroll direction.
	KeyDirection = capitan.NewStringKey("direction")

	// KeyScrollY is the vertical scroll position, rounded to whole pixels.
	KeyScrollY = capitan.NewIntKey("scroll_y")

	// KeyDuration is a counter's animation duration.
	KeyDuration = capitan.NewDurationKey("duration")

	// KeyValue is a counter's value, rounded toward zero.
	KeyValue = capitan.NewIntKey("value")

	// KeyTheme is the theme name after a change.
	KeyTheme = capitan.NewStringKey("theme")

	// KeyPreset is the name of a preset.
	KeyPreset = capitan.NewStringKey("preset")

	// KeyPath is the dotted path of a rewritten value.
	KeyPath = capitan.NewStringKey("path")

	// KeyCount is a generic count, such as the number of presets loaded.
	KeyCount = capitan.NewIntKey("count")

	// KeyError is the error message when an operation fails.
	KeyError = capitan.NewStringKey("error")
)
