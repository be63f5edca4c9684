package motion

import (
	"fmt"
	"strconv"
	"strings"
)

// Vec2 is a 2D vector used for scroll positions and offsets.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in document coordinates. The origin is
// the top-left of the document, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Intersection returns the overlapping region of r and other. The result has
// zero size when they do not overlap.
func (r Rect) Intersection(other Rect) Rect {
	x0 := max(r.X, other.X)
	y0 := max(r.Y, other.Y)
	x1 := min(r.X+r.Width, other.X+other.Width)
	y1 := min(r.Y+r.Height, other.Y+other.Height)
	if x1 < x0 || y1 < y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Area returns Width*Height.
func (r Rect) Area() float64 {
	return r.Width * r.Height
}

// Grow returns r expanded outward by the margin. Negative margin values
// shrink the rectangle.
func (r Rect) Grow(m Margin) Rect {
	return Rect{
		X:      r.X - m.Left,
		Y:      r.Y - m.Top,
		Width:  r.Width + m.Left + m.Right,
		Height: r.Height + m.Top + m.Bottom,
	}
}

// Margin holds resolved per-side offsets in pixels.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// marginValue is one side of a root margin before it is resolved against the
// viewport size.
type marginValue struct {
	v       float64
	percent bool
}

func (m marginValue) resolve(extent float64) float64 {
	if m.percent {
		return m.v / 100 * extent
	}
	return m.v
}

// RootMargin is a parsed CSS-style margin such as "0px" or "-10% 0px".
type RootMargin struct {
	top, right, bottom, left marginValue
}

// ParseRootMargin parses one to four space-separated px or % values in CSS
// shorthand order (top, right, bottom, left). An empty string is "0px".
func ParseRootMargin(s string) (RootMargin, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return RootMargin{}, nil
	}
	if len(fields) > 4 {
		return RootMargin{}, fmt.Errorf("parse root margin %q: too many values", s)
	}
	vals := make([]marginValue, len(fields))
	for i, f := range fields {
		mv, err := parseMarginValue(f)
		if err != nil {
			return RootMargin{}, fmt.Errorf("parse root margin %q: %w", s, err)
		}
		vals[i] = mv
	}
	var rm RootMargin
	switch len(vals) {
	case 1:
		rm = RootMargin{vals[0], vals[0], vals[0], vals[0]}
	case 2:
		rm = RootMargin{vals[0], vals[1], vals[0], vals[1]}
	case 3:
		rm = RootMargin{vals[0], vals[1], vals[2], vals[1]}
	case 4:
		rm = RootMargin{vals[0], vals[1], vals[2], vals[3]}
	}
	return rm, nil
}

func parseMarginValue(f string) (marginValue, error) {
	switch {
	case strings.HasSuffix(f, "px"):
		v, err := strconv.ParseFloat(strings.TrimSuffix(f, "px"), 64)
		if err != nil {
			return marginValue{}, fmt.Errorf("invalid length %q", f)
		}
		return marginValue{v: v}, nil
	case strings.HasSuffix(f, "%"):
		v, err := strconv.ParseFloat(strings.TrimSuffix(f, "%"), 64)
		if err != nil {
			return marginValue{}, fmt.Errorf("invalid percentage %q", f)
		}
		return marginValue{v: v, percent: true}, nil
	case f == "0":
		return marginValue{}, nil
	default:
		return marginValue{}, fmt.Errorf("%q must be in px or %%", f)
	}
}

// Resolve converts the margin to pixels for a root of the given size.
// Percentages of the top and bottom sides refer to the height, left and
// right to the width.
func (rm RootMargin) Resolve(width, height float64) Margin {
	return Margin{
		Top:    rm.top.resolve(height),
		Right:  rm.right.resolve(width),
		Bottom: rm.bottom.resolve(height),
		Left:   rm.left.resolve(width),
	}
}
