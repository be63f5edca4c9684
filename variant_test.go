package motion

import (
	"slices"
	"testing"
)

func TestSanitizeVariantsNil(t *testing.T) {
	if got := SanitizeVariants(nil); got != nil {
		t.Errorf("SanitizeVariants(nil) = %v, want nil", got)
	}
}

func TestSanitizeVariantsKeepsNames(t *testing.T) {
	vm := VariantMap{
		"hidden":  Static(Map(Field("opacity", Number(0)))),
		"visible": Static(Map(Field("opacity", Number(1)), Field("transition", Map(Field("ease", String(negativeBezier)))))),
		"hover":   Dynamic(func(args ...any) Node { return Map(Field("scale", Number(1.05))) }),
	}
	out := SanitizeVariants(vm)

	var got, want []string
	for name := range out {
		got = append(got, name)
	}
	for name := range vm {
		want = append(want, name)
	}
	slices.Sort(got)
	slices.Sort(want)
	if !slices.Equal(got, want) {
		t.Errorf("names = %v, want %v", got, want)
	}

	tr, _ := out["visible"].Resolve().Get("transition")
	ease, _ := tr.Get("ease")
	if s, _ := ease.Str(); s != FallbackEasing {
		t.Errorf("visible.transition.ease = %q, want %q", s, FallbackEasing)
	}
	if !out["hover"].IsDynamic() {
		t.Error("hover lost its dynamic form")
	}
}

func TestSanitizeVariantsDynamicForwardsArgs(t *testing.T) {
	var seen []any
	vm := VariantMap{
		"visible": Dynamic(func(args ...any) Node {
			seen = args
			return Map(Field("transition", Map(Field("ease", String(negativeBezier)))))
		}),
	}
	out := SanitizeVariants(vm)

	if seen != nil {
		t.Fatal("dynamic variant ran before resolution")
	}
	n := out["visible"].Resolve(3, "x")
	if len(seen) != 2 || seen[0] != 3 || seen[1] != "x" {
		t.Errorf("args = %v, want [3 x]", seen)
	}
	tr, _ := n.Get("transition")
	ease, _ := tr.Get("ease")
	if s, _ := ease.Str(); s != FallbackEasing {
		t.Errorf("resolved ease = %q, want %q", s, FallbackEasing)
	}
}

func TestDynamicNil(t *testing.T) {
	v := Dynamic(nil)
	if v.IsDynamic() {
		t.Error("Dynamic(nil) should not be dynamic")
	}
	if !v.Resolve().IsNull() {
		t.Error("Dynamic(nil) should resolve to null")
	}
}

func TestStagger(t *testing.T) {
	base := Map(
		Field("opacity", Number(1)),
		Field("transition", Map(Field("duration", Number(0.5)))),
	)
	v := Stagger(base, 0.1)

	tests := []struct {
		name string
		args []any
		want float64
	}{
		{"no args", nil, 0},
		{"int index", []any{3}, 0.3},
		{"float index", []any{2.0}, 0.2},
		{"non-numeric", []any{"a"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := v.Resolve(tt.args...)
			tr, _ := n.Get("transition")
			d, ok := tr.Get("delay")
			if !ok {
				t.Fatal("delay missing")
			}
			f, _ := d.Float()
			if !approxEqual(f, tt.want, epsilon) {
				t.Errorf("delay = %v, want %v", f, tt.want)
			}
			dur, _ := tr.Get("duration")
			if f, _ := dur.Float(); f != 0.5 {
				t.Errorf("duration = %v, want 0.5", f)
			}
		})
	}

	// The base node is not modified.
	tr, _ := base.Get("transition")
	if _, ok := tr.Get("delay"); ok {
		t.Error("Stagger modified its base")
	}
}

func TestStaggerChildren(t *testing.T) {
	n := StaggerChildren(0.1, 0.3).Resolve()
	tr, _ := n.Get("transition")
	step, _ := tr.Get("staggerChildren")
	delay, _ := tr.Get("delayChildren")
	if f, _ := step.Float(); f != 0.1 {
		t.Errorf("staggerChildren = %v, want 0.1", f)
	}
	if f, _ := delay.Float(); f != 0.3 {
		t.Errorf("delayChildren = %v, want 0.3", f)
	}
}
