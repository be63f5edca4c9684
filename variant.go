package motion

// DynamicFunc resolves a variant from caller-supplied arguments, typically
// the index of a child in a staggered list.
type DynamicFunc func(args ...any) Node

// Variant is one named animation state. It is either static (a fixed Node)
// or dynamic (a function of the caller's arguments).
type Variant struct {
	node Node
	fn   DynamicFunc
}

// VariantMap maps variant names such as "hidden" and "visible" to their
// states. A nil VariantMap means no variants were supplied.
type VariantMap map[string]Variant

// Static returns a variant that always resolves to n.
func Static(n Node) Variant {
	return Variant{node: n}
}

// Dynamic returns a variant that resolves by calling fn. A nil fn resolves to
// Null.
func Dynamic(fn DynamicFunc) Variant {
	if fn == nil {
		return Variant{}
	}
	return Variant{fn: fn}
}

// IsDynamic reports whether v is computed from arguments.
func (v Variant) IsDynamic() bool { return v.fn != nil }

// Resolve returns the state for the given arguments. Static variants ignore
// the arguments.
func (v Variant) Resolve(args ...any) Node {
	if v.fn != nil {
		return v.fn(args...)
	}
	return v.node
}

// SanitizeVariants applies Sanitize to every variant in vm. Dynamic variants
// are wrapped so that the sanitizer runs on each resolved state; the wrapper
// forwards its arguments untouched. The returned map has exactly the same
// names as vm. A nil map is returned as nil.
func SanitizeVariants(vm VariantMap) VariantMap {
	if vm == nil {
		return nil
	}
	out := make(VariantMap, len(vm))
	for name, v := range vm {
		if v.fn != nil {
			fn := v.fn
			out[name] = Variant{fn: func(args ...any) Node {
				return Sanitize(fn(args...))
			}}
			continue
		}
		out[name] = Variant{node: Sanitize(v.node)}
	}
	return out
}

// Stagger returns a dynamic variant that copies base and sets
// transition.delay to index*step seconds, where index is the first argument
// (any integer or float type). Missing or non-numeric arguments yield a zero
// delay.
func Stagger(base Node, step float64) Variant {
	return Dynamic(func(args ...any) Node {
		var index float64
		if len(args) > 0 {
			index = toFloat(args[0])
		}
		transition, _ := base.Get("transition")
		transition = transition.With("delay", Number(index*step))
		return base.With("transition", transition)
	})
}

// StaggerChildren returns a container variant whose transition staggers its
// children by step seconds, starting after delay seconds.
func StaggerChildren(step, delay float64) Variant {
	return Static(Map(
		Field("opacity", Number(1)),
		Field("transition", Map(
			Field("staggerChildren", Number(step)),
			Field("delayChildren", Number(delay)),
		)),
	))
}

func toFloat(v any) float64 {
	switch x := v.(type) {
	case int:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case uint:
		return float64(x)
	case float32:
		return float64(x)
	case float64:
		return x
	default:
		return 0
	}
}
