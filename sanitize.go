package motion

import (
	"strconv"
	"strings"
)

// FallbackEasing replaces easing expressions the renderer cannot evaluate.
const FallbackEasing = "ease-in-out"

// IsUnsupportedEasing reports whether s looks like a cubic-bezier curve with a
// negative control point. The check is a substring heuristic: the string must
// mention "cubic-bezier" and contain a '-'. Since the function name itself
// contains a hyphen, every string-encoded cubic-bezier matches.
func IsUnsupportedEasing(s string) bool {
	return strings.Contains(s, "cubic-bezier") && strings.ContainsRune(s, '-')
}

// Sanitize returns a copy of n in which every unsupported easing string held
// by a mapping is replaced with FallbackEasing. The result is otherwise
// structurally identical to n. Scalars, Null and empty composites are
// returned as-is. Strings that are direct elements of a sequence are not
// inspected, and numeric control-point arrays are never touched.
//
// Sanitize never fails: any Node is valid input.
func Sanitize(n Node) Node {
	switch n.kind {
	case KindSequence:
		if len(n.seq) == 0 {
			return n
		}
		out := make([]Node, len(n.seq))
		for i, item := range n.seq {
			out[i] = Sanitize(item)
		}
		return Node{kind: KindSequence, seq: out}
	case KindMapping:
		if n.Len() == 0 {
			return n
		}
		return sanitizeMapping(n)
	default:
		return n
	}
}

func sanitizeMapping(n Node) Node {
	m := &mapping{
		keys: make([]string, len(n.m.keys)),
		vals: make(map[string]Node, len(n.m.keys)),
	}
	copy(m.keys, n.m.keys)
	for _, k := range n.m.keys {
		v := n.m.vals[k]
		// A nested transition.ease is rewritten by the recursive case, which
		// also gives the transition its own fresh mapping.
		switch {
		case isUnsupportedString(v):
			m.vals[k] = String(FallbackEasing)
		case v.IsComposite():
			m.vals[k] = Sanitize(v)
		default:
			m.vals[k] = v
		}
	}
	return Node{kind: KindMapping, m: m}
}

func isUnsupportedString(n Node) bool {
	s, ok := n.Str()
	return ok && IsUnsupportedEasing(s)
}

// UnsupportedEasingPaths lists the dotted paths of every value Sanitize would
// rewrite, in traversal order. Sequence elements appear as "[i]".
func UnsupportedEasingPaths(n Node) []string {
	var paths []string
	collectEasingPaths(n, "", &paths)
	return paths
}

func collectEasingPaths(n Node, prefix string, paths *[]string) {
	switch n.kind {
	case KindSequence:
		for i, item := range n.seq {
			collectEasingPaths(item, prefix+"["+strconv.Itoa(i)+"]", paths)
		}
	case KindMapping:
		for _, k := range n.Keys() {
			v, _ := n.Get(k)
			path := k
			if prefix != "" {
				path = prefix + "." + k
			}
			if isUnsupportedString(v) {
				*paths = append(*paths, path)
				continue
			}
			collectEasingPaths(v, path, paths)
		}
	}
}
