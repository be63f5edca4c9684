package motion

import (
	"bytes"
	"encoding/json"
	"maps"
	"math"
	"slices"
	"strconv"
)

// Kind identifies which variant a Node holds.
type Kind uint8

const (
	KindNull     Kind = iota // absent or explicit null
	KindString               // string scalar
	KindNumber               // float64 scalar
	KindBool                 // boolean scalar
	KindSequence             // ordered list of nodes
	KindMapping              // string-keyed nodes in insertion order
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Node is one value of an animation configuration tree: target values,
// transition options, keyframe lists. It has no fixed schema. Nodes are
// immutable once constructed, so a Node can be shared between trees freely.
//
// The zero Node is Null.
type Node struct {
	kind Kind
	str  string
	num  float64
	b    bool
	seq  []Node
	m    *mapping
}

// mapping keeps keys in insertion order so that encoded output is stable.
type mapping struct {
	keys []string
	vals map[string]Node
}

// Entry is a single key/value pair used to build a mapping.
type Entry struct {
	Key   string
	Value Node
}

// Null returns the null node.
func Null() Node { return Node{} }

// String returns a string node.
func String(s string) Node { return Node{kind: KindString, str: s} }

// Number returns a numeric node.
func Number(f float64) Node { return Node{kind: KindNumber, num: f} }

// Bool returns a boolean node.
func Bool(b bool) Node { return Node{kind: KindBool, b: b} }

// Seq returns a sequence node holding a copy of items.
func Seq(items ...Node) Node {
	if len(items) == 0 {
		return Node{kind: KindSequence}
	}
	seq := make([]Node, len(items))
	copy(seq, items)
	return Node{kind: KindSequence, seq: seq}
}

// Field is shorthand for an Entry literal.
func Field(key string, value Node) Entry {
	return Entry{Key: key, Value: value}
}

// Map returns a mapping node. When a key repeats, the later value wins but
// the key keeps its first position.
func Map(entries ...Entry) Node {
	m := &mapping{
		keys: make([]string, 0, len(entries)),
		vals: make(map[string]Node, len(entries)),
	}
	for _, e := range entries {
		if _, ok := m.vals[e.Key]; !ok {
			m.keys = append(m.keys, e.Key)
		}
		m.vals[e.Key] = e.Value
	}
	return Node{kind: KindMapping, m: m}
}

// FromValue converts a decoded YAML or JSON tree into a Node. Maps with
// string keys become mappings (keys sorted, since Go maps are unordered),
// slices become sequences, numbers become Number and strings, bools and nil
// map to their scalar kinds. Values of any other type become Null.
func FromValue(v any) Node {
	switch x := v.(type) {
	case nil:
		return Null()
	case Node:
		return x
	case string:
		return String(x)
	case bool:
		return Bool(x)
	case float64:
		return Number(x)
	case float32:
		return Number(float64(x))
	case int:
		return Number(float64(x))
	case int32:
		return Number(float64(x))
	case int64:
		return Number(float64(x))
	case uint:
		return Number(float64(x))
	case uint32:
		return Number(float64(x))
	case uint64:
		return Number(float64(x))
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return String(x.String())
		}
		return Number(f)
	case []any:
		items := make([]Node, len(x))
		for i, item := range x {
			items[i] = FromValue(item)
		}
		return Node{kind: KindSequence, seq: items}
	case []Node:
		return Seq(x...)
	case map[string]any:
		keys := sortedKeys(x)
		entries := make([]Entry, 0, len(keys))
		for _, k := range keys {
			entries = append(entries, Field(k, FromValue(x[k])))
		}
		return Map(entries...)
	case map[any]any:
		strMap := make(map[string]any, len(x))
		for k, val := range x {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			strMap[ks] = val
		}
		return FromValue(strMap)
	default:
		return Null()
	}
}

func sortedKeys(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}

// Kind reports the variant held by n.
func (n Node) Kind() Kind { return n.kind }

// IsComposite reports whether n is a sequence or a mapping.
func (n Node) IsComposite() bool {
	return n.kind == KindSequence || n.kind == KindMapping
}

// IsNull reports whether n is Null.
func (n Node) IsNull() bool { return n.kind == KindNull }

// Str returns the string payload and whether n is a string.
func (n Node) Str() (string, bool) { return n.str, n.kind == KindString }

// Float returns the numeric payload and whether n is a number.
func (n Node) Float() (float64, bool) { return n.num, n.kind == KindNumber }

// Bool returns the boolean payload and whether n is a boolean.
func (n Node) Bool() (bool, bool) { return n.b, n.kind == KindBool }

// Len returns the number of elements of a sequence or keys of a mapping,
// and 0 for scalars.
func (n Node) Len() int {
	switch n.kind {
	case KindSequence:
		return len(n.seq)
	case KindMapping:
		if n.m == nil {
			return 0
		}
		return len(n.m.keys)
	default:
		return 0
	}
}

// Index returns element i of a sequence. It returns Null when n is not a
// sequence or i is out of range.
func (n Node) Index(i int) Node {
	if n.kind != KindSequence || i < 0 || i >= len(n.seq) {
		return Null()
	}
	return n.seq[i]
}

// Keys returns a copy of the mapping's keys in insertion order.
func (n Node) Keys() []string {
	if n.kind != KindMapping || n.m == nil {
		return nil
	}
	keys := make([]string, len(n.m.keys))
	copy(keys, n.m.keys)
	return keys
}

// Get looks up key in a mapping.
func (n Node) Get(key string) (Node, bool) {
	if n.kind != KindMapping || n.m == nil {
		return Null(), false
	}
	v, ok := n.m.vals[key]
	return v, ok
}

// With returns a copy of mapping n with key set to value. Calling With on a
// non-mapping returns a new single-entry mapping.
func (n Node) With(key string, value Node) Node {
	if n.kind != KindMapping || n.m == nil {
		return Map(Field(key, value))
	}
	entries := make([]Entry, 0, len(n.m.keys)+1)
	for _, k := range n.m.keys {
		entries = append(entries, Field(k, n.m.vals[k]))
	}
	entries = append(entries, Field(key, value))
	return Map(entries...)
}

// Value converts n back into plain Go values: map[string]any, []any,
// string, float64, bool or nil. The result is what an external animation
// renderer consumes.
func (n Node) Value() any {
	switch n.kind {
	case KindString:
		return n.str
	case KindNumber:
		return n.num
	case KindBool:
		return n.b
	case KindSequence:
		out := make([]any, len(n.seq))
		for i, item := range n.seq {
			out[i] = item.Value()
		}
		return out
	case KindMapping:
		out := make(map[string]any, n.Len())
		if n.m != nil {
			for _, k := range n.m.keys {
				out[k] = n.m.vals[k].Value()
			}
		}
		return out
	default:
		return nil
	}
}

// Equal reports whether a and b are structurally identical. Mapping key
// order is ignored; sequence order is not.
func Equal(a, b Node) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindString:
		return a.str == b.str
	case KindNumber:
		return a.num == b.num || (math.IsNaN(a.num) && math.IsNaN(b.num))
	case KindBool:
		return a.b == b.b
	case KindSequence:
		if len(a.seq) != len(b.seq) {
			return false
		}
		for i := range a.seq {
			if !Equal(a.seq[i], b.seq[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		if a.Len() != b.Len() {
			return false
		}
		for _, k := range a.Keys() {
			bv, ok := b.Get(k)
			if !ok {
				return false
			}
			av, _ := a.Get(k)
			if !Equal(av, bv) {
				return false
			}
		}
		return true
	}
	return false
}

// MarshalJSON encodes n, keeping mapping keys in insertion order.
func (n Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := n.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes any JSON document into n.
func (n *Node) UnmarshalJSON(data []byte) error {
	var v any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return err
	}
	*n = FromValue(v)
	return nil
}

// String renders n as compact JSON, for logs and test failures.
func (n Node) String() string {
	data, err := n.MarshalJSON()
	if err != nil {
		return "<invalid node>"
	}
	return string(data)
}

func (n Node) writeJSON(buf *bytes.Buffer) error {
	switch n.kind {
	case KindNull:
		buf.WriteString("null")
	case KindString:
		data, err := json.Marshal(n.str)
		if err != nil {
			return err
		}
		buf.Write(data)
	case KindNumber:
		if math.IsNaN(n.num) || math.IsInf(n.num, 0) {
			buf.WriteString("null")
			return nil
		}
		buf.WriteString(strconv.FormatFloat(n.num, 'g', -1, 64))
	case KindBool:
		buf.WriteString(strconv.FormatBool(n.b))
	case KindSequence:
		buf.WriteByte('[')
		for i, item := range n.seq {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindMapping:
		buf.WriteByte('{')
		for i, k := range n.Keys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			v, _ := n.Get(k)
			if err := v.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}
