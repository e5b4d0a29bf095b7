package compliance

import (
	"fmt"
	"sort"
	"strings"
)

// ValueKind identifies the variant held by a Value.
type ValueKind int

const (
	NullKind ValueKind = iota
	BoolKind
	NumKind
	StrKind
	ListKind
	MapKind
)

func (k ValueKind) String() string {
	switch k {
	case NullKind:
		return "null"
	case BoolKind:
		return "bool"
	case NumKind:
		return "num"
	case StrKind:
		return "str"
	case ListKind:
		return "list"
	case MapKind:
		return "map"
	default:
		return "invalid"
	}
}

// Value is the tagged union flowing through fact resolution and
// comparison. Every value a rule can see -- entity attributes, metadata
// entries, computed facts, and rule-authored constants -- is normalized
// into one of six kinds so comparisons are exhaustively matched and
// cannot panic on an unexpected shape.
//
// Note that a missing fact is NOT a Value; absence is signalled by the
// ok=false return of resolvers so that "no value" stays distinguishable
// from null, false and 0.
type Value struct {
	kind ValueKind
	b    bool
	n    float64
	s    string
	list []Value
	m    map[string]Value
}

// Null returns the null value.
func Null() Value { return Value{} }

// BoolValue wraps a bool.
func BoolValue(b bool) Value { return Value{kind: BoolKind, b: b} }

// NumValue wraps a float64.
func NumValue(n float64) Value { return Value{kind: NumKind, n: n} }

// StrValue wraps a string.
func StrValue(s string) Value { return Value{kind: StrKind, s: s} }

// ListValue wraps a list of values.
func ListValue(items ...Value) Value { return Value{kind: ListKind, list: items} }

// MapValue wraps a string-keyed map of values.
func MapValue(m map[string]Value) Value { return Value{kind: MapKind, m: m} }

// From converts arbitrary JSON-shaped Go data into a Value. All integer
// and float types become NumKind. Unrecognized types are rendered to
// their string form rather than rejected, matching the fail-soft
// handling of authored rule data.
func From(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null()
	case Value:
		return t
	case bool:
		return BoolValue(t)
	case float64:
		return NumValue(t)
	case float32:
		return NumValue(float64(t))
	case int:
		return NumValue(float64(t))
	case int8:
		return NumValue(float64(t))
	case int16:
		return NumValue(float64(t))
	case int32:
		return NumValue(float64(t))
	case int64:
		return NumValue(float64(t))
	case uint:
		return NumValue(float64(t))
	case uint8:
		return NumValue(float64(t))
	case uint16:
		return NumValue(float64(t))
	case uint32:
		return NumValue(float64(t))
	case uint64:
		return NumValue(float64(t))
	case string:
		return StrValue(t)
	case []any:
		items := make([]Value, 0, len(t))
		for _, e := range t {
			items = append(items, From(e))
		}
		return ListValue(items...)
	case map[string]any:
		m := make(map[string]Value, len(t))
		for k, e := range t {
			m[k] = From(e)
		}
		return MapValue(m)
	default:
		return StrValue(fmt.Sprintf("%v", v))
	}
}

// Kind returns the variant tag.
func (v Value) Kind() ValueKind { return v.kind }

// IsNull reports whether the value is the null value.
func (v Value) IsNull() bool { return v.kind == NullKind }

// AsNum returns the numeric value, ok=false for non-numeric kinds.
func (v Value) AsNum() (float64, bool) {
	if v.kind != NumKind {
		return 0, false
	}
	return v.n, true
}

// AsStr returns the string value, ok=false for non-string kinds.
func (v Value) AsStr() (string, bool) {
	if v.kind != StrKind {
		return "", false
	}
	return v.s, true
}

// AsBool returns the boolean value, ok=false for non-boolean kinds.
func (v Value) AsBool() (bool, bool) {
	if v.kind != BoolKind {
		return false, false
	}
	return v.b, true
}

// Field returns the map entry for the key, ok=false for non-map kinds
// or a missing key.
func (v Value) Field(key string) (Value, bool) {
	if v.kind != MapKind {
		return Value{}, false
	}
	e, ok := v.m[key]
	return e, ok
}

// Equal reports structural equality. Numbers compare by float value,
// lists element-wise in order, maps by key set and per-key equality.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case NullKind:
		return true
	case BoolKind:
		return v.b == o.b
	case NumKind:
		return v.n == o.n
	case StrKind:
		return v.s == o.s
	case ListKind:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	case MapKind:
		if len(v.m) != len(o.m) {
			return false
		}
		for k, e := range v.m {
			oe, ok := o.m[k]
			if !ok || !e.Equal(oe) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Contains reports membership: for lists, whether any element equals o;
// for strings, whether o is a substring.
func (v Value) Contains(o Value) (bool, bool) {
	switch v.kind {
	case ListKind:
		for _, e := range v.list {
			if e.Equal(o) {
				return true, true
			}
		}
		return false, true
	case StrKind:
		sub, ok := o.AsStr()
		if !ok {
			return false, false
		}
		return strings.Contains(v.s, sub), true
	default:
		return false, false
	}
}

// Interface returns the plain Go form of the value for JSON rendering:
// nil, bool, float64, string, []any or map[string]any.
func (v Value) Interface() any {
	switch v.kind {
	case NullKind:
		return nil
	case BoolKind:
		return v.b
	case NumKind:
		return v.n
	case StrKind:
		return v.s
	case ListKind:
		out := make([]any, 0, len(v.list))
		for _, e := range v.list {
			out = append(out, e.Interface())
		}
		return out
	case MapKind:
		out := make(map[string]any, len(v.m))
		for k, e := range v.m {
			out[k] = e.Interface()
		}
		return out
	default:
		return nil
	}
}

func (v Value) String() string {
	switch v.kind {
	case NullKind:
		return "null"
	case BoolKind:
		return fmt.Sprintf("%t", v.b)
	case NumKind:
		return fmt.Sprintf("%g", v.n)
	case StrKind:
		return v.s
	case ListKind:
		parts := make([]string, 0, len(v.list))
		for _, e := range v.list {
			parts = append(parts, e.String())
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case MapKind:
		keys := make([]string, 0, len(v.m))
		for k := range v.m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+": "+v.m[k].String())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "invalid"
	}
}
