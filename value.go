package twalk

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Kind identifies the variant of a Value. The kind of a Value is fixed at
// construction; container values mutate their contents in place but never
// change kind.
type Kind uint8

const (
	KindString Kind = iota + 1
	KindInteger
	KindFloat
	KindBoolean
	KindDatetime
	KindArray
	KindTable
)

// String returns the kind name as used in error messages.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "String"
	case KindInteger:
		return "Integer"
	case KindFloat:
		return "Float"
	case KindBoolean:
		return "Boolean"
	case KindDatetime:
		return "Datetime"
	case KindArray:
		return "Array"
	case KindTable:
		return "Table"
	default:
		return "Invalid"
	}
}

// Value is the in-memory node of a document: one of seven variants (string,
// integer, float, boolean, datetime, array, table). Values form a tree;
// paths address nodes in it (see Read, Insert, Delete).
//
// A *Value returned by a read doubles as a reference into the document:
// mutating it (via ReadMut) mutates the document.
type Value struct {
	kind Kind
	str  string // String and Datetime payload
	num  int64
	fl   float64
	b    bool
	arr  []*Value
	tab  map[string]*Value
}

// String constructs a string value.
func String(s string) *Value { return &Value{kind: KindString, str: s} }

// Integer constructs a 64-bit signed integer value.
func Integer(i int64) *Value { return &Value{kind: KindInteger, num: i} }

// Float constructs a 64-bit float value.
func Float(f float64) *Value { return &Value{kind: KindFloat, fl: f} }

// Boolean constructs a boolean value.
func Boolean(b bool) *Value { return &Value{kind: KindBoolean, b: b} }

// Datetime constructs a datetime value from its textual form. The text is
// carried opaquely; bridges normalize to RFC3339.
func Datetime(s string) *Value { return &Value{kind: KindDatetime, str: s} }

// Array constructs an array value holding the given elements, in order.
// Array() is the empty array.
func Array(elems ...*Value) *Value {
	return &Value{kind: KindArray, arr: append([]*Value{}, elems...)}
}

// Table constructs an empty table value.
func Table() *Value {
	return &Value{kind: KindTable, tab: map[string]*Value{}}
}

// TableOf constructs a table value holding the given entries. The map is
// used directly, not copied.
func TableOf(entries map[string]*Value) *Value {
	if entries == nil {
		entries = map[string]*Value{}
	}
	return &Value{kind: KindTable, tab: entries}
}

// Kind reports the variant of v.
func (v *Value) Kind() Kind { return v.kind }

// Is reports whether v is of kind k.
func (v *Value) Is(k Kind) bool { return v.kind == k }

// AsString returns the string payload and whether v is a string.
func (v *Value) AsString() (string, bool) { return v.str, v.kind == KindString }

// AsInt returns the integer payload and whether v is an integer.
func (v *Value) AsInt() (int64, bool) { return v.num, v.kind == KindInteger }

// AsFloat returns the float payload and whether v is a float.
func (v *Value) AsFloat() (float64, bool) { return v.fl, v.kind == KindFloat }

// AsBool returns the boolean payload and whether v is a boolean.
func (v *Value) AsBool() (bool, bool) { return v.b, v.kind == KindBoolean }

// AsDatetime returns the datetime text and whether v is a datetime.
func (v *Value) AsDatetime() (string, bool) { return v.str, v.kind == KindDatetime }

// Items returns the elements of an array value, or nil for any other kind.
// The slice aliases the document; callers must not retain it across inserts.
func (v *Value) Items() []*Value {
	if v.kind != KindArray {
		return nil
	}
	return v.arr
}

// Entries returns the entry map of a table value, or nil for any other
// kind. The map aliases the document.
func (v *Value) Entries() map[string]*Value {
	if v.kind != KindTable {
		return nil
	}
	return v.tab
}

// Len returns the element count of an array, the entry count of a table,
// and 0 for scalars.
func (v *Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindTable:
		return len(v.tab)
	default:
		return 0
	}
}

// Clone returns a deep copy of v. The copy shares no nodes with the
// original, so mutations on either side are invisible to the other.
func (v *Value) Clone() *Value {
	if v == nil {
		return nil
	}
	c := *v
	switch v.kind {
	case KindArray:
		c.arr = make([]*Value, len(v.arr))
		for i, e := range v.arr {
			c.arr[i] = e.Clone()
		}
	case KindTable:
		c.tab = make(map[string]*Value, len(v.tab))
		for k, e := range v.tab {
			c.tab[k] = e.Clone()
		}
	}
	return &c
}

// String renders v compactly for debugging and error messages.
func (v *Value) String() string {
	if v == nil {
		return "<nil>"
	}
	switch v.kind {
	case KindString:
		return fmt.Sprintf("%q", v.str)
	case KindInteger:
		return fmt.Sprintf("%d", v.num)
	case KindFloat:
		return fmt.Sprintf("%g", v.fl)
	case KindBoolean:
		return fmt.Sprintf("%t", v.b)
	case KindDatetime:
		return v.str
	case KindArray:
		parts := make([]string, len(v.arr))
		for i, e := range v.arr {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindTable:
		keys := make([]string, 0, len(v.tab))
		for k := range v.tab {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s = %s", k, v.tab[k])
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "<invalid>"
	}
}

// FromAny converts generic decode output (as produced by yaml/json
// unmarshalling into any) to a Value: map[string]any becomes a table,
// []any an array, time.Time a datetime, scalars their obvious variants.
// A *Value input passes through unchanged.
func FromAny(x any) (*Value, error) {
	switch t := x.(type) {
	case *Value:
		return t, nil
	case string:
		return String(t), nil
	case bool:
		return Boolean(t), nil
	case int:
		return Integer(int64(t)), nil
	case int64:
		return Integer(t), nil
	case uint64:
		if t > 1<<63-1 {
			return nil, fmt.Errorf("integer %d overflows int64", t)
		}
		return Integer(int64(t)), nil
	case float64:
		return Float(t), nil
	case time.Time:
		return Datetime(t.Format(time.RFC3339)), nil
	case []any:
		arr := make([]*Value, len(t))
		for i, e := range t {
			ev, err := FromAny(e)
			if err != nil {
				return nil, err
			}
			arr[i] = ev
		}
		return &Value{kind: KindArray, arr: arr}, nil
	case map[string]any:
		tab := make(map[string]*Value, len(t))
		for k, e := range t {
			ev, err := FromAny(e)
			if err != nil {
				return nil, err
			}
			tab[k] = ev
		}
		return &Value{kind: KindTable, tab: tab}, nil
	default:
		return nil, fmt.Errorf("cannot represent %T as a document value", x)
	}
}

// Interface converts v back to generic Go data: tables become
// map[string]any, arrays []any, datetimes their textual form.
func (v *Value) Interface() any {
	switch v.kind {
	case KindString, KindDatetime:
		return v.str
	case KindInteger:
		return v.num
	case KindFloat:
		return v.fl
	case KindBoolean:
		return v.b
	case KindArray:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.Interface()
		}
		return out
	case KindTable:
		out := make(map[string]any, len(v.tab))
		for k, e := range v.tab {
			out[k] = e.Interface()
		}
		return out
	default:
		return nil
	}
}
