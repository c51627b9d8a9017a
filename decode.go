package twalk

import (
	"errors"
	"fmt"
	"reflect"
	"time"
)

var (
	valuePtrType = reflect.TypeOf((*Value)(nil))
	timeType     = reflect.TypeOf(time.Time{})
)

// As converts a resolved value into a native Go shape: scalars map
// directly, arrays convert element-by-element into slices, tables
// entry-by-entry into string-keyed maps, recursively. Kind mismatches fail
// with a *TypeError; element and entry conversion stops at the first
// failure.
//
//	hosts, err := twalk.As[[]string](doc)
//	limits, err := twalk.As[map[string]int64](doc)
func As[T any](v *Value) (T, error) {
	var out T
	err := Decode(v, &out)
	return out, err
}

// Decode is the reflection core behind As: it converts v into the value
// pointed to by target. target must be a non-nil pointer.
//
// Supported targets: string (from String or Datetime), bool, the signed
// integer sizes, float32/float64, time.Time (from Datetime), slices, maps
// with string keys, any, and *Value (returned as-is, still aliasing the
// document).
func Decode(v *Value, target any) error {
	if v == nil {
		return errors.New("cannot decode absent value")
	}
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("decode target must be a non-nil pointer, got %T", target)
	}
	return decodeInto(v, rv.Elem())
}

func decodeInto(v *Value, rv reflect.Value) error {
	if rv.Type() == valuePtrType {
		rv.Set(reflect.ValueOf(v))
		return nil
	}
	if rv.Type() == timeType {
		s, ok := v.AsDatetime()
		if !ok {
			return &TypeError{Expected: KindDatetime, Actual: v.kind}
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("parse datetime %q: %w", s, err)
		}
		rv.Set(reflect.ValueOf(t))
		return nil
	}

	switch rv.Kind() {
	case reflect.Interface:
		if rv.NumMethod() != 0 {
			return fmt.Errorf("cannot decode into non-empty interface %s", rv.Type())
		}
		rv.Set(reflect.ValueOf(v.Interface()))
		return nil

	case reflect.String:
		switch v.kind {
		case KindString, KindDatetime:
			rv.SetString(v.str)
			return nil
		default:
			return &TypeError{Expected: KindString, Actual: v.kind}
		}

	case reflect.Bool:
		b, ok := v.AsBool()
		if !ok {
			return &TypeError{Expected: KindBoolean, Actual: v.kind}
		}
		rv.SetBool(b)
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, ok := v.AsInt()
		if !ok {
			return &TypeError{Expected: KindInteger, Actual: v.kind}
		}
		if rv.OverflowInt(i) {
			return fmt.Errorf("integer %d overflows %s", i, rv.Type())
		}
		rv.SetInt(i)
		return nil

	case reflect.Float32, reflect.Float64:
		f, ok := v.AsFloat()
		if !ok {
			return &TypeError{Expected: KindFloat, Actual: v.kind}
		}
		rv.SetFloat(f)
		return nil

	case reflect.Slice:
		if v.kind != KindArray {
			return &TypeError{Expected: KindArray, Actual: v.kind}
		}
		out := reflect.MakeSlice(rv.Type(), len(v.arr), len(v.arr))
		for i, elem := range v.arr {
			if err := decodeInto(elem, out.Index(i)); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
		rv.Set(out)
		return nil

	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("map target must have string keys, got %s", rv.Type())
		}
		if v.kind != KindTable {
			return &TypeError{Expected: KindTable, Actual: v.kind}
		}
		out := reflect.MakeMapWithSize(rv.Type(), len(v.tab))
		for k, entry := range v.tab {
			ev := reflect.New(rv.Type().Elem()).Elem()
			if err := decodeInto(entry, ev); err != nil {
				return fmt.Errorf("entry %q: %w", k, err)
			}
			out.SetMapIndex(reflect.ValueOf(k).Convert(rv.Type().Key()), ev)
		}
		rv.Set(out)
		return nil

	case reflect.Pointer:
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		return decodeInto(v, rv.Elem())

	default:
		return fmt.Errorf("cannot decode into %s", rv.Type())
	}
}
