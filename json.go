package twalk

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"

	json "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// DefaultRegistry holds the built-in directives and backs DecodeJSON.
var DefaultRegistry = mustRegistry(Builtins())

func mustRegistry(regs ...Registration) *Registry {
	r, err := NewRegistry(regs...)
	if err != nil {
		panic(err)
	}
	return r
}

// DecodeJSON decodes a JSON document into a document value using the
// default directive registry: objects become tables, arrays arrays,
// strings strings, numbers integers when integral and floats otherwise.
// Objects whose first key starts with '$' dispatch to the directive of
// that name; any extra fields after the directive payload are skipped.
//
// JSON null is rejected with ErrNullValue: the document union has no null
// variant.
func DecodeJSON(data []byte) (*Value, error) {
	return DecodeJSONWith(data, DefaultRegistry)
}

// DecodeJSONWith is DecodeJSON with a caller-supplied directive registry.
// A nil registry disables directive dispatch entirely; '$'-prefixed keys
// are then ordinary table keys.
func DecodeJSONWith(data []byte, r *Registry) (*Value, error) {
	dec := jsontext.NewDecoder(bytes.NewReader(data))
	v, err := decodeJSONValue(dec, r)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func decodeJSONValue(dec *jsontext.Decoder, r *Registry) (*Value, error) {
	switch dec.PeekKind() {
	case '{':
		return decodeJSONObject(dec, r)
	case '[':
		return decodeJSONArray(dec, r)
	case '"':
		var s string
		if err := json.UnmarshalDecode(dec, &s); err != nil {
			return nil, fmt.Errorf("read string: %w", err)
		}
		return String(s), nil
	case 't', 'f':
		var b bool
		if err := json.UnmarshalDecode(dec, &b); err != nil {
			return nil, fmt.Errorf("read bool: %w", err)
		}
		return Boolean(b), nil
	case 'n':
		if _, err := dec.ReadToken(); err != nil {
			return nil, fmt.Errorf("read null: %w", err)
		}
		return nil, ErrNullValue
	case '0':
		tok, err := dec.ReadToken()
		if err != nil {
			return nil, fmt.Errorf("read number: %w", err)
		}
		text := tok.String()
		if i, err := strconv.ParseInt(text, 10, 64); err == nil {
			return Integer(i), nil
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("parse number %q: %w", text, err)
		}
		return Float(f), nil
	default:
		kind := dec.PeekKind()
		if _, err := dec.ReadToken(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("unexpected token kind %q", kind)
	}
}

func decodeJSONObject(dec *jsontext.Decoder, r *Registry) (*Value, error) {
	if _, err := dec.ReadToken(); err != nil { // '{'
		return nil, fmt.Errorf("read object open: %w", err)
	}
	if dec.PeekKind() == '}' { // empty
		if _, err := dec.ReadToken(); err != nil {
			return nil, fmt.Errorf("read object close: %w", err)
		}
		return Table(), nil
	}

	var firstKey string
	if err := json.UnmarshalDecode(dec, &firstKey); err != nil {
		return nil, fmt.Errorf("read object first key: %w", err)
	}
	if len(firstKey) > 0 && firstKey[0] == '$' && r != nil {
		v, err := r.Call(firstKey[1:], dec)
		if err != nil {
			return nil, err
		}
		for dec.PeekKind() != '}' { // skip remaining fields
			if err := dec.SkipValue(); err != nil {
				return nil, fmt.Errorf("directive %q skip extra field: %w", firstKey, err)
			}
		}
		if _, err := dec.ReadToken(); err != nil {
			return nil, fmt.Errorf("directive %q read object close: %w", firstKey, err)
		}
		return v, nil
	}

	firstVal, err := decodeJSONValue(dec, r)
	if err != nil {
		return nil, fmt.Errorf("read object value for key %q: %w", firstKey, err)
	}
	tab := TableOf(map[string]*Value{firstKey: firstVal})
	for dec.PeekKind() != '}' {
		var k string
		if err := json.UnmarshalDecode(dec, &k); err != nil {
			return nil, fmt.Errorf("read object key: %w", err)
		}
		v, err := decodeJSONValue(dec, r)
		if err != nil {
			return nil, fmt.Errorf("read object value for key %q: %w", k, err)
		}
		tab.tab[k] = v
	}
	if _, err := dec.ReadToken(); err != nil { // '}'
		return nil, fmt.Errorf("read object close: %w", err)
	}
	return tab, nil
}

func decodeJSONArray(dec *jsontext.Decoder, r *Registry) (*Value, error) {
	if _, err := dec.ReadToken(); err != nil { // '['
		return nil, fmt.Errorf("read array open: %w", err)
	}
	arr := Array()
	for dec.PeekKind() != ']' {
		elem, err := decodeJSONValue(dec, r)
		if err != nil {
			return nil, fmt.Errorf("read array element: %w", err)
		}
		arr.arr = append(arr.arr, elem)
	}
	if _, err := dec.ReadToken(); err != nil { // ']'
		return nil, fmt.Errorf("read array close: %w", err)
	}
	return arr, nil
}

// EncodeJSON encodes a document value as JSON. Datetimes are written as
// {"$time": "..."} sentinel objects so EncodeJSON round-trips through
// DecodeJSON. Table keys are emitted in sorted order for deterministic
// output.
func EncodeJSON(v *Value) ([]byte, error) {
	var buf bytes.Buffer
	enc := jsontext.NewEncoder(&buf)
	if err := encodeJSONValue(enc, v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func encodeJSONValue(enc *jsontext.Encoder, v *Value) error {
	switch v.kind {
	case KindString:
		return enc.WriteToken(jsontext.String(v.str))
	case KindInteger:
		return enc.WriteToken(jsontext.Int(v.num))
	case KindFloat:
		return enc.WriteToken(jsontext.Float(v.fl))
	case KindBoolean:
		return enc.WriteToken(jsontext.Bool(v.b))
	case KindDatetime:
		if err := enc.WriteToken(jsontext.BeginObject); err != nil {
			return err
		}
		if err := enc.WriteToken(jsontext.String("$time")); err != nil {
			return err
		}
		if err := enc.WriteToken(jsontext.String(v.str)); err != nil {
			return err
		}
		return enc.WriteToken(jsontext.EndObject)
	case KindArray:
		if err := enc.WriteToken(jsontext.BeginArray); err != nil {
			return err
		}
		for _, elem := range v.arr {
			if err := encodeJSONValue(enc, elem); err != nil {
				return err
			}
		}
		return enc.WriteToken(jsontext.EndArray)
	case KindTable:
		if err := enc.WriteToken(jsontext.BeginObject); err != nil {
			return err
		}
		keys := make([]string, 0, len(v.tab))
		for k := range v.tab {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := enc.WriteToken(jsontext.String(k)); err != nil {
				return err
			}
			if err := encodeJSONValue(enc, v.tab[k]); err != nil {
				return err
			}
		}
		return enc.WriteToken(jsontext.EndObject)
	default:
		return fmt.Errorf("cannot encode invalid value")
	}
}
