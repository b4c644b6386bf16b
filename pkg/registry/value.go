// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Kind identifies which case of the Value union is populated.
type Kind int

const (
	// KindNull is the zero Kind; a null Value carries no data and means
	// "absent" (e.g. a variable without a default).
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindList
	KindMap
)

// Value is a tagged-union container for variable defaults and caller-supplied
// inputs. Template variables can hold arbitrarily shaped data (strings,
// numbers, booleans, lists, maps), so each shape gets an explicit case with a
// well-defined textual form used during placeholder substitution.
//
// The zero Value is null. Values round-trip losslessly through JSON, which is
// how they are persisted inside serialized variable lists.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	list []Value
	obj  map[string]Value
}

// String constructs a string Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number constructs a numeric Value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Bool constructs a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// List constructs a list Value from the given elements.
func List(elems ...Value) Value { return Value{kind: KindList, list: elems} }

// Map constructs a map Value.
func Map(entries map[string]Value) Value { return Value{kind: KindMap, obj: entries} }

// Kind reports which union case is populated.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is absent.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Text returns the value's natural string form, the exact text spliced into
// a template during substitution. Strings are emitted bare (the template
// author is responsible for quoting), numbers drop insignificant trailing
// zeros, and lists/maps render as compact JSON.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindList, KindMap:
		raw, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(raw)
	default:
		return ""
	}
}

// MarshalJSON encodes the value as its native JSON shape: null, string,
// number, boolean, array, or object.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return []byte(strconv.FormatFloat(v.num, 'f', -1, 64)), nil
	case KindBool:
		return json.Marshal(v.b)
	case KindList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	case KindMap:
		// Deterministic key order keeps the serialized form stable.
		keys := make([]string, 0, len(v.obj))
		for k := range v.obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			vb, err := json.Marshal(v.obj[k])
			if err != nil {
				return nil, err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			buf.Write(vb)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown value kind %d", v.kind)
	}
}

// UnmarshalJSON decodes any JSON value, inferring the union case from the
// JSON shape.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	parsed, err := fromAny(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// FromAny converts a dynamically shaped Go value (as produced by
// encoding/json or hand-built literals) into a Value.
func FromAny(raw any) (Value, error) {
	return fromAny(raw)
}

func fromAny(raw any) (Value, error) {
	switch x := raw.(type) {
	case nil:
		return Value{}, nil
	case string:
		return String(x), nil
	case bool:
		return Bool(x), nil
	case float64:
		return Number(x), nil
	case int:
		return Number(float64(x)), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("invalid number %q: %w", x.String(), err)
		}
		return Number(f), nil
	case []any:
		elems := make([]Value, 0, len(x))
		for _, e := range x {
			ev, err := fromAny(e)
			if err != nil {
				return Value{}, err
			}
			elems = append(elems, ev)
		}
		return List(elems...), nil
	case map[string]any:
		entries := make(map[string]Value, len(x))
		for k, e := range x {
			ev, err := fromAny(e)
			if err != nil {
				return Value{}, err
			}
			entries[k] = ev
		}
		return Map(entries), nil
	default:
		return Value{}, fmt.Errorf("unsupported value type %T", raw)
	}
}

// quoteForHCL renders a value as an HCL literal for variable declaration
// blocks: strings are quoted, everything else keeps its natural form.
func quoteForHCL(v Value) string {
	if v.kind == KindString {
		return strconv.Quote(v.str)
	}
	return v.Text()
}
