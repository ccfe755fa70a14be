package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Kind identifies which member of the JSON value union a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

var kindNames = [...]string{"null", "bool", "number", "string", "array", "object"}

// String returns the JSON name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Value is a JSON value: one of Object, Array, String, Number, Bool or Null.
// String returns the text interpolated into a table cell.
type Value interface {
	Kind() Kind
	String() string
}

// Null is the JSON null literal. Its cell text is empty.
type Null struct{}

func (Null) Kind() Kind     { return KindNull }
func (Null) String() string { return "" }

// MarshalJSON implements json.Marshaler.
func (Null) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// Bool is a JSON boolean.
type Bool bool

func (Bool) Kind() Kind { return KindBool }

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Number is a JSON number kept as its literal text, so 1.50 stays 1.50.
type Number string

func (Number) Kind() Kind       { return KindNumber }
func (n Number) String() string { return string(n) }

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) { return []byte(n), nil }

// String is a JSON string.
type String string

func (String) Kind() Kind       { return KindString }
func (s String) String() string { return string(s) }

// Array is an ordered JSON array.
type Array []Value

func (Array) Kind() Kind { return KindArray }

// String returns the array as compact JSON.
func (a Array) String() string { return compact(a) }

// MarshalJSON implements json.Marshaler.
func (a Array) MarshalJSON() ([]byte, error) { return marshal(a) }

// Member is one key/value pair of an Object.
type Member struct {
	Key   string
	Value Value
}

// Object is a JSON object whose members keep their insertion order.
type Object []Member

func (Object) Kind() Kind { return KindObject }

// String returns the object as compact JSON.
func (o Object) String() string { return compact(o) }

// Keys returns the member keys in insertion order.
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for i, m := range o {
		keys[i] = m.Key
	}
	return keys
}

// Get returns the value stored under key.
func (o Object) Get(key string) (Value, bool) {
	for _, m := range o {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// MarshalJSON implements json.Marshaler, writing members in order.
func (o Object) MarshalJSON() ([]byte, error) { return marshal(o) }

// IsEmpty reports whether v renders to nothing: nil, null, {} or [].
func IsEmpty(v Value) bool {
	switch t := v.(type) {
	case nil, Null:
		return true
	case Object:
		return len(t) == 0
	case Array:
		return len(t) == 0
	default:
		return false
	}
}

// Document is a parsed JSON input.
type Document struct {
	Root Value
}

// MaxEncodeDepth bounds the nesting MarshalJSON and String will follow.
const MaxEncodeDepth = 1000

// errEncodeDepth is returned by AppendJSON when maxDepth is exceeded.
var errEncodeDepth = errors.New("value nested deeper than the encode limit")

// IsEncodeDepthError reports whether err came from AppendJSON hitting its
// depth limit.
func IsEncodeDepthError(err error) bool { return errors.Is(err, errEncodeDepth) }

// AppendJSON writes v to buf as compact JSON, descending at most maxDepth
// containers. Strings are not HTML-escaped.
func AppendJSON(buf *bytes.Buffer, v Value, maxDepth int) error {
	switch t := v.(type) {
	case nil, Null:
		buf.WriteString("null")
	case Bool:
		buf.WriteString(t.String())
	case Number:
		buf.WriteString(string(t))
	case String:
		return appendString(buf, string(t))
	case Array:
		if maxDepth <= 0 {
			return errEncodeDepth
		}
		buf.WriteByte('[')
		for i, e := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := AppendJSON(buf, e, maxDepth-1); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case Object:
		if maxDepth <= 0 {
			return errEncodeDepth
		}
		buf.WriteByte('{')
		for i, m := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := appendString(buf, m.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := AppendJSON(buf, m.Value, maxDepth-1); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("unexpected json value type: %T", v)
	}
	return nil
}

func appendString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode terminates every value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}

func marshal(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := AppendJSON(&buf, v, MaxEncodeDepth); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func compact(v Value) string {
	b, err := marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
