// Package json implements the JSON parser Tempearly's object model
// consumes for String.parse_json()/Request.json().
// It is adapted from mcvoid-json: a tagged Value type, fluent
// Index/Key accessors that return a null Value instead of erroring,
// and — the detail that matters most here — an object representation
// that preserves source key order instead of collapsing into a Go map,
// which is what lets Tempearly's own Map reproduce its insertion-order
// guarantee when round-tripping through JSON.
package json

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrType is returned when a Value is asked for the wrong accessor.
var ErrType = errors.New("json: type error")

// ErrParse is returned when the input is not well-formed JSON.
var ErrParse = errors.New("json: parse error")

// Type classifies a Value.
type Type int

const (
	Null Type = iota
	Number
	Integer
	String
	Boolean
	Array
	Object
)

func (t Type) String() string {
	switch t {
	case Null:
		return "<null>"
	case Number:
		return "<number>"
	case Integer:
		return "<integer>"
	case String:
		return "<string>"
	case Boolean:
		return "<boolean>"
	case Array:
		return "<array>"
	case Object:
		return "<object>"
	default:
		return "<unknown>"
	}
}

// Pair is one key/value entry of an Object value, kept in source order.
type Pair struct {
	Key   string
	Value *Value
}

// Value is a parsed JSON value.
type Value struct {
	typ     Type
	num     float64
	integer int64
	str     string
	boolean bool
	array   []*Value
	object  []Pair
}

func (v *Value) Type() Type {
	if v == nil {
		return Null
	}
	return v.typ
}

func (v *Value) AsNull() error {
	if v.Type() != Null {
		return fmt.Errorf("%w: not null: %s", ErrType, v.Type())
	}
	return nil
}

func (v *Value) AsNumber() (float64, error) {
	switch v.Type() {
	case Integer:
		return float64(v.integer), nil
	case Number:
		return v.num, nil
	default:
		return 0, fmt.Errorf("%w: not a number: %s", ErrType, v.Type())
	}
}

func (v *Value) AsInteger() (int64, error) {
	if v.Type() != Integer {
		return 0, fmt.Errorf("%w: not an integer: %s", ErrType, v.Type())
	}
	return v.integer, nil
}

func (v *Value) AsString() (string, error) {
	if v.Type() != String {
		return "", fmt.Errorf("%w: not a string: %s", ErrType, v.Type())
	}
	return v.str, nil
}

func (v *Value) AsBoolean() (bool, error) {
	if v.Type() != Boolean {
		return false, fmt.Errorf("%w: not a boolean: %s", ErrType, v.Type())
	}
	return v.boolean, nil
}

func (v *Value) AsArray() ([]*Value, error) {
	if v.Type() != Array {
		return nil, fmt.Errorf("%w: not an array: %s", ErrType, v.Type())
	}
	return v.array, nil
}

// AsObject returns the object's entries in source order.
func (v *Value) AsObject() ([]Pair, error) {
	if v.Type() != Object {
		return nil, fmt.Errorf("%w: not an object: %s", ErrType, v.Type())
	}
	return v.object, nil
}

// Index fluently indexes an array value; out-of-range or wrong-type
// returns a null Value rather than an error.
func (v *Value) Index(i int) *Value {
	if v.Type() != Array || i < 0 || i >= len(v.array) {
		return &Value{}
	}
	return v.array[i]
}

// Key fluently looks up an object member; missing key or wrong type
// returns a null Value rather than an error.
func (v *Value) Key(k string) *Value {
	if v.Type() != Object {
		return &Value{}
	}
	for _, p := range v.object {
		if p.Key == k {
			return p.Value
		}
	}
	return &Value{}
}

// String renders v back as JSON text (not Go's %v form).
func (v *Value) String() string {
	var b strings.Builder
	v.render(&b)
	return b.String()
}

func (v *Value) render(b *strings.Builder) {
	switch v.Type() {
	case Null:
		b.WriteString("null")
	case Integer:
		b.WriteString(strconv.FormatInt(v.integer, 10))
	case Number:
		b.WriteString(strconv.FormatFloat(v.num, 'g', -1, 64))
	case String:
		b.WriteString(strconv.Quote(v.str))
	case Boolean:
		if v.boolean {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case Array:
		b.WriteByte('[')
		for i, e := range v.array {
			if i > 0 {
				b.WriteString(", ")
			}
			e.render(b)
		}
		b.WriteByte(']')
	case Object:
		b.WriteByte('{')
		for i, p := range v.object {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.Quote(p.Key))
			b.WriteString(": ")
			p.Value.render(b)
		}
		b.WriteByte('}')
	}
}

// Constructors for building a Value tree directly, without parsing.
func NewNull() *Value           { return &Value{typ: Null} }
func NewBool(b bool) *Value     { return &Value{typ: Boolean, boolean: b} }
func NewInteger(i int64) *Value { return &Value{typ: Integer, integer: i} }
func NewNumber(f float64) *Value { return &Value{typ: Number, num: f} }
func NewString(s string) *Value { return &Value{typ: String, str: s} }
func NewArray(items []*Value) *Value {
	return &Value{typ: Array, array: items}
}
func NewObject(pairs []Pair) *Value {
	return &Value{typ: Object, object: pairs}
}
