package tempearly

import (
	"fmt"
	"strconv"

	"github.com/peelonet/tempearly/runes"
)

// Kind tags the representation a Value currently holds. Kept as a thin
// tagged variant rather than a reflection-based wrapper: Tempearly
// values are always one of a fixed set of primitive reps, or an Object
// instance, never an arbitrary host Go type, so reflection buys
// nothing and costs a type switch on every access.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindBinary
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindString:
		return "String"
	case KindBinary:
		return "Binary"
	case KindObject:
		return "Object"
	default:
		return "Unknown"
	}
}

// Value is Tempearly's universal runtime cell: a tagged union
// of the primitive kinds plus a pointer to an Instance for everything
// else (collections, exceptions, user classes). Values are passed by
// pointer but are conceptually immutable once constructed, except for
// the mutable state an Instance's own attribute map carries.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    runes.String
	bin  runes.ByteString
	obj  *Instance
}

// Null is the shared null sentinel so identity comparisons
// (`a == Null`) are cheap; Tempearly null is a singleton.
var Null = &Value{kind: KindNull}

// True and False are the two Bool singletons.
var (
	True  = &Value{kind: KindBool, b: true}
	False = &Value{kind: KindBool, b: false}
)

func NewBool(b bool) *Value {
	if b {
		return True
	}
	return False
}

func NewInt(i int64) *Value { return &Value{kind: KindInt, i: i} }

func NewFloat(f float64) *Value { return &Value{kind: KindFloat, f: f} }

func NewString(s string) *Value { return &Value{kind: KindString, s: runes.New(s)} }

func NewRuneString(s runes.String) *Value { return &Value{kind: KindString, s: s} }

func NewBinary(b []byte) *Value { return &Value{kind: KindBinary, bin: runes.NewBytes(b)} }

// NewObject wraps an Instance (the result of allocating a Class) as a
// Value.
func NewObject(o *Instance) *Value { return &Value{kind: KindObject, obj: o} }

func (v *Value) Kind() Kind { return v.kind }

func (v *Value) IsNull() bool   { return v.kind == KindNull }
func (v *Value) IsBool() bool   { return v.kind == KindBool }
func (v *Value) IsInt() bool    { return v.kind == KindInt }
func (v *Value) IsFloat() bool  { return v.kind == KindFloat }
func (v *Value) IsNumber() bool { return v.kind == KindInt || v.kind == KindFloat }
func (v *Value) IsString() bool { return v.kind == KindString }
func (v *Value) IsBinary() bool { return v.kind == KindBinary }
func (v *Value) IsObject() bool { return v.kind == KindObject }

// AsBool returns the underlying bool, or false for a non-Bool value.
func (v *Value) AsBool() bool { return v.kind == KindBool && v.b }

func (v *Value) AsInt() int64 { return v.i }

func (v *Value) AsFloat() float64 {
	if v.kind == KindInt {
		return float64(v.i)
	}
	return v.f
}

func (v *Value) AsRuneString() runes.String { return v.s }

func (v *Value) AsString() string { return v.s.String() }

func (v *Value) AsBinary() runes.ByteString { return v.bin }

func (v *Value) AsObject() *Instance { return v.obj }

// Truthy implements the language's truthiness table: Null and false are
// falsy, 0 and 0.0 are falsy, an empty String/Binary is falsy,
// everything else (including every Object, even an empty collection
// instance) is truthy unless its class overrides __bool__ — that
// override is applied by the evaluator, not here, since it requires an
// Interpreter to dispatch the call.
func (v *Value) Truthy() bool {
	switch v.kind {
	case KindNull:
		return false
	case KindBool:
		return v.b
	case KindInt:
		return v.i != 0
	case KindFloat:
		return v.f != 0
	case KindString:
		return v.s.Len() > 0
	case KindBinary:
		return v.bin.Len() > 0
	default:
		return true
	}
}

// GoString renders a value for diagnostics (error messages, logf); it
// is not the in-language __str__/__repr__ conversion, which requires
// an Interpreter to dispatch user-overridden magic methods.
func (v *Value) GoString() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return strconv.Quote(v.s.String())
	case KindBinary:
		return fmt.Sprintf("Binary(%d)", v.bin.Len())
	case KindObject:
		if v.obj != nil && v.obj.Class != nil {
			return fmt.Sprintf("<%s>", v.obj.Class.Name)
		}
		return "<object>"
	default:
		return "<?>"
	}
}
