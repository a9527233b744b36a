package tempearly

import (
	"io"

	"github.com/peelonet/tempearly/runes"
)

// Interpreter is the interpreter shell (C9): the class registry,
// global variable table, and the bookkeeping state a running script
// needs beyond its own Frame chain, including cached well-known
// classes since Tempearly dispatches on class identity constantly
// (every magic-method call, every exception match).
type Interpreter struct {
	Classes *OrderedMap // name -> *Value(Object) wrapping *Class via Instance, see classOf helpers
	Globals *Frame

	// Cached well-known classes, populated once by initClasses so hot
	// paths (arithmetic, iteration, exceptions) never pay a registry
	// lookup.
	ObjectClass    *Class
	IterableClass  *Class
	VoidClass      *Class
	BoolClass      *Class
	IntClass       *Class
	FloatClass     *Class
	StringClass    *Class
	BinaryClass    *Class
	ListClass      *Class
	MapClass       *Class
	SetClass       *Class
	RangeClass     *Class
	IteratorClass  *Class
	FunctionClass  *Class
	ClassClass     *Class
	FileClass      *Class

	ExceptionClass       *Class
	TypeErrorClass       *Class
	ValueErrorClass      *Class
	NameErrorClass       *Class
	KeyErrorClass        *Class
	IndexErrorClass      *Class
	StateErrorClass      *Class
	SyntaxErrorClass     *Class
	ImportErrorClass     *Class
	AttributeErrorClass  *Class
	ZeroDivisionErrClass *Class
	OverflowErrorClass   *Class
	IOErrorClass         *Class

	// Pending/caught exception slots the evaluator threads through
	// Try/Catch handling.
	pendingException *Value
	caughtException  *Value

	// ImportedFiles memoizes import() by resolved path so a template
	// imported twice in one render is parsed once; include() does not
	// use it and rereads its file every time. Wiring point for
	// fsnotify-driven cache invalidation in cmd/tempearly.
	ImportedFiles map[string]*Value

	Request  *Value
	Response *Value

	// BaseDir anchors relative include()/import() paths.
	// Empty means resolve against the process's working directory.
	BaseDir string

	Out io.Writer
}

// NewInterpreter builds an Interpreter with a full class hierarchy and
// globals frame, ready to execute templates.
func NewInterpreter(out io.Writer) *Interpreter {
	i := &Interpreter{
		Classes:       NewOrderedMap(),
		Globals:       NewFrame(nil, nil),
		ImportedFiles: make(map[string]*Value),
		Out:           out,
	}
	i.initClasses()
	i.initCoreFunctions()
	return i
}

// RegisterClass adds c to the class registry under its own Name,
// exposing it to scripts as a global identifier bound to the Class
// object: classes are first-class values reachable by name.
func (i *Interpreter) RegisterClass(c *Class) {
	v := NewObject(&Instance{Class: i.ClassClass, Native: c, Attrs: NewOrderedMap()})
	i.Classes.Set(c.Name, v)
	i.Globals.Declare(c.Name, v)
}

// LookupClass resolves a registered class by name.
func (i *Interpreter) LookupClass(name string) (*Class, bool) {
	v, ok := i.Classes.Get(name)
	if !ok {
		return nil, false
	}
	c, ok := v.AsObject().Native.(*Class)
	return c, ok
}

// ClassOf returns the runtime Class of any Value, dispatching on Kind
// for primitives and reading Instance.Class for objects.
func (i *Interpreter) ClassOf(v *Value) *Class {
	switch v.Kind() {
	case KindNull:
		return i.VoidClass
	case KindBool:
		return i.BoolClass
	case KindInt:
		return i.IntClass
	case KindFloat:
		return i.FloatClass
	case KindString:
		return i.StringClass
	case KindBinary:
		return i.BinaryClass
	case KindObject:
		o := v.AsObject()
		if o.Class == nil {
			if _, ok := o.Native.(*Function); ok {
				return i.FunctionClass
			}
		}
		return o.Class
	default:
		return i.ObjectClass
	}
}

// RaiseType is a convenience for native methods: builds and returns an
// error wrapping the given sentinel, set as the pending exception
// value too so a Catch sees a matching Exception instance rather than
// only a Go error.
func (i *Interpreter) RaiseType(class *Class, sentinel error, format string, args ...any) error {
	err := newError(class.Name, "", 0, 0, sentinel, format, args...)
	exc := i.NewException(class, err.Msg)
	i.pendingException = exc
	return err
}

// NewException allocates an Exception instance of the given class with
// a message attribute, without raising it.
func (i *Interpreter) NewException(class *Class, message string) *Value {
	inst, _ := class.Allocate(i)
	inst.SetAttr("message", NewString(message))
	return NewObject(inst)
}

// WriteText writes literal template text to the response sink (C10),
// uninterpreted.
func (i *Interpreter) WriteText(s string) error {
	_, err := io.WriteString(i.Out, s)
	return err
}

// WriteValue stringifies v via __str__ dispatch and writes it,
// XML-escaping when escape is true ({{ }} tags; {! !} tags pass
// escape=false).
func (i *Interpreter) WriteValue(v *Value, escape bool) error {
	s, err := i.Stringify(v)
	if err != nil {
		return err
	}
	if escape {
		s = runes.New(s).EscapeXML()
	}
	return i.WriteText(s)
}
