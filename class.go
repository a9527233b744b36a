package tempearly

// This file implements the single-inheritance Class/Instance object
// model (C6): a dynamic attribute map plus an explicit superclass
// chain, since Tempearly classes are themselves first-class runtime
// values a script can define.

// Arity is the signed parameter-count convention used throughout the
// object model: non-negative N means "exactly N
// arguments", and a negative arity -(N+1) means "at least N arguments,
// with a variadic rest parameter."
type Arity int

// Exact reports whether the arity requires precisely n arguments.
func (a Arity) Exact() (n int, ok bool) {
	if a >= 0 {
		return int(a), true
	}
	return 0, false
}

// Min returns the minimum argument count this arity accepts.
func (a Arity) Min() int {
	if a >= 0 {
		return int(a)
	}
	return int(-(a + 1))
}

// Accepts reports whether n arguments satisfy this arity.
func (a Arity) Accepts(n int) bool {
	if a >= 0 {
		return n == int(a)
	}
	return n >= a.Min()
}

// allocKind distinguishes how Class.Allocate should construct a fresh
// Instance for a new object of this class.
type allocKind int

const (
	allocDefault allocKind = iota // plain Instance{Class: c, Attrs: ordered map}
	allocNative                   // class supplies its own Go-side allocator func
	allocNone                     // class is abstract / not directly instantiable (e.g. Iterable)
)

// Class is a runtime class object: name, superclass pointer, an
// attribute table holding its own methods/class-level fields (ordered,
// the same insertion-order guarantee Map gives scripts, generalized to
// every ordered table in the object model), and an optional native
// allocator for built-in representations (Int, String, List, ...).
type Class struct {
	Name       string
	Super      *Class
	Attrs      *OrderedMap
	alloc      allocKind
	nativeNew  func(i *Interpreter) *Instance
	Final      bool // true for Class itself and sealed built-ins
}

// NewClass creates a class with a default allocator, optionally rooted
// at a superclass (nil means it inherits directly from Object once
// Object itself exists in the registry).
func NewClass(name string, super *Class) *Class {
	return &Class{Name: name, Super: super, Attrs: NewOrderedMap(), alloc: allocDefault}
}

// NewNativeClass creates a class whose instances are allocated by a
// Go-side constructor (used for Int/Float/String/List/Map/... so their
// Instance carries a *Value payload rather than a bare attribute map).
func NewNativeClass(name string, super *Class, newFn func(i *Interpreter) *Instance) *Class {
	return &Class{Name: name, Super: super, Attrs: NewOrderedMap(), alloc: allocNative, nativeNew: newFn}
}

// NewAbstractClass creates a class that cannot be instantiated directly
// (Iterable, Exception's abstract base roles where applicable).
func NewAbstractClass(name string, super *Class) *Class {
	return &Class{Name: name, Super: super, Attrs: NewOrderedMap(), alloc: allocNone}
}

// IsSubclassOf walks the Super chain; a class is always its own
// subclass.
func (c *Class) IsSubclassOf(other *Class) bool {
	for cur := c; cur != nil; cur = cur.Super {
		if cur == other {
			return true
		}
	}
	return false
}

// Lookup searches this class's own Attrs, then each superclass in
// turn, returning the first hit and the class that defined it.
func (c *Class) Lookup(name string) (*Value, *Class, bool) {
	for cur := c; cur != nil; cur = cur.Super {
		if v, ok := cur.Attrs.Get(name); ok {
			return v, cur, true
		}
	}
	return nil, nil, false
}

// Allocate builds a fresh, uninitialized Instance of this class. The
// evaluator calls a constructor method (__init__ or a native
// equivalent) afterward; Allocate itself never runs script code.
func (c *Class) Allocate(i *Interpreter) (*Instance, error) {
	switch c.alloc {
	case allocNone:
		return nil, newError("Class", "", 0, 0, ErrType, "%s cannot be instantiated directly", c.Name)
	case allocNative:
		if c.nativeNew != nil {
			return c.nativeNew(i), nil
		}
		return &Instance{Class: c, Attrs: NewOrderedMap()}, nil
	default:
		return &Instance{Class: c, Attrs: NewOrderedMap()}, nil
	}
}

// Instance is an allocated object: its class pointer, a dynamic,
// insertion-ordered attribute map, and an optional native payload slot
// used by built-in representations (the boxed *Value for Int/String/...,
// the backing []*Value for List, the backing *ValueMap for Map, the
// backing iterator state for Iterator, etc). Native is deliberately
// `any` since each built-in class owns the concrete type it stores
// there; nothing outside that class's own methods should type-assert it.
type Instance struct {
	Class      *Class
	Attrs      *OrderedMap
	Native     any
	Inspecting bool // cycle guard for __str__/__repr__
}

// GetAttr resolves an attribute by the standard protocol: instance
// Attrs first, then the class's method-resolution-order Lookup. It
// does not dispatch __getattr__ fallback hooks; that belongs to the
// evaluator, which can tell a true miss from a deliberate Null return.
func (o *Instance) GetAttr(name string) (*Value, bool) {
	if v, ok := o.Attrs.Get(name); ok {
		return v, true
	}
	if v, _, ok := o.Class.Lookup(name); ok {
		return v, true
	}
	return nil, false
}

func (o *Instance) SetAttr(name string, v *Value) { o.Attrs.Set(name, v) }
