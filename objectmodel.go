package tempearly

import "fmt"

// This file implements the object-model protocols every node in eval.go
// relies on: attribute resolution, the call protocol, magic-method
// operator dispatch, and string conversion, built over GetAttr/
// Class.Lookup and the dynamic attribute tables in class.go.

// GetAttr resolves name on v: instance attributes first (for Object
// values), then the class method-resolution-order chain. Returns
// (value, true) on a hit. NullSafe callers should check v.IsNull()
// themselves before calling GetAttr.
func (i *Interpreter) GetAttr(v *Value, name string) (*Value, bool) {
	if v.IsObject() {
		if a, ok := v.AsObject().GetAttr(name); ok {
			return a, true
		}
	}
	class := i.ClassOf(v)
	if a, _, ok := class.Lookup(name); ok {
		return a, true
	}
	return nil, false
}

// SetAttr assigns name on v. Only Object values have a mutable
// attribute table; assigning an attribute on a primitive is a
// TypeError: primitives are not extensible instances.
func (i *Interpreter) SetAttr(v *Value, name string, val *Value) error {
	if !v.IsObject() {
		return i.RaiseType(i.TypeErrorClass, ErrType, "cannot set attribute %q on %s", name, i.ClassOf(v).Name)
	}
	v.AsObject().SetAttr(name, val)
	return nil
}

// Call invokes fn with the given receiver (nil for a free function)
// and arguments, enforcing arity and binding parameters into a fresh
// Frame for scripted functions.
func (i *Interpreter) Call(fn *Function, recv *Value, args []*Value) (*Value, error) {
	switch fn.Kind {
	case FuncMethodAlias:
		return i.Call(fn.Aliased, recv, args)

	case FuncUnboundMethod:
		if len(args) == 0 {
			return nil, i.RaiseType(i.TypeErrorClass, ErrType, "%s requires an explicit receiver", fn.Name)
		}
		return i.Call(fn.Unbound, args[0], args[1:])

	case FuncCurry:
		full := make([]*Value, 0, len(fn.Bound)+len(args))
		full = append(full, fn.Bound...)
		full = append(full, args...)
		r := recv
		if fn.BoundOn != nil {
			r = fn.BoundOn
		}
		return i.Call(fn.Base, r, full)

	case FuncNativeMethod, FuncNativeStatic:
		if !fn.Arity.Accepts(len(args)) {
			return nil, i.RaiseType(i.TypeErrorClass, ErrType, "%s expects %s, got %d", fn.Name, arityDesc(fn.Arity), len(args))
		}
		return fn.Native(i, recv, args)

	case FuncScripted:
		return i.callScripted(fn, recv, args)

	default:
		return nil, i.RaiseType(i.TypeErrorClass, ErrType, "value is not callable")
	}
}

func arityDesc(a Arity) string {
	if n, ok := a.Exact(); ok {
		return fmt.Sprintf("exactly %d argument(s)", n)
	}
	return fmt.Sprintf("at least %d argument(s)", a.Min())
}

func (i *Interpreter) callScripted(fn *Function, recv *Value, args []*Value) (*Value, error) {
	frame := NewFrame(fn.Frame, recv)
	frame.Interp = i

	argi := 0
	for _, p := range fn.Params {
		if p.Rest {
			rest := append([]*Value{}, args[argi:]...)
			frame.Declare(p.Name, i.NewList(rest))
			argi = len(args)
			continue
		}
		if argi < len(args) {
			if p.Type != nil {
				ok, err := p.Type.Accepts(i, frame, args[argi])
				if err != nil {
					return nil, err
				}
				if !ok {
					return nil, i.RaiseType(i.TypeErrorClass, ErrType, "%s: argument %q does not match its type hint", fn.Name, p.Name)
				}
			}
			frame.Declare(p.Name, args[argi])
			argi++
			continue
		}
		if p.Default != nil {
			v, err := p.Default.Evaluate(i, frame)
			if err != nil {
				return nil, err
			}
			frame.Declare(p.Name, v)
			continue
		}
		return nil, i.RaiseType(i.TypeErrorClass, ErrType, "%s missing required argument %q", fn.Name, p.Name)
	}

	for _, stmt := range fn.Body {
		res := stmt.Execute(i, frame)
		switch res.Kind {
		case RReturn:
			return res.Value, nil
		case RError:
			return nil, res.Err
		case RBreak, RContinue:
			return nil, i.RaiseType(i.StateErrorClass, ErrState, "%s outside of loop", map[ResultKind]string{RBreak: "break", RContinue: "continue"}[res.Kind])
		}
	}
	return Null, nil
}

// dispatchMagic calls the named magic method on recv with args,
// looking it up through recv's class chain. Returns a TypeError if the
// class has no such method (the caller decides whether that's a hard
// error or an opportunity to try a reflected/fallback operation, e.g.
// __radd__).
func (i *Interpreter) dispatchMagic(recv *Value, method string, args []*Value) (*Value, error) {
	class := i.ClassOf(recv)
	v, _, ok := class.Lookup(method)
	if !ok {
		return nil, i.RaiseType(i.TypeErrorClass, ErrType, "%s has no method %s", class.Name, method)
	}
	if !v.IsObject() {
		return nil, i.RaiseType(i.TypeErrorClass, ErrType, "%s.%s is not callable", class.Name, method)
	}
	fn, ok := v.AsObject().Native.(*Function)
	if !ok {
		return nil, i.RaiseType(i.TypeErrorClass, ErrType, "%s.%s is not callable", class.Name, method)
	}
	return i.Call(fn, recv, args)
}

// hasMagic reports whether recv's class defines method, without
// calling it.
func (i *Interpreter) hasMagic(recv *Value, method string) bool {
	_, _, ok := i.ClassOf(recv).Lookup(method)
	return ok
}

// Truthy applies the language's truthiness table, dispatching to a
// class's __bool__ override when one exists (Value.Truthy alone can't:
// it has no Interpreter to call through).
func (i *Interpreter) Truthy(v *Value) (bool, error) {
	if v.IsObject() && i.hasMagic(v, "__bool__") {
		res, err := i.dispatchMagic(v, "__bool__", nil)
		if err != nil {
			return false, err
		}
		return res.Truthy(), nil
	}
	return v.Truthy(), nil
}

// Stringify implements the __str__ dispatch used by text emission
// (C10) and string concatenation: primitives render directly, objects
// call their class's __str__, falling back to "<ClassName>" guarded by
// the INSPECTING cycle flag, which guards against recursive-container
// printing.
func (i *Interpreter) Stringify(v *Value) (string, error) {
	switch v.Kind() {
	case KindNull:
		return "", nil
	case KindBool, KindInt, KindFloat:
		return v.GoString(), nil
	case KindString:
		return v.AsString(), nil
	case KindBinary:
		return v.GoString(), nil
	}

	obj := v.AsObject()
	if obj.Inspecting {
		return fmt.Sprintf("<%s ...>", obj.Class.Name), nil
	}
	if !i.hasMagic(v, "__str__") {
		return fmt.Sprintf("<%s>", obj.Class.Name), nil
	}
	obj.Inspecting = true
	defer func() { obj.Inspecting = false }()
	res, err := i.dispatchMagic(v, "__str__", nil)
	if err != nil {
		return "", err
	}
	if !res.IsString() {
		return "", i.RaiseType(i.TypeErrorClass, ErrType, "__str__ must return a String")
	}
	return res.AsString(), nil
}

// Equal implements the __eq__-dispatched equality used by `==`, map
// keys, and `in`/`has` membership tests. Primitives compare by value;
// objects dispatch to __eq__ when defined, else fall back to identity.
func (i *Interpreter) Equal(a, b *Value) (bool, error) {
	if a.Kind() != b.Kind() {
		if a.IsNumber() && b.IsNumber() {
			return a.AsFloat() == b.AsFloat(), nil
		}
		return false, nil
	}
	switch a.Kind() {
	case KindNull:
		return true, nil
	case KindBool:
		return a.AsBool() == b.AsBool(), nil
	case KindInt:
		return a.AsInt() == b.AsInt(), nil
	case KindFloat:
		return a.AsFloat() == b.AsFloat(), nil
	case KindString:
		return a.AsRuneString().Equal(b.AsRuneString()), nil
	case KindBinary:
		return a.AsBinary().Equal(b.AsBinary()), nil
	}
	if i.hasMagic(a, "__eq__") {
		res, err := i.dispatchMagic(a, "__eq__", []*Value{b})
		if err != nil {
			return false, err
		}
		return res.Truthy(), nil
	}
	return a.AsObject() == b.AsObject(), nil
}

// Compare implements the __cmp__/__lt__-style three-way ordering used
// by sort and the relational operators: -1, 0, 1, dispatched through
// __cmp__ if defined, else through __lt__/__eq__ pairwise.
func (i *Interpreter) Compare(a, b *Value) (int, error) {
	if a.IsNumber() && b.IsNumber() {
		af, bf := a.AsFloat(), b.AsFloat()
		switch {
		case af < bf:
			return -1, nil
		case af > bf:
			return 1, nil
		default:
			return 0, nil
		}
	}
	if a.IsString() && b.IsString() {
		return a.AsRuneString().Compare(b.AsRuneString()), nil
	}
	if i.hasMagic(a, "__cmp__") {
		res, err := i.dispatchMagic(a, "__cmp__", []*Value{b})
		if err != nil {
			return 0, err
		}
		if !res.IsInt() {
			return 0, i.RaiseType(i.TypeErrorClass, ErrType, "__cmp__ must return an Int")
		}
		return int(res.AsInt()), nil
	}
	eq, err := i.Equal(a, b)
	if err != nil {
		return 0, err
	}
	if eq {
		return 0, nil
	}
	if i.hasMagic(a, "__lt__") {
		res, err := i.dispatchMagic(a, "__lt__", []*Value{b})
		if err != nil {
			return 0, err
		}
		if res.Truthy() {
			return -1, nil
		}
		return 1, nil
	}
	return 0, i.RaiseType(i.TypeErrorClass, ErrType, "%s is not orderable", i.ClassOf(a).Name)
}

// Hash computes a map-key hash for v, consistent with Equal: equal
// values must hash equal. Objects dispatch __hash__ when present.
func (i *Interpreter) Hash(v *Value) (uint64, error) {
	switch v.Kind() {
	case KindNull:
		return 0, nil
	case KindBool:
		if v.AsBool() {
			return 1, nil
		}
		return 2, nil
	case KindInt:
		return uint64(v.AsInt()), nil
	case KindFloat:
		return uint64(v.AsFloat()), nil
	case KindString:
		s := v.AsRuneString()
		return s.Hash(), nil
	case KindBinary:
		return v.AsBinary().Hash(), nil
	}
	if i.hasMagic(v, "__hash__") {
		res, err := i.dispatchMagic(v, "__hash__", nil)
		if err != nil {
			return 0, err
		}
		return uint64(res.AsInt()), nil
	}
	return 0, i.RaiseType(i.TypeErrorClass, ErrType, "%s is not hashable", i.ClassOf(v).Name)
}
