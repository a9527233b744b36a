package tempearly

// This file implements the expression half of the evaluator (C8) and
// the lvalue/Assign protocol (Variable) used by assignment,
// destructuring, for-loop binding and catch-clause binding.

func (e *LiteralExpr) Evaluate(i *Interpreter, f *Frame) (*Value, error) { return e.Value, nil }

func (e *AndExpr) Evaluate(i *Interpreter, f *Frame) (*Value, error) {
	l, err := e.Left.Evaluate(i, f)
	if err != nil {
		return nil, err
	}
	truthy, err := i.Truthy(l)
	if err != nil {
		return nil, err
	}
	if !truthy {
		return l, nil
	}
	return e.Right.Evaluate(i, f)
}

func (e *OrExpr) Evaluate(i *Interpreter, f *Frame) (*Value, error) {
	l, err := e.Left.Evaluate(i, f)
	if err != nil {
		return nil, err
	}
	truthy, err := i.Truthy(l)
	if err != nil {
		return nil, err
	}
	if truthy {
		return l, nil
	}
	return e.Right.Evaluate(i, f)
}

func (e *NotExpr) Evaluate(i *Interpreter, f *Frame) (*Value, error) {
	v, err := e.X.Evaluate(i, f)
	if err != nil {
		return nil, err
	}
	return NewBool(!v.Truthy()), nil
}

func (e *TernaryExpr) Evaluate(i *Interpreter, f *Frame) (*Value, error) {
	cond, err := e.Cond.Evaluate(i, f)
	if err != nil {
		return nil, err
	}
	truthy, err := i.Truthy(cond)
	if err != nil {
		return nil, err
	}
	if truthy {
		return e.Then.Evaluate(i, f)
	}
	return e.Else.Evaluate(i, f)
}

func (e *IdentifierExpr) Evaluate(i *Interpreter, f *Frame) (*Value, error) {
	if v, ok := f.Lookup(e.Name); ok {
		return v, nil
	}
	if v, ok := i.Globals.Lookup(e.Name); ok {
		return v, nil
	}
	return nil, i.RaiseType(i.NameErrorClass, ErrName, "undefined name %q", e.Name)
}

func (e *IdentifierExpr) IsVariable() bool { return true }

func (e *IdentifierExpr) Assign(i *Interpreter, f *Frame, v *Value) error {
	f.Assign(e.Name, v)
	return nil
}

func (e *AttributeExpr) Evaluate(i *Interpreter, f *Frame) (*Value, error) {
	recv, err := e.Recv.Evaluate(i, f)
	if err != nil {
		return nil, err
	}
	if e.NullSafe && recv.IsNull() {
		return Null, nil
	}
	if v, ok := i.GetAttr(recv, e.Name); ok {
		return v, nil
	}
	return nil, i.RaiseType(i.AttributeErrorClass, ErrAttribute, "%s has no attribute %q", i.ClassOf(recv).Name, e.Name)
}

func (e *AttributeExpr) IsVariable() bool { return true }

func (e *AttributeExpr) Assign(i *Interpreter, f *Frame, v *Value) error {
	recv, err := e.Recv.Evaluate(i, f)
	if err != nil {
		return err
	}
	return i.SetAttr(recv, e.Name, v)
}

func (e *CallExpr) Evaluate(i *Interpreter, f *Frame) (*Value, error) {
	var recv *Value
	var err error
	if e.Recv != nil {
		recv, err = e.Recv.Evaluate(i, f)
		if err != nil {
			return nil, err
		}
		if e.NullSafe && recv.IsNull() {
			return Null, nil
		}
	}

	args := make([]*Value, len(e.Args))
	for idx, a := range e.Args {
		args[idx], err = a.Evaluate(i, f)
		if err != nil {
			return nil, err
		}
	}

	if e.Method == "" {
		// calling a bare value: recv itself must be a Function object.
		if !recv.IsObject() {
			return nil, i.RaiseType(i.TypeErrorClass, ErrType, "value is not callable")
		}
		fn, ok := recv.AsObject().Native.(*Function)
		if !ok {
			return i.dispatchMagic(recv, "__call__", args)
		}
		return i.Call(fn, nil, args)
	}

	fv, ok := i.GetAttr(recv, e.Method)
	if !ok {
		return nil, i.RaiseType(i.AttributeErrorClass, ErrAttribute, "%s has no method %q", i.ClassOf(recv).Name, e.Method)
	}
	if !fv.IsObject() {
		return nil, i.RaiseType(i.TypeErrorClass, ErrType, "%s.%s is not callable", i.ClassOf(recv).Name, e.Method)
	}
	fn, ok := fv.AsObject().Native.(*Function)
	if !ok {
		return nil, i.RaiseType(i.TypeErrorClass, ErrType, "%s.%s is not callable", i.ClassOf(recv).Name, e.Method)
	}
	return i.Call(fn, recv, args)
}

func (e *SubscriptExpr) Evaluate(i *Interpreter, f *Frame) (*Value, error) {
	c, err := e.Container.Evaluate(i, f)
	if err != nil {
		return nil, err
	}
	idx, err := e.Index.Evaluate(i, f)
	if err != nil {
		return nil, err
	}
	return i.dispatchMagic(c, "__getitem__", []*Value{idx})
}

func (e *SubscriptExpr) IsVariable() bool { return true }

func (e *SubscriptExpr) Assign(i *Interpreter, f *Frame, v *Value) error {
	c, err := e.Container.Evaluate(i, f)
	if err != nil {
		return err
	}
	idx, err := e.Index.Evaluate(i, f)
	if err != nil {
		return err
	}
	_, err = i.dispatchMagic(c, "__setitem__", []*Value{idx, v})
	return err
}

func (e *PrefixExpr) Evaluate(i *Interpreter, f *Frame) (*Value, error) {
	cur, err := e.Var.Evaluate(i, f)
	if err != nil {
		return nil, err
	}
	next, err := i.stepValue(cur, e.Op)
	if err != nil {
		return nil, err
	}
	if err := e.Var.Assign(i, f, next); err != nil {
		return nil, err
	}
	return next, nil
}

func (e *PostfixExpr) Evaluate(i *Interpreter, f *Frame) (*Value, error) {
	cur, err := e.Var.Evaluate(i, f)
	if err != nil {
		return nil, err
	}
	next, err := i.stepValue(cur, e.Op)
	if err != nil {
		return nil, err
	}
	if err := e.Var.Assign(i, f, next); err != nil {
		return nil, err
	}
	return cur, nil
}

func (i *Interpreter) stepValue(v *Value, op IncDecOp) (*Value, error) {
	method := "__inc__"
	if op == OpDec {
		method = "__dec__"
	}
	return i.dispatchMagic(v, method, nil)
}

func (e *AssignExpr) Evaluate(i *Interpreter, f *Frame) (*Value, error) {
	v, err := e.Value.Evaluate(i, f)
	if err != nil {
		return nil, err
	}
	if err := e.Var.Assign(i, f, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (e *ListExpr) Evaluate(i *Interpreter, f *Frame) (*Value, error) {
	items := make([]*Value, len(e.Items))
	for idx, it := range e.Items {
		v, err := it.Evaluate(i, f)
		if err != nil {
			return nil, err
		}
		items[idx] = v
	}
	return i.NewList(items), nil
}

// IsVariable reports whether a list literal can serve as a
// destructuring lvalue: only when every element is itself a Variable.
func (e *ListExpr) IsVariable() bool {
	for _, it := range e.Items {
		if v, ok := it.(Variable); !ok || !v.IsVariable() {
			return false
		}
	}
	return true
}

// Assign destructures v (which must support __iter__) positionally
// into each element's own Assign.
func (e *ListExpr) Assign(i *Interpreter, f *Frame, v *Value) error {
	iter, err := i.Iterate(v)
	if err != nil {
		return err
	}
	for _, target := range e.Items {
		tv, ok := target.(Variable)
		if !ok {
			return i.RaiseType(i.TypeErrorClass, ErrType, "invalid assignment target")
		}
		item, ok, err := i.IterNext(iter)
		if err != nil {
			return err
		}
		if !ok {
			item = Null
		}
		if err := tv.Assign(i, f, item); err != nil {
			return err
		}
	}
	return nil
}

func (e *MapExpr) Evaluate(i *Interpreter, f *Frame) (*Value, error) {
	m := NewValueMap()
	for _, entry := range e.Entries {
		k, err := entry.Key.Evaluate(i, f)
		if err != nil {
			return nil, err
		}
		v, err := entry.Value.Evaluate(i, f)
		if err != nil {
			return nil, err
		}
		if err := m.Set(i, k, v); err != nil {
			return nil, err
		}
	}
	return i.NewMap(m), nil
}

func (e *RangeExpr) Evaluate(i *Interpreter, f *Frame) (*Value, error) {
	from, err := e.From.Evaluate(i, f)
	if err != nil {
		return nil, err
	}
	to, err := e.To.Evaluate(i, f)
	if err != nil {
		return nil, err
	}
	return i.NewRange(from, to, e.Exclusive), nil
}

func (e *FunctionExpr) Evaluate(i *Interpreter, f *Frame) (*Value, error) {
	fn := NewScriptedFunction("", e.Params, e.Body, f)
	return i.wrapFunction(fn), nil
}

func (i *Interpreter) wrapFunction(fn *Function) *Value {
	inst, _ := i.FunctionClass.Allocate(i)
	inst.Native = fn
	return NewObject(inst)
}

func (e *BinaryOpExpr) Evaluate(i *Interpreter, f *Frame) (*Value, error) {
	l, err := e.Left.Evaluate(i, f)
	if err != nil {
		return nil, err
	}
	r, err := e.Right.Evaluate(i, f)
	if err != nil {
		return nil, err
	}
	res, err := i.dispatchMagic(l, e.Method, []*Value{r})
	if err != nil {
		return nil, err
	}
	if e.Negate {
		return NewBool(!res.Truthy()), nil
	}
	return res, nil
}

func (e *UnaryOpExpr) Evaluate(i *Interpreter, f *Frame) (*Value, error) {
	v, err := e.X.Evaluate(i, f)
	if err != nil {
		return nil, err
	}
	return i.dispatchMagic(v, e.Method, nil)
}
