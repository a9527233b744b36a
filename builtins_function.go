package tempearly

// installFunctionMethods wires Function's call protocol surface:
// __call__ delegates to the standard Call dispatch, curry implements
// partial application over a Function value, and arity reports the
// parameter count.
func (i *Interpreter) installFunctionMethods(c *Class) {
	method(c, "__call__", -1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		fn, err := asCallable(i, recv)
		if err != nil {
			return nil, err
		}
		return i.Call(fn, nil, args)
	})
	method(c, "curry", -1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		fn, err := asCallable(i, recv)
		if err != nil {
			return nil, err
		}
		curried := Curry(fn, nil, append([]*Value{}, args...))
		return i.wrapFunction(curried), nil
	})
	method(c, "arity", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		fn, err := asCallable(i, recv)
		if err != nil {
			return nil, err
		}
		a := fn.EffectiveArity()
		if n, ok := a.Exact(); ok {
			return NewInt(int64(n)), nil
		}
		return NewInt(int64(a)), nil
	})
}
