package tempearly

// initCoreFunctions registers the free functions available at global
// scope without a receiver as plain Function objects declared straight
// into Globals.
func (i *Interpreter) initCoreFunctions() {
	i.registerFunc("print", -1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		for _, a := range args {
			s, err := i.Stringify(a)
			if err != nil {
				return nil, err
			}
			if err := i.WriteText(s); err != nil {
				return nil, err
			}
		}
		return Null, nil
	})

	i.registerFunc("typeof", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		return NewString(i.ClassOf(args[0]).Name), nil
	})

	i.registerFunc("int", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		switch {
		case args[0].IsInt():
			return args[0], nil
		case args[0].IsFloat():
			return NewInt(int64(args[0].AsFloat())), nil
		case args[0].IsString():
			n, err := parseInt(args[0].AsString())
			if err != nil {
				return nil, i.RaiseType(i.ValueErrorClass, ErrValue, "cannot convert %q to Int", args[0].AsString())
			}
			return NewInt(n), nil
		default:
			return nil, i.RaiseType(i.TypeErrorClass, ErrType, "cannot convert %s to Int", i.ClassOf(args[0]).Name)
		}
	})

	i.registerFunc("float", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		switch {
		case args[0].IsFloat():
			return args[0], nil
		case args[0].IsInt():
			return NewFloat(args[0].AsFloat()), nil
		case args[0].IsString():
			f, err := parseFloat(args[0].AsString())
			if err != nil {
				return nil, i.RaiseType(i.ValueErrorClass, ErrValue, "cannot convert %q to Float", args[0].AsString())
			}
			return NewFloat(f), nil
		default:
			return nil, i.RaiseType(i.TypeErrorClass, ErrType, "cannot convert %s to Float", i.ClassOf(args[0]).Name)
		}
	})

	i.registerFunc("str", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		s, err := i.Stringify(args[0])
		if err != nil {
			return nil, err
		}
		return NewString(s), nil
	})

	i.registerFunc("list", -1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		if len(args) == 0 {
			return i.NewList(nil), nil
		}
		items, err := i.drain(args[0])
		if err != nil {
			return nil, err
		}
		return i.NewList(items), nil
	})

	i.registerFunc("include", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		return i.Include(args[0].AsString())
	})
	i.registerFunc("import", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		return i.Import(args[0].AsString())
	})
}

func (i *Interpreter) registerFunc(name string, arity Arity, fn NativeFunc) {
	v := wrapNativeFunction(NewNativeStatic(name, arity, fn))
	i.Globals.Declare(name, v)
}
