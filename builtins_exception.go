package tempearly

// installExceptionHierarchy builds the Exception class tree: a single
// Exception base carrying message/code, with one subclass per
// sentinel error in errors.go so a Go-level failure and an
// in-language catch clause always agree on classification.
func (i *Interpreter) installExceptionHierarchy() {
	i.ExceptionClass = NewClass("Exception", i.ObjectClass)
	i.RegisterClass(i.ExceptionClass)
	i.installExceptionBaseMethods(i.ExceptionClass)

	sub := func(name string) *Class {
		c := NewClass(name, i.ExceptionClass)
		i.RegisterClass(c)
		return c
	}
	i.TypeErrorClass = sub("TypeError")
	i.ValueErrorClass = sub("ValueError")
	i.NameErrorClass = sub("NameError")
	i.KeyErrorClass = sub("KeyError")
	i.IndexErrorClass = sub("IndexError")
	i.StateErrorClass = sub("StateError")
	i.SyntaxErrorClass = sub("SyntaxError")
	i.ImportErrorClass = sub("ImportError")
	i.AttributeErrorClass = sub("AttributeError")
	i.ZeroDivisionErrClass = sub("ZeroDivisionError")
	i.OverflowErrorClass = sub("OverflowError")
	i.IOErrorClass = sub("IOError")
}

// installExceptionBaseMethods wires message/code accessors and
// __str__. code is a supplemented feature
// (original_source/src/api/exception.cc): a numeric classification a
// host can switch on without string-matching the message, defaulting
// to 0 when a constructor never set one.
func (i *Interpreter) installExceptionBaseMethods(c *Class) {
	method(c, "message", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		if v, ok := recv.AsObject().GetAttr("message"); ok {
			return v, nil
		}
		return NewString(""), nil
	})
	method(c, "code", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		if v, ok := recv.AsObject().GetAttr("code"); ok {
			return v, nil
		}
		return NewInt(0), nil
	})
	method(c, "__str__", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		if v, ok := recv.AsObject().GetAttr("message"); ok && v.IsString() {
			return v, nil
		}
		return NewString(recv.AsObject().Class.Name), nil
	})
	method(c, "__init__", -1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		if len(args) >= 1 {
			recv.AsObject().SetAttr("message", args[0])
		}
		if len(args) >= 2 {
			recv.AsObject().SetAttr("code", args[1])
		}
		return Null, nil
	})
}
