package tempearly

// installClassMethods wires the Class class's own reflective surface:
// scripts can ask a Class for its name, its superclass, and whether it
// subclasses another (used heavily by catch-clause type hints, which
// are themselves ordinary Class-valued expressions).
func (i *Interpreter) installClassMethods(c *Class) {
	method(c, "name", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		class, err := classOf(i, recv)
		if err != nil {
			return nil, err
		}
		return NewString(class.Name), nil
	})
	method(c, "super", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		class, err := classOf(i, recv)
		if err != nil {
			return nil, err
		}
		if class.Super == nil {
			return Null, nil
		}
		v, _ := i.Classes.Get(class.Super.Name)
		return v, nil
	})
	method(c, "__call__", -1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		class, err := classOf(i, recv)
		if err != nil {
			return nil, err
		}
		inst, err := class.Allocate(i)
		if err != nil {
			return nil, err
		}
		instVal := NewObject(inst)
		if i.hasMagic(instVal, "__init__") {
			if _, err := i.dispatchMagic(instVal, "__init__", args); err != nil {
				return nil, err
			}
		}
		return instVal, nil
	})
	method(c, "__str__", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		class, err := classOf(i, recv)
		if err != nil {
			return nil, err
		}
		return NewString("<class " + class.Name + ">"), nil
	})
}

func classOf(i *Interpreter, v *Value) (*Class, error) {
	if v.IsObject() {
		if c, ok := v.AsObject().Native.(*Class); ok {
			return c, nil
		}
	}
	return nil, i.RaiseType(i.TypeErrorClass, ErrType, "expected a Class")
}
