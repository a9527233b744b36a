package tempearly

import (
	"fmt"

	"github.com/peelonet/tempearly/runes"
)

// installObjectMethods wires Object's universal methods: every class
// ultimately inherits these unless it overrides them, as explicit
// __str__/__eq__/__hash__ magic methods so user classes can override
// the same protocol the built-ins use.
func (i *Interpreter) installObjectMethods(c *Class) {
	method(c, "__str__", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		return NewString(recv.GoString()), nil
	})
	method(c, "__eq__", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		if !recv.IsObject() || !args[0].IsObject() {
			return NewBool(recv == args[0]), nil
		}
		return NewBool(recv.AsObject() == args[0].AsObject()), nil
	})
	method(c, "__hash__", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		s := runes.New(objectAddr(recv))
		return NewInt(int64(s.Hash())), nil
	})
	method(c, "class", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		cv, _ := i.Classes.Get(i.ClassOf(recv).Name)
		return cv, nil
	})
	method(c, "is_a?", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		if !args[0].IsObject() {
			return False, nil
		}
		class, ok := args[0].AsObject().Native.(*Class)
		if !ok {
			return False, nil
		}
		return NewBool(i.ClassOf(recv).IsSubclassOf(class)), nil
	})
	method(c, "__bool__", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		return NewBool(recv.Truthy()), nil
	})

	// __gt__/__lte__/__gte__ are derived from __lt__ and __eq__ so a
	// concrete type only has to define the latter two (the same pattern
	// __cmp__/Compare already uses for sort); a type that wants its own
	// ordering relations can still override any of these directly.
	method(c, "__gt__", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		lt, err := i.objLess(args[0], recv)
		if err != nil {
			return nil, err
		}
		return NewBool(lt), nil
	})
	method(c, "__lte__", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		eq, err := i.Equal(recv, args[0])
		if err != nil {
			return nil, err
		}
		if eq {
			return True, nil
		}
		lt, err := i.objLess(recv, args[0])
		if err != nil {
			return nil, err
		}
		return NewBool(lt), nil
	})
	method(c, "__gte__", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		eq, err := i.Equal(recv, args[0])
		if err != nil {
			return nil, err
		}
		if eq {
			return True, nil
		}
		gt, err := i.objLess(args[0], recv)
		if err != nil {
			return nil, err
		}
		return NewBool(gt), nil
	})
}

// objLess dispatches a's __lt__ method against b, the shared primitive
// __gt__/__lte__/__gte__ are built from.
func (i *Interpreter) objLess(a, b *Value) (bool, error) {
	res, err := i.dispatchMagic(a, "__lt__", []*Value{b})
	if err != nil {
		return false, err
	}
	return res.Truthy(), nil
}

func objectAddr(v *Value) string {
	if v.IsObject() {
		return fmt.Sprintf("%p", v.AsObject())
	}
	return ""
}
