package tempearly

import "strings"

// installIterableMethods wires the shared collection-protocol methods
// every Iterable subclass (String, Binary, List, Map, Set, Range)
// inherits for free once it defines __iter__. Written purely in terms
// of Iterate/IterNext/Call so no method here needs to know the
// concrete representation of its receiver.
func (i *Interpreter) installIterableMethods(c *Class) {
	method(c, "each", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		fn, err := asCallable(i, args[0])
		if err != nil {
			return nil, err
		}
		err = i.forEach(recv, func(v *Value) (bool, error) {
			_, err := i.Call(fn, nil, []*Value{v})
			return true, err
		})
		return recv, err
	})

	method(c, "all?", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		fn, err := asCallable(i, args[0])
		if err != nil {
			return nil, err
		}
		result := true
		err = i.forEach(recv, func(v *Value) (bool, error) {
			r, err := i.Call(fn, nil, []*Value{v})
			if err != nil {
				return false, err
			}
			truthy, err := i.Truthy(r)
			if err != nil {
				return false, err
			}
			if !truthy {
				result = false
				return false, nil
			}
			return true, nil
		})
		return NewBool(result), err
	})

	method(c, "any?", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		fn, err := asCallable(i, args[0])
		if err != nil {
			return nil, err
		}
		result := false
		err = i.forEach(recv, func(v *Value) (bool, error) {
			r, err := i.Call(fn, nil, []*Value{v})
			if err != nil {
				return false, err
			}
			truthy, err := i.Truthy(r)
			if err != nil {
				return false, err
			}
			if truthy {
				result = true
				return false, nil
			}
			return true, nil
		})
		return NewBool(result), err
	})

	method(c, "has", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		found := false
		err := i.forEach(recv, func(v *Value) (bool, error) {
			eq, err := i.Equal(v, args[0])
			if err != nil {
				return false, err
			}
			if eq {
				found = true
				return false, nil
			}
			return true, nil
		})
		return NewBool(found), err
	})

	// first/last/single take an optional default value, substituted when
	// iteration is empty instead of raising StateError (original_source/
	// src/api/iterable.cc).
	method(c, "first", -1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		items, err := i.drain(recv)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			if len(args) > 0 {
				return args[0], nil
			}
			return nil, i.RaiseType(i.StateErrorClass, ErrState, "Iteration is empty")
		}
		return items[0], nil
	})

	method(c, "last", -1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		items, err := i.drain(recv)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			if len(args) > 0 {
				return args[0], nil
			}
			return nil, i.RaiseType(i.StateErrorClass, ErrState, "Iteration is empty")
		}
		return items[len(items)-1], nil
	})

	method(c, "single", -1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		items, err := i.drain(recv)
		if err != nil {
			return nil, err
		}
		switch len(items) {
		case 0:
			if len(args) > 0 {
				return args[0], nil
			}
			return nil, i.RaiseType(i.StateErrorClass, ErrState, "Iteration is empty")
		case 1:
			return items[0], nil
		default:
			return nil, i.RaiseType(i.StateErrorClass, ErrState, "Iteration contains more than one element")
		}
	})

	method(c, "take", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		if !args[0].IsInt() {
			return nil, i.RaiseType(i.TypeErrorClass, ErrType, "take count must be an Int")
		}
		n64 := args[0].AsInt()
		if n64 < 0 {
			return nil, i.RaiseType(i.ValueErrorClass, ErrValue, "negative count")
		}
		items, err := i.drain(recv)
		if err != nil {
			return nil, err
		}
		n := int(n64)
		if n > len(items) {
			n = len(items)
		}
		return i.NewList(items[:n]), nil
	})

	// drop is a supplemented feature (original_source/src/api/iterable.cc):
	// the complement of take, yielding every element past the first n.
	method(c, "drop", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		items, err := i.drain(recv)
		if err != nil {
			return nil, err
		}
		n := int(args[0].AsInt())
		if n > len(items) {
			n = len(items)
		}
		if n < 0 {
			n = 0
		}
		return i.NewList(items[n:]), nil
	})

	method(c, "max", -1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		return i.extreme(recv, args, 1)
	})
	method(c, "min", -1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		return i.extreme(recv, args, -1)
	})

	// sum/avg take an optional function to combine elements in place of
	// __add__ dispatch (original_source/src/api/iterable.cc).
	method(c, "sum", -1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		items, err := i.drain(recv)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			return nil, i.RaiseType(i.StateErrorClass, ErrState, "Iteration is empty")
		}
		var fn *Function
		if len(args) > 0 {
			fn, err = asCallable(i, args[0])
			if err != nil {
				return nil, err
			}
		}
		return i.foldSum(items, fn)
	})

	method(c, "avg", -1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		items, err := i.drain(recv)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			return nil, i.RaiseType(i.StateErrorClass, ErrState, "Iteration is empty")
		}
		var fn *Function
		if len(args) > 0 {
			fn, err = asCallable(i, args[0])
			if err != nil {
				return nil, err
			}
		}
		sum, err := i.foldSum(items, fn)
		if err != nil {
			return nil, err
		}
		return i.dispatchMagic(sum, "__div__", []*Value{NewInt(int64(len(items)))})
	})

	method(c, "map", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		fn, err := asCallable(i, args[0])
		if err != nil {
			return nil, err
		}
		items, err := i.drain(recv)
		if err != nil {
			return nil, err
		}
		out := make([]*Value, len(items))
		for idx, v := range items {
			out[idx], err = i.Call(fn, nil, []*Value{v})
			if err != nil {
				return nil, err
			}
		}
		return i.NewList(out), nil
	})

	method(c, "filter", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		fn, err := asCallable(i, args[0])
		if err != nil {
			return nil, err
		}
		items, err := i.drain(recv)
		if err != nil {
			return nil, err
		}
		out := make([]*Value, 0, len(items))
		for _, v := range items {
			r, err := i.Call(fn, nil, []*Value{v})
			if err != nil {
				return nil, err
			}
			truthy, err := i.Truthy(r)
			if err != nil {
				return nil, err
			}
			if truthy {
				out = append(out, v)
			}
		}
		return i.NewList(out), nil
	})

	alias(c, "grep", "filter")

	method(c, "join", -1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		sep := ""
		if len(args) == 1 {
			sep = args[0].AsString()
		}
		items, err := i.drain(recv)
		if err != nil {
			return nil, err
		}
		parts := make([]string, len(items))
		for idx, v := range items {
			parts[idx], err = i.Stringify(v)
			if err != nil {
				return nil, err
			}
		}
		return NewString(strings.Join(parts, sep)), nil
	})

	method(c, "sort", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		items, err := i.drain(recv)
		if err != nil {
			return nil, err
		}
		sorted, err := i.sortValues(items)
		if err != nil {
			return nil, err
		}
		return i.NewList(sorted), nil
	})

	method(c, "as_json", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		s, err := i.toJSONString(recv)
		if err != nil {
			return nil, err
		}
		return NewString(s), nil
	})
}

// asCallable resolves v to an invocable *Function, raising a TypeError
// if it isn't one.
func asCallable(i *Interpreter, v *Value) (*Function, error) {
	if v.IsObject() {
		if fn, ok := v.AsObject().Native.(*Function); ok {
			return fn, nil
		}
	}
	return nil, i.RaiseType(i.TypeErrorClass, ErrType, "expected a Function")
}

// forEach walks recv's Iterable protocol once, calling visit for each
// element; visit returning false stops iteration early without error.
func (i *Interpreter) forEach(recv *Value, visit func(*Value) (bool, error)) error {
	iter, err := i.Iterate(recv)
	if err != nil {
		return err
	}
	for {
		v, ok, err := i.IterNext(iter)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		cont, err := visit(v)
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}
}

// drain materializes every element of recv's iteration into a slice.
// Used by the methods above that need random access or a count
// up-front (first/last/sort/join/...); acceptable since the built-in
// collections are already materialized and Range/Iterator are the only
// lazily-generated sources, both of which are expected to be bounded
// when these methods are called on them.
func (i *Interpreter) drain(recv *Value) ([]*Value, error) {
	var out []*Value
	err := i.forEach(recv, func(v *Value) (bool, error) {
		out = append(out, v)
		return true, nil
	})
	return out, err
}

// extreme implements max (sign 1) and min (sign -1). With no comparator,
// an element replaces the running best when best < element (max) or
// element < best (min), via __lt__ dispatch either way; with a
// comparator cmp(best, element), a result whose sign is opposite to
// sign decides the replacement (original_source/src/api/iterable.cc).
func (i *Interpreter) extreme(recv *Value, args []*Value, sign int) (*Value, error) {
	items, err := i.drain(recv)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, i.RaiseType(i.StateErrorClass, ErrState, "Iteration is empty")
	}
	var fn *Function
	if len(args) > 0 {
		fn, err = asCallable(i, args[0])
		if err != nil {
			return nil, err
		}
	}
	best := items[0]
	for _, v := range items[1:] {
		var replace bool
		if fn != nil {
			r, err := i.Call(fn, nil, []*Value{best, v})
			if err != nil {
				return nil, err
			}
			replace = int64(sign)*r.AsInt() < 0
		} else if sign > 0 {
			replace, err = i.objLess(best, v)
		} else {
			replace, err = i.objLess(v, best)
		}
		if err != nil {
			return nil, err
		}
		if replace {
			best = v
		}
	}
	return best, nil
}

// foldSum reduces items via fn(acc, element) when fn is given, or
// __add__ dispatch otherwise, seeded with the first element.
func (i *Interpreter) foldSum(items []*Value, fn *Function) (*Value, error) {
	acc := items[0]
	var err error
	for _, v := range items[1:] {
		if fn != nil {
			acc, err = i.Call(fn, nil, []*Value{acc, v})
		} else {
			acc, err = i.dispatchMagic(acc, "__add__", []*Value{v})
		}
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}
