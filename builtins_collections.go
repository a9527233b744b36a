package tempearly

import "strings"

// NewList allocates a List instance wrapping items directly (no copy);
// callers that need independent storage should copy first.
func (i *Interpreter) NewList(items []*Value) *Value {
	inst, _ := i.ListClass.Allocate(i)
	inst.Native = items
	return NewObject(inst)
}

func listOf(i *Interpreter, v *Value) ([]*Value, error) {
	if v.IsObject() {
		if items, ok := v.AsObject().Native.([]*Value); ok {
			return items, nil
		}
	}
	return nil, i.RaiseType(i.TypeErrorClass, ErrType, "expected a List")
}

// installListMethods wires List's magic methods; the Iterable suite
// (each/map/filter/sort/...) is inherited unmodified since List is
// already fully materialized.
func (i *Interpreter) installListMethods(c *Class) {
	method(c, "__iter__", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		items, err := listOf(i, recv)
		if err != nil {
			return nil, err
		}
		return i.newSliceIterator(items), nil
	})
	method(c, "length", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		items, err := listOf(i, recv)
		if err != nil {
			return nil, err
		}
		return NewInt(int64(len(items))), nil
	})
	alias(c, "size", "length")

	method(c, "__getitem__", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		items, err := listOf(i, recv)
		if err != nil {
			return nil, err
		}
		if !args[0].IsInt() {
			return nil, i.RaiseType(i.TypeErrorClass, ErrType, "List index must be an Int")
		}
		idx := int(args[0].AsInt())
		if idx < 0 {
			idx += len(items)
		}
		if idx < 0 || idx >= len(items) {
			return nil, i.RaiseType(i.IndexErrorClass, ErrIndex, "list index %d out of range", args[0].AsInt())
		}
		return items[idx], nil
	})

	method(c, "__setitem__", 2, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		items, err := listOf(i, recv)
		if err != nil {
			return nil, err
		}
		idx := int(args[0].AsInt())
		if idx < 0 {
			idx += len(items)
		}
		if idx < 0 || idx >= len(items) {
			return nil, i.RaiseType(i.IndexErrorClass, ErrIndex, "list index %d out of range", args[0].AsInt())
		}
		items[idx] = args[1]
		return args[1], nil
	})

	method(c, "push", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		items, err := listOf(i, recv)
		if err != nil {
			return nil, err
		}
		recv.AsObject().Native = append(items, args[0])
		return recv, nil
	})
	alias(c, "append", "push")

	method(c, "__add__", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		a, err := listOf(i, recv)
		if err != nil {
			return nil, err
		}
		b, err := listOf(i, args[0])
		if err != nil {
			return nil, err
		}
		out := make([]*Value, 0, len(a)+len(b))
		out = append(out, a...)
		out = append(out, b...)
		return i.NewList(out), nil
	})

	// sort!/reverse! are supplemented features (original_source/src/api/list.cc):
	// in-place variants of the Iterable-inherited sort/reverse.
	method(c, "sort!", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		items, err := listOf(i, recv)
		if err != nil {
			return nil, err
		}
		sorted, err := i.sortValues(items)
		if err != nil {
			return nil, err
		}
		recv.AsObject().Native = sorted
		return recv, nil
	})
	method(c, "reverse!", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		items, err := listOf(i, recv)
		if err != nil {
			return nil, err
		}
		for l, r := 0, len(items)-1; l < r; l, r = l+1, r-1 {
			items[l], items[r] = items[r], items[l]
		}
		return recv, nil
	})
	method(c, "reverse", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		items, err := listOf(i, recv)
		if err != nil {
			return nil, err
		}
		out := make([]*Value, len(items))
		for idx, v := range items {
			out[len(items)-1-idx] = v
		}
		return i.NewList(out), nil
	})

	method(c, "prepend", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		items, err := listOf(i, recv)
		if err != nil {
			return nil, err
		}
		out := make([]*Value, 0, len(items)+1)
		out = append(out, args[0])
		out = append(out, items...)
		recv.AsObject().Native = out
		return recv, nil
	})

	method(c, "clear", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		if _, err := listOf(i, recv); err != nil {
			return nil, err
		}
		recv.AsObject().Native = []*Value(nil)
		return recv, nil
	})

	method(c, "concat", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		a, err := listOf(i, recv)
		if err != nil {
			return nil, err
		}
		b, err := listOf(i, args[0])
		if err != nil {
			return nil, err
		}
		recv.AsObject().Native = append(a, b...)
		return recv, nil
	})
}

// NewMap allocates a Map instance backed by m.
func (i *Interpreter) NewMap(m *ValueMap) *Value {
	inst, _ := i.MapClass.Allocate(i)
	inst.Native = m
	return NewObject(inst)
}

func mapOf(i *Interpreter, v *Value) (*ValueMap, error) {
	if v.IsObject() {
		if m, ok := v.AsObject().Native.(*ValueMap); ok {
			return m, nil
		}
	}
	return nil, i.RaiseType(i.TypeErrorClass, ErrType, "expected a Map")
}

// installMapMethods wires Map's magic methods over a ValueMap, keyed
// by Hash/Equal dispatch rather than stringification so keys of any
// type compare the way the language's own equality does, including the
// supplemented __missing__ override hook (original_source/src/api/map.cc):
// a subclass overriding __missing__ is consulted before __getitem__
// raises KeyError, letting scripts implement default-valued maps.
func (i *Interpreter) installMapMethods(c *Class) {
	method(c, "__iter__", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		m, err := mapOf(i, recv)
		if err != nil {
			return nil, err
		}
		items := make([]*Value, 0, m.Len())
		m.Each(func(k, v *Value) bool {
			pair := i.NewList([]*Value{k, v})
			items = append(items, pair)
			return true
		})
		return i.newSliceIterator(items), nil
	})
	method(c, "length", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		m, err := mapOf(i, recv)
		if err != nil {
			return nil, err
		}
		return NewInt(int64(m.Len())), nil
	})
	alias(c, "size", "length")

	method(c, "__bool__", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		m, err := mapOf(i, recv)
		if err != nil {
			return nil, err
		}
		return NewBool(m.Len() > 0), nil
	})

	method(c, "__getitem__", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		m, err := mapOf(i, recv)
		if err != nil {
			return nil, err
		}
		v, ok, err := m.Get(i, args[0])
		if err != nil {
			return nil, err
		}
		if ok {
			return v, nil
		}
		if i.hasMagic(recv, "__missing__") {
			return i.dispatchMagic(recv, "__missing__", []*Value{args[0]})
		}
		return nil, i.RaiseType(i.KeyErrorClass, ErrKey, "key %s not found", args[0].GoString())
	})

	method(c, "__setitem__", 2, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		m, err := mapOf(i, recv)
		if err != nil {
			return nil, err
		}
		if err := m.Set(i, args[0], args[1]); err != nil {
			return nil, err
		}
		return args[1], nil
	})

	method(c, "has", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		m, err := mapOf(i, recv)
		if err != nil {
			return nil, err
		}
		_, ok, err := m.Get(i, args[0])
		if err != nil {
			return nil, err
		}
		return NewBool(ok), nil
	})

	method(c, "get", -2, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		m, err := mapOf(i, recv)
		if err != nil {
			return nil, err
		}
		v, ok, err := m.Get(i, args[0])
		if err != nil {
			return nil, err
		}
		if ok {
			return v, nil
		}
		if len(args) > 1 {
			return args[1], nil
		}
		return Null, nil
	})

	method(c, "keys", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		m, err := mapOf(i, recv)
		if err != nil {
			return nil, err
		}
		out := make([]*Value, 0, m.Len())
		m.Each(func(k, v *Value) bool {
			out = append(out, k)
			return true
		})
		return i.NewList(out), nil
	})

	method(c, "values", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		m, err := mapOf(i, recv)
		if err != nil {
			return nil, err
		}
		out := make([]*Value, 0, m.Len())
		m.Each(func(k, v *Value) bool {
			out = append(out, v)
			return true
		})
		return i.NewList(out), nil
	})

	method(c, "clear", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		m, err := mapOf(i, recv)
		if err != nil {
			return nil, err
		}
		m.Clear()
		return recv, nil
	})

	method(c, "update", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		m, err := mapOf(i, recv)
		if err != nil {
			return nil, err
		}
		other, err := mapOf(i, args[0])
		if err != nil {
			return nil, err
		}
		var setErr error
		other.Each(func(k, v *Value) bool {
			if setErr = m.Set(i, k, v); setErr != nil {
				return false
			}
			return true
		})
		if setErr != nil {
			return nil, setErr
		}
		return recv, nil
	})

	method(c, "__add__", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		a, err := mapOf(i, recv)
		if err != nil {
			return nil, err
		}
		b, err := mapOf(i, args[0])
		if err != nil {
			return nil, err
		}
		out := a.Clone()
		var setErr error
		b.Each(func(k, v *Value) bool {
			if setErr = out.Set(i, k, v); setErr != nil {
				return false
			}
			return true
		})
		if setErr != nil {
			return nil, setErr
		}
		return i.NewMap(out), nil
	})

	method(c, "join", -1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		sep1, sep2 := ": ", ", "
		if len(args) > 0 {
			sep1 = args[0].AsString()
		}
		if len(args) > 1 {
			sep2 = args[1].AsString()
		}
		m, err := mapOf(i, recv)
		if err != nil {
			return nil, err
		}
		var parts []string
		var joinErr error
		m.Each(func(k, v *Value) bool {
			ks, err := i.Stringify(k)
			if err != nil {
				joinErr = err
				return false
			}
			vs, err := i.Stringify(v)
			if err != nil {
				joinErr = err
				return false
			}
			parts = append(parts, ks+sep1+vs)
			return true
		})
		if joinErr != nil {
			return nil, joinErr
		}
		return NewString(strings.Join(parts, sep2)), nil
	})
	alias(c, "__str__", "join")
}

// NewSet allocates a Set instance backed by an OrderedMap keyed by each
// element's hash key and holding the element itself as the value;
// membership is the key set, and iteration yields the values.
func (i *Interpreter) NewSet(m *OrderedMap) *Value {
	inst, _ := i.SetClass.Allocate(i)
	inst.Native = m
	return NewObject(inst)
}

func setOf(i *Interpreter, v *Value) (*OrderedMap, error) {
	if v.IsObject() {
		if m, ok := v.AsObject().Native.(*OrderedMap); ok {
			return m, nil
		}
	}
	return nil, i.RaiseType(i.TypeErrorClass, ErrType, "expected a Set")
}

func (i *Interpreter) installSetMethods(c *Class) {
	method(c, "__iter__", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		m, err := setOf(i, recv)
		if err != nil {
			return nil, err
		}
		var items []*Value
		m.Each(func(k string, v *Value) bool {
			items = append(items, v)
			return true
		})
		return i.newSliceIterator(items), nil
	})
	method(c, "length", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		m, err := setOf(i, recv)
		if err != nil {
			return nil, err
		}
		return NewInt(int64(m.Len())), nil
	})
	alias(c, "size", "length")

	method(c, "add", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		m, err := setOf(i, recv)
		if err != nil {
			return nil, err
		}
		h, err := i.Hash(args[0])
		if err != nil {
			return nil, err
		}
		m.Set(hashKey(h), args[0])
		return recv, nil
	})

	method(c, "clear", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		if _, err := setOf(i, recv); err != nil {
			return nil, err
		}
		recv.AsObject().Native = NewOrderedMap()
		return recv, nil
	})
}

func hashKey(h uint64) string {
	b := make([]byte, 0, 20)
	if h == 0 {
		return "0"
	}
	for h > 0 {
		b = append([]byte{byte('0' + h%10)}, b...)
		h /= 10
	}
	return string(b)
}

// NewRange allocates a Range instance spanning [from, to), or [from,
// to] when !exclusive.
func (i *Interpreter) NewRange(from, to *Value, exclusive bool) *Value {
	inst, _ := i.RangeClass.Allocate(i)
	inst.Native = &rangeState{from: from, to: to, exclusive: exclusive}
	return NewObject(inst)
}

type rangeState struct {
	from, to  *Value
	exclusive bool
}

func (i *Interpreter) installRangeMethods(c *Class) {
	method(c, "__iter__", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		rs, ok := recv.AsObject().Native.(*rangeState)
		if !ok {
			return nil, i.RaiseType(i.StateErrorClass, ErrState, "corrupt range")
		}
		cur := rs.from.AsInt()
		end := rs.to.AsInt()
		return i.newIterator(func() (*Value, bool, error) {
			if rs.exclusive {
				if cur >= end {
					return nil, false, nil
				}
			} else if cur > end {
				return nil, false, nil
			}
			v := NewInt(cur)
			cur++
			return v, true, nil
		}), nil
	})
	method(c, "from", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		return recv.AsObject().Native.(*rangeState).from, nil
	})
	method(c, "to", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		return recv.AsObject().Native.(*rangeState).to, nil
	})
}
