package tempearly

import "github.com/peelonet/tempearly/runes"

// generatorFunc is the Go-side closure backing every built-in Iterator
// instance: each call yields the next element, or signals exhaustion
// via ok=false. Scripted iterators (a user class overriding __next__
// directly) never go through this type; it exists purely so the
// built-in collections can produce a lazy Iterator without hand-writing
// a bespoke Go type per collection shape.
type generatorFunc func() (v *Value, ok bool, err error)

// installIteratorMethods wires Iterator's own __iter__ (itself) and
// __next__ (calls the captured generatorFunc).
func (i *Interpreter) installIteratorMethods(c *Class) {
	method(c, "__iter__", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		return recv, nil
	})
	method(c, "__next__", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		gen, ok := recv.AsObject().Native.(generatorFunc)
		if !ok {
			return nil, i.RaiseType(i.StateErrorClass, ErrState, "corrupt iterator")
		}
		v, ok, err := gen()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, stopIteration
		}
		return v, nil
	})
}

// newIterator allocates an Iterator instance around a generatorFunc.
func (i *Interpreter) newIterator(gen generatorFunc) *Value {
	inst, _ := i.IteratorClass.Allocate(i)
	inst.Native = gen
	return NewObject(inst)
}

// newSliceIterator yields each element of items in order, a direct
// iterator over an already-materialized slice (List, Map values/keys,
// Set members).
func (i *Interpreter) newSliceIterator(items []*Value) *Value {
	idx := 0
	return i.newIterator(func() (*Value, bool, error) {
		if idx >= len(items) {
			return nil, false, nil
		}
		v := items[idx]
		idx++
		return v, true, nil
	})
}

// newRuneIterator yields each rune of s as a one-character String,
// matching String's __iter__ contract.
func (i *Interpreter) newRuneIterator(s runes.String) *Value {
	idx := 0
	return i.newIterator(func() (*Value, bool, error) {
		if idx >= s.Len() {
			return nil, false, nil
		}
		r := s.At(idx)
		idx++
		return NewRuneString(runes.FromRunes([]rune{r})), true, nil
	})
}
