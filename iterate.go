package tempearly

// Iterate and IterNext implement the lazy, one-shot Iterator contract:
// obtaining an iterator is a single __iter__ call; advancing
// it calls __next__ repeatedly, which signals exhaustion by raising
// stopIteration rather than returning a sentinel value, so that Null
// remains a legal yielded element. Iterators are user-overridable
// script objects dispatched through the magic-method protocol, not
// fixed Go-side iterator funcs.
var stopIteration = &thrownError{value: Null, msg: "stop iteration"}

// Iterate calls __iter__ on v and returns the iterator Value. Values
// whose class is already Iterator-like (defines __next__ directly) are
// returned as-is, matching the convention that an Iterator is its own
// __iter__.
func (i *Interpreter) Iterate(v *Value) (*Value, error) {
	if i.hasMagic(v, "__iter__") {
		return i.dispatchMagic(v, "__iter__", nil)
	}
	return nil, i.RaiseType(i.TypeErrorClass, ErrType, "%s is not iterable", i.ClassOf(v).Name)
}

// IterNext advances iter once. ok is false exactly when the iterator
// is exhausted (no further Execute/Assign should happen this round);
// any other error propagates as a genuine failure.
func (i *Interpreter) IterNext(iter *Value) (*Value, bool, error) {
	v, err := i.dispatchMagic(iter, "__next__", nil)
	if err != nil {
		if err == stopIteration {
			return nil, false, nil
		}
		if te, ok := err.(*thrownError); ok && te == stopIteration {
			return nil, false, nil
		}
		return nil, false, err
	}
	return v, true, nil
}

// StopIteration is the error a native __next__ implementation returns
// to signal exhaustion.
func StopIteration() error { return stopIteration }
