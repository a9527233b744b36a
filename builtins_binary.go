package tempearly

// installBinaryMethods wires Binary's magic methods over
// runes.ByteString; Binary is Tempearly's raw-byte counterpart to
// String, following String's method shape since there's no distinct
// byte-sequence type to model it on.
func (i *Interpreter) installBinaryMethods(c *Class) {
	method(c, "__eq__", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		if !args[0].IsBinary() {
			return False, nil
		}
		return NewBool(recv.AsBinary().Equal(args[0].AsBinary())), nil
	})
	method(c, "length", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		return NewInt(int64(recv.AsBinary().Len())), nil
	})
	alias(c, "size", "length")
	method(c, "__add__", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		if !args[0].IsBinary() {
			return nil, i.RaiseType(i.TypeErrorClass, ErrType, "cannot concatenate Binary with %s", i.ClassOf(args[0]).Name)
		}
		return NewBinary(recv.AsBinary().Concat(args[0].AsBinary()).Bytes()), nil
	})
	method(c, "__iter__", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		data := recv.AsBinary().Bytes()
		idx := 0
		return i.newIterator(func() (*Value, bool, error) {
			if idx >= len(data) {
				return nil, false, nil
			}
			v := NewInt(int64(data[idx]))
			idx++
			return v, true, nil
		}), nil
	})
}
