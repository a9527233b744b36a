package tempearly

// installBoolMethods wires Bool's magic methods. Bool has no
// arithmetic of its own; it only needs identity-flavored equality and
// string conversion beyond what Object already supplies.
func (i *Interpreter) installBoolMethods(c *Class) {
	method(c, "__str__", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		return NewString(recv.GoString()), nil
	})
	method(c, "__eq__", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		if !args[0].IsBool() {
			return False, nil
		}
		return NewBool(recv.AsBool() == args[0].AsBool()), nil
	})
	method(c, "__not__", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		return NewBool(!recv.AsBool()), nil
	})
}
