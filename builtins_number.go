package tempearly

import "math"

// installNumberMethods wires Int and Float's arithmetic and comparison
// magic methods, following a simple numeric promotion rule: an
// Int/Float mixed operation promotes to Float; same-kind Int ops stay
// integral and are checked for overflow/zero-division, raising the
// matching Exception class rather than silently wrapping or trapping
// (Go's native int64 behavior).
func (i *Interpreter) installNumberMethods(intClass, floatClass *Class) {
	i.installArith(intClass, true)
	i.installArith(floatClass, false)
}

func (i *Interpreter) installArith(c *Class, isInt bool) {
	method(c, "__str__", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		return NewString(recv.GoString()), nil
	})

	method(c, "__pos__", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		return recv, nil
	})
	method(c, "__neg__", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		if isInt {
			return NewInt(-recv.AsInt()), nil
		}
		return NewFloat(-recv.AsFloat()), nil
	})

	method(c, "__eq__", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		if !args[0].IsNumber() {
			return False, nil
		}
		return NewBool(recv.AsFloat() == args[0].AsFloat()), nil
	})
	method(c, "__lt__", 1, i.numCompare(func(a, b float64) bool { return a < b }))
	method(c, "__gt__", 1, i.numCompare(func(a, b float64) bool { return a > b }))
	method(c, "__lte__", 1, i.numCompare(func(a, b float64) bool { return a <= b }))
	method(c, "__gte__", 1, i.numCompare(func(a, b float64) bool { return a >= b }))
	method(c, "__cmp__", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		if !args[0].IsNumber() {
			return nil, i.RaiseType(i.TypeErrorClass, ErrType, "cannot compare Number with %s", i.ClassOf(args[0]).Name)
		}
		a, b := recv.AsFloat(), args[0].AsFloat()
		switch {
		case a < b:
			return NewInt(-1), nil
		case a > b:
			return NewInt(1), nil
		default:
			return NewInt(0), nil
		}
	})

	method(c, "__inc__", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		if isInt {
			n, overflow := addOverflows(recv.AsInt(), 1)
			if overflow {
				return nil, i.RaiseType(i.OverflowErrorClass, ErrOverflow, "integer overflow")
			}
			return NewInt(n), nil
		}
		return NewFloat(recv.AsFloat() + 1), nil
	})
	method(c, "__dec__", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		if isInt {
			n, overflow := subOverflows(recv.AsInt(), 1)
			if overflow {
				return nil, i.RaiseType(i.OverflowErrorClass, ErrOverflow, "integer overflow")
			}
			return NewInt(n), nil
		}
		return NewFloat(recv.AsFloat() - 1), nil
	})

	method(c, "__add__", 1, i.numBinop(isInt, func(a, b int64) (int64, bool) { return addOverflows(a, b) }, func(a, b float64) float64 { return a + b }))
	method(c, "__sub__", 1, i.numBinop(isInt, func(a, b int64) (int64, bool) { return subOverflows(a, b) }, func(a, b float64) float64 { return a - b }))
	method(c, "__mul__", 1, i.numBinop(isInt, func(a, b int64) (int64, bool) { return mulOverflows(a, b) }, func(a, b float64) float64 { return a * b }))

	method(c, "__div__", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		if !args[0].IsNumber() {
			return nil, i.RaiseType(i.TypeErrorClass, ErrType, "cannot divide %s by %s", i.ClassOf(recv).Name, i.ClassOf(args[0]).Name)
		}
		if isInt && args[0].IsInt() {
			if args[0].AsInt() == 0 {
				return nil, i.RaiseType(i.ZeroDivisionErrClass, ErrZeroDivision, "division by zero")
			}
			if recv.AsInt() == math.MinInt64 && args[0].AsInt() == -1 {
				return nil, i.RaiseType(i.OverflowErrorClass, ErrOverflow, "integer overflow")
			}
			return NewInt(recv.AsInt() / args[0].AsInt()), nil
		}
		b := args[0].AsFloat()
		if b == 0 {
			return nil, i.RaiseType(i.ZeroDivisionErrClass, ErrZeroDivision, "division by zero")
		}
		return NewFloat(recv.AsFloat() / b), nil
	})

	method(c, "__mod__", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		if !args[0].IsNumber() {
			return nil, i.RaiseType(i.TypeErrorClass, ErrType, "cannot modulo %s by %s", i.ClassOf(recv).Name, i.ClassOf(args[0]).Name)
		}
		if isInt && args[0].IsInt() {
			if args[0].AsInt() == 0 {
				return nil, i.RaiseType(i.ZeroDivisionErrClass, ErrZeroDivision, "modulo by zero")
			}
			return NewInt(recv.AsInt() % args[0].AsInt()), nil
		}
		return NewFloat(math.Mod(recv.AsFloat(), args[0].AsFloat())), nil
	})

	if isInt {
		method(c, "__and__", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
			return NewInt(recv.AsInt() & args[0].AsInt()), nil
		})
		method(c, "__or__", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
			return NewInt(recv.AsInt() | args[0].AsInt()), nil
		})
		method(c, "__xor__", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
			return NewInt(recv.AsInt() ^ args[0].AsInt()), nil
		})
		method(c, "__invert__", 0, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
			return NewInt(^recv.AsInt()), nil
		})
		method(c, "__lsh__", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
			return NewInt(recv.AsInt() << uint(args[0].AsInt())), nil
		})
		method(c, "__rsh__", 1, func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
			return NewInt(recv.AsInt() >> uint(args[0].AsInt())), nil
		})
	}
}

func (i *Interpreter) numCompare(cmp func(a, b float64) bool) NativeFunc {
	return func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		if !args[0].IsNumber() {
			return nil, i.RaiseType(i.TypeErrorClass, ErrType, "cannot compare %s with %s", i.ClassOf(recv).Name, i.ClassOf(args[0]).Name)
		}
		return NewBool(cmp(recv.AsFloat(), args[0].AsFloat())), nil
	}
}

func (i *Interpreter) numBinop(isInt bool, intOp func(a, b int64) (int64, bool), floatOp func(a, b float64) float64) NativeFunc {
	return func(i *Interpreter, recv *Value, args []*Value) (*Value, error) {
		if !args[0].IsNumber() {
			return nil, i.RaiseType(i.TypeErrorClass, ErrType, "unsupported operand type %s", i.ClassOf(args[0]).Name)
		}
		if isInt && args[0].IsInt() {
			result, overflow := intOp(recv.AsInt(), args[0].AsInt())
			if overflow {
				return nil, i.RaiseType(i.OverflowErrorClass, ErrOverflow, "integer overflow")
			}
			return NewInt(result), nil
		}
		return NewFloat(floatOp(recv.AsFloat(), args[0].AsFloat())), nil
	}
}

func addOverflows(a, b int64) (int64, bool) {
	r := a + b
	if (b > 0 && r < a) || (b < 0 && r > a) {
		return 0, true
	}
	return r, false
}

func subOverflows(a, b int64) (int64, bool) {
	r := a - b
	if (b < 0 && r < a) || (b > 0 && r > a) {
		return 0, true
	}
	return r, false
}

func mulOverflows(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, false
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, true
	}
	r := a * b
	if r/b != a {
		return 0, true
	}
	return r, false
}
