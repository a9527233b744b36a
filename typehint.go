package tempearly

// Accepts evaluates the TypeHint against an already-computed value,
// composing nullable/conjunction/disjunction. Class
// expressions are evaluated fresh each call since a hint may reference
// a class bound to a local variable (rare, but the grammar allows it).
func (h *TypeHint) Accepts(i *Interpreter, f *Frame, v *Value) (bool, error) {
	switch h.Kind {
	case HintNullable:
		if v.IsNull() {
			return true, nil
		}
		return h.Of.Accepts(i, f, v)

	case HintAnd:
		l, err := h.Left.Accepts(i, f, v)
		if err != nil || !l {
			return false, err
		}
		return h.Right.Accepts(i, f, v)

	case HintOr:
		l, err := h.Left.Accepts(i, f, v)
		if err != nil {
			return false, err
		}
		if l {
			return true, nil
		}
		return h.Right.Accepts(i, f, v)

	default: // HintClass
		cv, err := h.Class.Evaluate(i, f)
		if err != nil {
			return false, err
		}
		if !cv.IsObject() {
			return false, i.RaiseType(i.TypeErrorClass, ErrType, "type hint must be a Class")
		}
		class, ok := cv.AsObject().Native.(*Class)
		if !ok {
			return false, i.RaiseType(i.TypeErrorClass, ErrType, "type hint must be a Class")
		}
		return i.ClassOf(v).IsSubclassOf(class), nil
	}
}
