package tempearly

// This file implements the statement half of the tree-walking
// evaluator (C8), one Execute method per ast.go statement node: run
// children in order, stop at the first non-success Result variant
// (Success/Break/Continue/Return/Error), the signal loops and
// exception handling both unwind through.

func (s *EmptyStmt) Execute(i *Interpreter, f *Frame) Result { return Success() }

func (s *TextStmt) Execute(i *Interpreter, f *Frame) Result {
	if err := i.WriteText(s.Text); err != nil {
		return ErrorResult(err)
	}
	return Success()
}

func (s *ExprStmt) Execute(i *Interpreter, f *Frame) Result {
	v, err := s.Expr.Evaluate(i, f)
	if err != nil {
		return ErrorResult(err)
	}
	if s.Escape == nil {
		return Success()
	}
	if err := i.WriteValue(v, *s.Escape); err != nil {
		return ErrorResult(err)
	}
	return Success()
}

func (s *BlockStmt) Execute(i *Interpreter, f *Frame) Result {
	for _, stmt := range s.Stmts {
		res := stmt.Execute(i, f)
		if res.IsAbrupt() {
			return res
		}
	}
	return Success()
}

func (s *IfStmt) Execute(i *Interpreter, f *Frame) Result {
	cond, err := s.Cond.Evaluate(i, f)
	if err != nil {
		return ErrorResult(err)
	}
	truthy, err := i.Truthy(cond)
	if err != nil {
		return ErrorResult(err)
	}
	if truthy {
		return s.Then.Execute(i, f)
	}
	if s.Else != nil {
		return s.Else.Execute(i, f)
	}
	return Success()
}

func (s *WhileStmt) Execute(i *Interpreter, f *Frame) Result {
	for {
		cond, err := s.Cond.Evaluate(i, f)
		if err != nil {
			return ErrorResult(err)
		}
		truthy, err := i.Truthy(cond)
		if err != nil {
			return ErrorResult(err)
		}
		if !truthy {
			return Success()
		}
		res := s.Body.Execute(i, f)
		switch res.Kind {
		case RBreak:
			return Success()
		case RContinue:
			continue
		case RSuccess:
			continue
		default:
			return res
		}
	}
}

// ForStmt drives the lazy one-shot Iterator protocol: obtain __iter__
// once, then repeatedly call
// __next__ until it signals exhaustion, assigning each yielded value
// to Var before running Body.
func (s *ForStmt) Execute(i *Interpreter, f *Frame) Result {
	coll, err := s.Collection.Evaluate(i, f)
	if err != nil {
		return ErrorResult(err)
	}
	iter, err := i.Iterate(coll)
	if err != nil {
		return ErrorResult(err)
	}

	ran := false
	for {
		v, ok, err := i.IterNext(iter)
		if err != nil {
			return ErrorResult(err)
		}
		if !ok {
			break
		}
		ran = true
		if err := s.Var.Assign(i, f, v); err != nil {
			return ErrorResult(err)
		}
		res := s.Body.Execute(i, f)
		switch res.Kind {
		case RBreak:
			return Success()
		case RContinue, RSuccess:
			continue
		default:
			return res
		}
	}
	if !ran && s.Else != nil {
		return s.Else.Execute(i, f)
	}
	return Success()
}

func (s *BreakStmt) Execute(i *Interpreter, f *Frame) Result    { return Break() }
func (s *ContinueStmt) Execute(i *Interpreter, f *Frame) Result { return Continue() }

func (s *ReturnStmt) Execute(i *Interpreter, f *Frame) Result {
	if s.Value == nil {
		return Return(Null)
	}
	v, err := s.Value.Evaluate(i, f)
	if err != nil {
		return ErrorResult(err)
	}
	return Return(v)
}

// ThrowStmt raises an exception Value, either freshly evaluated or (in
// the bare-`throw;` rethrow form) the frame's currently-caught
// exception. Rethrowing with nothing caught is itself a StateError.
func (s *ThrowStmt) Execute(i *Interpreter, f *Frame) Result {
	if s.Value == nil {
		if i.caughtException == nil {
			return ErrorResult(i.RaiseType(i.StateErrorClass, ErrState, "no exception to rethrow"))
		}
		return ErrorResult(i.throwValue(i.caughtException))
	}
	v, err := s.Value.Evaluate(i, f)
	if err != nil {
		return ErrorResult(err)
	}
	return ErrorResult(i.throwValue(v))
}

// throwValue wraps an arbitrary exception instance Value as a Go error
// carrying it, so Try/Catch (below) can recover the original Value
// rather than only a formatted message.
func (i *Interpreter) throwValue(v *Value) error {
	i.pendingException = v
	msg := "exception"
	if v.IsObject() {
		if m, ok := v.AsObject().GetAttr("message"); ok && m.IsString() {
			msg = m.AsString()
		}
	}
	return &thrownError{value: v, msg: msg}
}

// thrownError is the Go-error carrier for an in-language exception
// Value, distinct from RuntimeError (which represents lex/parse/host
// failures that never had a script-level Exception instance).
type thrownError struct {
	value *Value
	msg   string
}

func (e *thrownError) Error() string { return e.msg }

// TryStmt implements Try/Catch/Else/Finally semantics: Finally always
// runs, even when Body/Catches/Else itself produced an
// abrupt result; a panic-like re-raise from Finally overrides whatever
// the protected region produced.
func (s *TryStmt) Execute(i *Interpreter, f *Frame) Result {
	res := s.Body.Execute(i, f)

	if res.Kind == RError {
		exc, matched := i.matchException(res.Err)
		handled := false
		for _, c := range s.Catches {
			if !matched {
				break
			}
			ok, err := i.catchMatches(c, exc, f)
			if err != nil {
				res = ErrorResult(err)
				break
			}
			if !ok {
				continue
			}
			prevCaught := i.caughtException
			i.caughtException = exc
			if c.Var != nil {
				if err := c.Var.Assign(i, f, exc); err != nil {
					res = ErrorResult(err)
					i.caughtException = prevCaught
					handled = true
					break
				}
			}
			i.pendingException = nil
			res = c.Body.Execute(i, f)
			i.caughtException = prevCaught
			handled = true
			break
		}
		if !handled && s.Catches != nil {
			// no catch matched: exception keeps propagating as-is
		}
	} else if s.Else != nil {
		res = s.Else.Execute(i, f)
	}

	if s.Finally != nil {
		fres := s.Finally.Execute(i, f)
		if fres.IsAbrupt() {
			return fres
		}
	}
	return res
}

// matchException recovers the Exception Value carried by a
// propagating error, if any; a plain Go error (from a host/native
// failure with no corresponding script Exception) cannot be caught by
// a typed catch clause and simply re-surfaces as (nil, false).
func (i *Interpreter) matchException(err error) (*Value, bool) {
	if te, ok := err.(*thrownError); ok {
		return te.value, true
	}
	if i.pendingException != nil {
		v := i.pendingException
		return v, true
	}
	return nil, false
}

// ExceptionValue recovers the in-language Exception instance carried
// by an uncaught error returned from Template.Execute, for host shells
// that need to report the class name and message rather than a bare Go
// error string.
func ExceptionValue(err error) (*Value, bool) {
	te, ok := err.(*thrownError)
	if !ok {
		return nil, false
	}
	return te.value, true
}

// catchMatches evaluates a catch clause's optional TypeHint expression
// and reports whether exc's class satisfies it; a clause with no type
// expression catches anything.
func (i *Interpreter) catchMatches(c *CatchClause, exc *Value, f *Frame) (bool, error) {
	if c.Type == nil {
		return true, nil
	}
	hintVal, err := c.Type.Evaluate(i, f)
	if err != nil {
		return false, err
	}
	if !hintVal.IsObject() {
		return false, i.RaiseType(i.TypeErrorClass, ErrType, "catch type must be a Class")
	}
	class, ok := hintVal.AsObject().Native.(*Class)
	if !ok {
		return false, i.RaiseType(i.TypeErrorClass, ErrType, "catch type must be a Class")
	}
	return i.ClassOf(exc).IsSubclassOf(class), nil
}
