package tempearly

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestEmptyObjectIsTruthy exercises Interpreter.Truthy's dispatch through
// Object's default __bool__ (builtins_object.go): an Instance without an
// overriding __bool__ falls back to Value.Truthy, whose default branch is
// true regardless of emptiness, unlike the primitive kinds. List doesn't
// override __bool__ so it takes that default; Map does (builtins_collections.go),
// so an empty Map is falsy.
func TestEmptyObjectIsTruthy(t *testing.T) {
	require.Equal(t, "yes", render(t, `{% if [] %}yes{% else %}no{% end if %}`))
	require.Equal(t, "no", render(t, `{% if {} %}yes{% else %}no{% end if %}`))
}

func TestObjectStrMagicMethod(t *testing.T) {
	require.Equal(t, "boom", render(t, `{{ ValueError("boom") }}`))
}

func TestClassMethodAndIsA(t *testing.T) {
	src := `{% e = ValueError("x") %}{{ e.is_a?(ValueError) }}`
	tpl, err := ParseString(src)
	require.NoError(t, err)
	var buf bytes.Buffer
	i := NewInterpreter(&buf)
	res := tpl.Execute(i)
	require.Equal(t, RSuccess, res.Kind, "execution error: %v", res.Err)
	require.Equal(t, "true", buf.String())
}

func TestUncaughtExceptionRecoverable(t *testing.T) {
	tpl, err := ParseString(`{% throw TypeError("bad") %}`)
	require.NoError(t, err)
	var buf bytes.Buffer
	i := NewInterpreter(&buf)
	res := tpl.Execute(i)
	require.Equal(t, RError, res.Kind)

	exc, ok := ExceptionValue(res.Err)
	require.True(t, ok)
	require.Equal(t, "TypeError", i.ClassOf(exc).Name)
	msg, err := i.Stringify(exc)
	require.NoError(t, err)
	require.Equal(t, "bad", msg)
}
