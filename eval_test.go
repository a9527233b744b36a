package tempearly

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func render(t *testing.T, src string) string {
	t.Helper()
	tpl, err := ParseString(src)
	require.NoError(t, err)
	var buf bytes.Buffer
	i := NewInterpreter(&buf)
	res := tpl.Execute(i)
	require.Equal(t, RSuccess, res.Kind, "execution error: %v", res.Err)
	return buf.String()
}

func TestTextPassthrough(t *testing.T) {
	require.Equal(t, "hello world", render(t, "hello world"))
}

func TestEscapedAndRawOutput(t *testing.T) {
	require.Equal(t, "&lt;b&gt;", render(t, `{{ "<b>" }}`))
	require.Equal(t, "<b>", render(t, `{! "<b>" !}`))
}

func TestIfElseBlockForm(t *testing.T) {
	src := `{% if 1 < 2 %}yes{% else %}no{% end if %}`
	require.Equal(t, "yes", render(t, src))

	src = `{% if 1 > 2 %}yes{% else %}no{% end if %}`
	require.Equal(t, "no", render(t, src))
}

func TestIfElseInlineForm(t *testing.T) {
	src := `{% if 1 > 2 : print("yes") else: print("no") end if %}`
	require.Equal(t, "no", render(t, src))
}

func TestIfElseIfChain(t *testing.T) {
	src := `{% if false %}a{% else if true %}b{% else %}c{% end if %}`
	require.Equal(t, "b", render(t, src))
}

func TestWhileLoop(t *testing.T) {
	src := `{% i = 0 %}{% while i < 3 %}{{ i }}{% i = i + 1 %}{% end while %}`
	require.Equal(t, "012", render(t, src))
}

func TestDoWhileBlockForm(t *testing.T) {
	src := `{% i = 0 %}{% do %}{{ i }}{% i = i + 1 %}{% while i < 3 %}`
	require.Equal(t, "012", render(t, src))
}

func TestDoWhileInlineForm(t *testing.T) {
	src := `{% i = 0 %}{% do: print(i); i = i + 1; while i < 3 %}`
	require.Equal(t, "012", render(t, src))
}

func TestForLoopOverList(t *testing.T) {
	src := `{% for x : [1, 2, 3] %}{{ x }}{% end for %}`
	require.Equal(t, "123", render(t, src))
}

func TestForElseOnEmptyCollection(t *testing.T) {
	src := `{% for x : [] %}{{ x }}{% else %}empty{% end for %}`
	require.Equal(t, "empty", render(t, src))
}

func TestBreakContinue(t *testing.T) {
	src := `{% for x : [1, 2, 3, 4] %}{% if x == 2 %}{% continue %}{% end if %}{% if x == 4 %}{% break %}{% end if %}{{ x }}{% end for %}`
	require.Equal(t, "13", render(t, src))
}

func TestTernaryOperator(t *testing.T) {
	require.Equal(t, "yes", render(t, `{{ 1 < 2 ? "yes" : "no" }}`))
	require.Equal(t, "no", render(t, `{{ 1 > 2 ? "yes" : "no" }}`))
}

func TestTernaryRightAssociative(t *testing.T) {
	// a ? b : c ? d : e  ==  a ? b : (c ? d : e)
	src := `{{ false ? "a" : true ? "b" : "c" }}`
	require.Equal(t, "b", render(t, src))
}

func TestFunctionDeclarationAndCall(t *testing.T) {
	src := `{% function add(a, b) %}{% return a + b %}{% end function %}{{ add(2, 3) }}`
	require.Equal(t, "5", render(t, src))
}

func TestTryCatchFinally(t *testing.T) {
	src := `{% try %}{% throw ValueError("boom") %}{% catch ValueError e %}caught: {{ e.message }}{% finally %};done{% end try %}`
	require.Equal(t, "caught: boom;done", render(t, src))
}

func TestAndOrShortCircuitYieldOperand(t *testing.T) {
	require.Equal(t, "0", render(t, `{{ 0 && 5 }}`))
	require.Equal(t, "5", render(t, `{{ 1 && 5 }}`))
	require.Equal(t, "1", render(t, `{{ 1 || 5 }}`))
	require.Equal(t, "5", render(t, `{{ 0 || 5 }}`))
}

func TestListAndMapLiterals(t *testing.T) {
	require.Equal(t, "3", render(t, `{{ [1, 2, 3].length() }}`))
	require.Equal(t, "1", render(t, `{{ {"a": 1}["a"] }}`))
}

func TestStringConcatenation(t *testing.T) {
	require.Equal(t, "ab", render(t, `{{ "a" + "b" }}`))
}

func TestRangeIteration(t *testing.T) {
	src := `{% for x : 1..3 %}{{ x }}{% end for %}`
	require.Equal(t, "123", render(t, src))
}
