package json_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/peelonet/tempearly/json"
)

func TestParseScalars(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"null", "null"},
		{"true", "true"},
		{"false", "false"},
		{"42", "42"},
		{"-3.5", "-3.5"},
		{`"hi\n"`, `"hi\n"`},
	}
	for _, c := range cases {
		v, err := json.ParseString(c.in)
		require.NoError(t, err)
		if diff := cmp.Diff(c.want, v.String()); diff != "" {
			t.Errorf("ParseString(%q) mismatch (-want +got):\n%s", c.in, diff)
		}
	}
}

func TestObjectPreservesInsertionOrder(t *testing.T) {
	v, err := json.ParseString(`{"b": 1, "a": 2, "b": 3}`)
	require.NoError(t, err)
	pairs, err := v.AsObject()
	require.NoError(t, err)
	require.Len(t, pairs, 3)
	require.Equal(t, "b", pairs[0].Key)
	require.Equal(t, "a", pairs[1].Key)
	require.Equal(t, "b", pairs[2].Key)
}

func TestArrayAndKeyAccessors(t *testing.T) {
	v, err := json.ParseString(`{"list": [1, 2, 3]}`)
	require.NoError(t, err)
	list := v.Key("list")
	require.Equal(t, json.Array, list.Type())
	require.Equal(t, json.Null, v.Key("missing").Type())
	require.Equal(t, json.Null, list.Index(99).Type())
	n, err := list.Index(1).AsInteger()
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
}

func TestParseRejectsTrailingData(t *testing.T) {
	_, err := json.ParseString(`1 2`)
	require.Error(t, err)
}

func TestParseRejectsUnterminated(t *testing.T) {
	_, err := json.ParseString(`{"a": 1`)
	require.Error(t, err)
}
