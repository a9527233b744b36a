package tempearly

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		KindNull:   "Null",
		KindBool:   "Bool",
		KindInt:    "Int",
		KindFloat:  "Float",
		KindString: "String",
		KindBinary: "Binary",
		KindObject: "Object",
	}
	for k, want := range cases {
		require.Equal(t, want, k.String())
	}
}

func TestValueTruthyTable(t *testing.T) {
	require.False(t, Null.Truthy())
	require.False(t, False.Truthy())
	require.True(t, True.Truthy())
	require.False(t, NewInt(0).Truthy())
	require.True(t, NewInt(1).Truthy())
	require.True(t, NewInt(-1).Truthy())
	require.False(t, NewFloat(0).Truthy())
	require.True(t, NewFloat(0.5).Truthy())
	require.False(t, NewString("").Truthy())
	require.True(t, NewString("x").Truthy())
	require.False(t, NewBinary(nil).Truthy())
	require.True(t, NewBinary([]byte{0}).Truthy())
}

func TestValueKindPredicates(t *testing.T) {
	require.True(t, NewInt(1).IsNumber())
	require.True(t, NewFloat(1).IsNumber())
	require.False(t, NewString("1").IsNumber())
	require.True(t, NewString("a").IsString())
	require.True(t, Null.IsNull())
}

func TestValueGoString(t *testing.T) {
	require.Equal(t, "null", Null.GoString())
	require.Equal(t, "true", True.GoString())
	require.Equal(t, "false", False.GoString())
	require.Equal(t, "5", NewInt(5).GoString())
	require.Equal(t, `"hi"`, NewString("hi").GoString())
}
