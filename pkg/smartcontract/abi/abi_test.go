package abi

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	for _, s := range []string{"Bool", "I256", "U256", "ByteVec", "Address"} {
		typ, err := ParseType(s)
		require.NoError(t, err)
		require.False(t, typ.IsArray())
		require.Equal(t, 1, typ.FlatSize())
		require.Equal(t, s, typ.String())
	}

	typ, err := ParseType("[U256;2]")
	require.NoError(t, err)
	require.True(t, typ.IsArray())
	require.Equal(t, 2, typ.Len)
	require.Equal(t, "U256", typ.Elem.Name)
	require.Equal(t, 2, typ.FlatSize())

	typ, err = ParseType("[[Bool;2];3]")
	require.NoError(t, err)
	require.Equal(t, 3, typ.Len)
	require.Equal(t, 2, typ.Elem.Len)
	require.Equal(t, "Bool", typ.Base())
	require.Equal(t, 6, typ.FlatSize())
	require.Equal(t, "[[Bool;2];3]", typ.String())

	for _, s := range []string{"", "u256", "[U256]", "[U256;0]", "[U256;x]", "[U256;2", "Foo"} {
		_, err := ParseType(s)
		require.ErrorIs(t, err, ErrInvalidType, s)
	}
	require.Panics(t, func() { MustParseType("Foo") })
}

func TestSignatureValidate(t *testing.T) {
	f := FieldsSig{Names: []string{"a", "b"}, Types: []string{"U256", "[Bool;2]"}, IsMutable: []bool{true, false}}
	require.NoError(t, f.Validate())

	f.Types = f.Types[:1]
	require.Error(t, f.Validate())

	f = FieldsSig{Names: []string{"a", "a"}, Types: []string{"U256", "U256"}}
	require.Error(t, f.Validate())

	fn := FunctionSig{Name: "add", ParamNames: []string{"array"}, ParamTypes: []string{"[U256;2]"}, ReturnTypes: []string{"[U256;2]"}}
	require.NoError(t, fn.Validate())
	fn.ReturnTypes = []string{"Int"}
	require.Error(t, fn.Validate())

	ev := EventSig{Name: "Add", FieldNames: []string{"x", "y"}, FieldTypes: []string{"U256", "U256"}}
	require.NoError(t, ev.Validate())
	ev.FieldTypes = []string{"U256", "Str"}
	require.Error(t, ev.Validate())

	require.Equal(t, 0, EventIndex([]EventSig{ev}, "Add"))
	require.Equal(t, -1, EventIndex([]EventSig{ev}, "Sub"))
	require.Equal(t, 0, FunctionIndex([]FunctionSig{fn}, "add"))
	require.Equal(t, -1, FunctionIndex(nil, "add"))
}
