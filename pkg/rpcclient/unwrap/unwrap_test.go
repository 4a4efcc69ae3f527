package unwrap

import (
	"errors"
	"math/big"
	"testing"

	"github.com/holiman/uint256"
	"github.com/nspcc-dev/alephium-go/pkg/noderpc"
	"github.com/stretchr/testify/require"
)

func val(typ string, raw string) noderpc.Val {
	return noderpc.Val{Type: typ, Value: []byte(raw)}
}

func TestStdErrors(t *testing.T) {
	funcs := []func(vals []noderpc.Val, err error) (any, error){
		func(vals []noderpc.Val, err error) (any, error) {
			return Bool(vals, err)
		},
		func(vals []noderpc.Val, err error) (any, error) {
			return I256(vals, err)
		},
		func(vals []noderpc.Val, err error) (any, error) {
			return U256(vals, err)
		},
		func(vals []noderpc.Val, err error) (any, error) {
			return ByteVec(vals, err)
		},
		func(vals []noderpc.Val, err error) (any, error) {
			return Address(vals, err)
		},
		func(vals []noderpc.Val, err error) (any, error) {
			return Array(vals, err)
		},
		func(vals []noderpc.Val, err error) (any, error) {
			return ArrayOf[*uint256.Int](vals, err)
		},
		func(vals []noderpc.Val, err error) (any, error) {
			return As[*big.Int](vals, err)
		},
		func(vals []noderpc.Val, err error) (any, error) {
			return Item(vals, err)
		},
	}
	t.Run("error on input", func(t *testing.T) {
		for _, f := range funcs {
			_, err := f(nil, errors.New("some"))
			require.Error(t, err)
		}
	})
	t.Run("empty result", func(t *testing.T) {
		for _, f := range funcs {
			_, err := f([]noderpc.Val{}, nil)
			require.Error(t, err)
		}
	})
	t.Run("too many values", func(t *testing.T) {
		for _, f := range funcs {
			_, err := f([]noderpc.Val{val("U256", `"1"`), val("U256", `"2"`)}, nil)
			require.Error(t, err)
		}
	})
}

func TestPrimitives(t *testing.T) {
	_, err := Bool([]noderpc.Val{val("U256", `"1"`)}, nil)
	require.Error(t, err)
	b, err := Bool([]noderpc.Val{val("Bool", `true`)}, nil)
	require.NoError(t, err)
	require.True(t, b)

	i, err := I256([]noderpc.Val{val("I256", `"-42"`)}, nil)
	require.NoError(t, err)
	require.Equal(t, int64(-42), i.Int64())

	u, err := U256([]noderpc.Val{val("U256", `"42"`)}, nil)
	require.NoError(t, err)
	require.Equal(t, uint256.NewInt(42), u)
	_, err = U256([]noderpc.Val{val("U256", `"-1"`)}, nil)
	require.Error(t, err)

	s, err := ByteVec([]noderpc.Val{val("ByteVec", `"cafe"`)}, nil)
	require.NoError(t, err)
	require.Equal(t, "cafe", s)
	_, err = ByteVec([]noderpc.Val{val("Address", `"cafe"`)}, nil)
	require.Error(t, err)

	a, err := Address([]noderpc.Val{val("Address", `"tgx7VNFoP9DJiFMFgXXtafQZkUvyEdDHT9ryamHJYrjq"`)}, nil)
	require.NoError(t, err)
	require.Equal(t, "tgx7VNFoP9DJiFMFgXXtafQZkUvyEdDHT9ryamHJYrjq", a)
}

func TestArrays(t *testing.T) {
	arr := val("Array", `[{"type":"U256","value":"3"},{"type":"U256","value":"1"}]`)

	a, err := Array([]noderpc.Val{arr}, nil)
	require.NoError(t, err)
	require.Equal(t, []any{uint256.NewInt(3), uint256.NewInt(1)}, a)

	us, err := ArrayOf[*uint256.Int]([]noderpc.Val{arr}, nil)
	require.NoError(t, err)
	require.Equal(t, []*uint256.Int{uint256.NewInt(3), uint256.NewInt(1)}, us)

	bs, err := As[[]*big.Int]([]noderpc.Val{arr}, nil)
	require.NoError(t, err)
	require.Len(t, bs, 2)
	require.Equal(t, int64(3), bs[0].Int64())

	_, err = Array([]noderpc.Val{val("U256", `"1"`)}, nil)
	require.Error(t, err)
	_, err = ArrayOf[bool]([]noderpc.Val{arr}, nil)
	require.Error(t, err)
}

func TestValuesAndNothing(t *testing.T) {
	vs, err := Values([]noderpc.Val{val("Bool", `false`), val("ByteVec", `"00"`)}, nil)
	require.NoError(t, err)
	require.Equal(t, []any{false, "00"}, vs)

	vs, err = Values(nil, nil)
	require.NoError(t, err)
	require.Empty(t, vs)

	_, err = Values(nil, errors.New("some"))
	require.Error(t, err)

	_, err = Nothing(nil, nil)
	require.NoError(t, err)
	_, err = Nothing([]noderpc.Val{val("Bool", `false`)}, nil)
	require.Error(t, err)
	_, err = Nothing(nil, errors.New("some"))
	require.Error(t, err)
}
