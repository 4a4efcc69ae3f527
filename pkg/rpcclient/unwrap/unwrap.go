/*
Package unwrap provides a set of proxy methods to process call results.

Functions implemented there are intended to be used as wrappers for other
functions that return ([]noderpc.Val, error) pair (returns of contract
calls and simulations). These functions will check for error, check the
number of results, cast them to appropriate type (if everything is OK) and
then return a result or error. They're mostly useful for generated
contract-specific packages.
*/
package unwrap

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/nspcc-dev/alephium-go/pkg/noderpc"
	"github.com/nspcc-dev/alephium-go/pkg/smartcontract"
	"github.com/nspcc-dev/alephium-go/pkg/smartcontract/abi"
)

// Values decodes all returned values according to their type tags. It
// accepts any number of values including zero.
func Values(vals []noderpc.Val, err error) ([]any, error) {
	if err != nil {
		return nil, err
	}
	return smartcontract.DecodeVals(vals)
}

// Nothing expects no values to be returned.
func Nothing(vals []noderpc.Val, err error) (struct{}, error) {
	if err != nil {
		return struct{}{}, err
	}
	if len(vals) != 0 {
		return struct{}{}, fmt.Errorf("unexpected %d result values", len(vals))
	}
	return struct{}{}, nil
}

// Item returns a value from the result if it's the only returned value.
func Item(vals []noderpc.Val, err error) (noderpc.Val, error) {
	if err != nil {
		return noderpc.Val{}, err
	}
	if len(vals) == 0 {
		return noderpc.Val{}, errors.New("no values returned")
	}
	if len(vals) > 1 {
		return noderpc.Val{}, fmt.Errorf("too many (%d) result values", len(vals))
	}
	return vals[0], nil
}

func typed(typ string, vals []noderpc.Val, err error) (any, error) {
	v, err := Item(vals, err)
	if err != nil {
		return nil, err
	}
	return smartcontract.FromValTyped(typ, v)
}

// Bool expects a single Bool value to be returned.
func Bool(vals []noderpc.Val, err error) (bool, error) {
	v, err := typed(abi.BoolType, vals, err)
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

// I256 expects a single I256 value to be returned.
func I256(vals []noderpc.Val, err error) (*big.Int, error) {
	v, err := typed(abi.I256Type, vals, err)
	if err != nil {
		return nil, err
	}
	return v.(*big.Int), nil
}

// U256 expects a single U256 value to be returned.
func U256(vals []noderpc.Val, err error) (*uint256.Int, error) {
	v, err := typed(abi.U256Type, vals, err)
	if err != nil {
		return nil, err
	}
	return v.(*uint256.Int), nil
}

// ByteVec expects a single ByteVec value to be returned, it's returned as
// a hex string.
func ByteVec(vals []noderpc.Val, err error) (string, error) {
	v, err := typed(abi.ByteVecType, vals, err)
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Address expects a single Address value to be returned.
func Address(vals []noderpc.Val, err error) (string, error) {
	v, err := typed(abi.AddressType, vals, err)
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Array expects a single Array value to be returned. Elements are decoded
// according to their type tags.
func Array(vals []noderpc.Val, err error) ([]any, error) {
	v, err := Item(vals, err)
	if err != nil {
		return nil, err
	}
	if v.Type != abi.ArrayType {
		return nil, fmt.Errorf("%s is not an array", v.Type)
	}
	a, err := smartcontract.FromVal(v)
	if err != nil {
		return nil, err
	}
	return a.([]any), nil
}

// ArrayOf expects a single Array value to be returned and converts it into
// a slice of T.
func ArrayOf[T any](vals []noderpc.Val, err error) ([]T, error) {
	a, err := Array(vals, err)
	if err != nil {
		return nil, err
	}
	return smartcontract.As[[]T](a)
}

// As expects a single value to be returned and converts it into T, see
// smartcontract.As.
func As[T any](vals []noderpc.Val, err error) (T, error) {
	var res T
	v, err := Item(vals, err)
	if err != nil {
		return res, err
	}
	d, err := smartcontract.FromVal(v)
	if err != nil {
		return res, err
	}
	return smartcontract.As[T](d)
}
