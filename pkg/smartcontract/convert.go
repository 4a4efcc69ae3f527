package smartcontract

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/holiman/uint256"
)

var (
	bigIntType  = reflect.TypeOf((*big.Int)(nil))
	uint256Type = reflect.TypeOf((*uint256.Int)(nil))
)

// As converts a decoded value (as returned by FromVal or FromVals) into the
// Go type T. It's mostly useful for arrays that are decoded as []any, but
// bindings use it for all values.
func As[T any](v any) (T, error) {
	var res T
	rv, err := convertTo(reflect.TypeOf(&res).Elem(), v)
	if err != nil {
		return res, err
	}
	reflect.ValueOf(&res).Elem().Set(rv)
	return res, nil
}

func convertTo(t reflect.Type, v any) (reflect.Value, error) {
	if v == nil {
		return reflect.Value{}, fmt.Errorf("%w: nil for %s", ErrInvalidValue, t)
	}
	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(t) {
		return rv, nil
	}
	if rv.Kind() == t.Kind() && rv.Kind() != reflect.Slice && rv.Type().ConvertibleTo(t) {
		return rv.Convert(t), nil
	}
	switch {
	case t == bigIntType:
		n, err := toBigInt(v)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(n), nil
	case t == uint256Type:
		n, err := toBigInt(v)
		if err != nil {
			return reflect.Value{}, err
		}
		u, overflow := uint256.FromBig(n)
		if overflow || n.Sign() < 0 {
			return reflect.Value{}, fmt.Errorf("%w: %s is out of U256 range", ErrInvalidValue, n)
		}
		return reflect.ValueOf(u), nil
	case t.Kind() == reflect.Slice && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array):
		res := reflect.MakeSlice(t, rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			e, err := convertTo(t.Elem(), rv.Index(i).Interface())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			res.Index(i).Set(e)
		}
		return res, nil
	}
	return reflect.Value{}, fmt.Errorf("%w: can't convert %T to %s", ErrInvalidValue, v, t)
}
