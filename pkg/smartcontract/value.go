package smartcontract

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/holiman/uint256"
	"github.com/nspcc-dev/alephium-go/pkg/encoding/address"
	"github.com/nspcc-dev/alephium-go/pkg/noderpc"
	"github.com/nspcc-dev/alephium-go/pkg/smartcontract/abi"
)

// ErrInvalidValue is returned when a value doesn't match the expected Ralph
// type or when named values don't match the signature.
var ErrInvalidValue = errors.New("invalid value")

// NamedVals maps field or parameter names to Go values.
type NamedVals map[string]any

var (
	maxI256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(1))
	minI256 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 255))
)

// ToVal converts a Go value into a node value of the given Ralph type.
func ToVal(typ string, v any) (noderpc.Val, error) {
	t, err := abi.ParseType(typ)
	if err != nil {
		return noderpc.Val{}, err
	}
	return toVal(t, v)
}

func toVal(t abi.Type, v any) (noderpc.Val, error) {
	if t.IsArray() {
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return noderpc.Val{}, fmt.Errorf("%w: %T is not an array", ErrInvalidValue, v)
		}
		if rv.Len() != t.Len {
			return noderpc.Val{}, fmt.Errorf("%w: expected %d elements for %s, got %d", ErrInvalidValue, t.Len, t, rv.Len())
		}
		vals := make([]noderpc.Val, t.Len)
		for i := range vals {
			var err error
			vals[i], err = toVal(*t.Elem, rv.Index(i).Interface())
			if err != nil {
				return noderpc.Val{}, fmt.Errorf("element %d: %w", i, err)
			}
		}
		return newVal(abi.ArrayType, vals)
	}
	v = underlying(v)
	switch t.Name {
	case abi.BoolType:
		b, ok := v.(bool)
		if !ok {
			return noderpc.Val{}, fmt.Errorf("%w: %T is not a Bool", ErrInvalidValue, v)
		}
		return newVal(t.Name, b)
	case abi.I256Type:
		n, err := toBigInt(v)
		if err != nil {
			return noderpc.Val{}, err
		}
		if n.Cmp(minI256) < 0 || n.Cmp(maxI256) > 0 {
			return noderpc.Val{}, fmt.Errorf("%w: %s is out of I256 range", ErrInvalidValue, n)
		}
		return newVal(t.Name, n.String())
	case abi.U256Type:
		n, err := toBigInt(v)
		if err != nil {
			return noderpc.Val{}, err
		}
		if _, overflow := uint256.FromBig(n); overflow || n.Sign() < 0 {
			return noderpc.Val{}, fmt.Errorf("%w: %s is out of U256 range", ErrInvalidValue, n)
		}
		return newVal(t.Name, n.String())
	case abi.ByteVecType:
		s, err := toHex(v)
		if err != nil {
			return noderpc.Val{}, err
		}
		return newVal(t.Name, s)
	case abi.AddressType:
		s, ok := v.(string)
		if !ok {
			return noderpc.Val{}, fmt.Errorf("%w: %T is not an Address", ErrInvalidValue, v)
		}
		if _, err := address.Decode(s); err != nil {
			return noderpc.Val{}, fmt.Errorf("%w: %w", ErrInvalidValue, err)
		}
		return newVal(t.Name, s)
	}
	return noderpc.Val{}, fmt.Errorf("%w: unsupported type %s", ErrInvalidValue, t)
}

// underlying unwraps named string and bool types, bindings use them for
// overridden values.
func underlying(v any) any {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	}
	return v
}

func newVal(typ string, v any) (noderpc.Val, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return noderpc.Val{}, err
	}
	return noderpc.Val{Type: typ, Value: raw}, nil
}

func toBigInt(v any) (*big.Int, error) {
	switch n := v.(type) {
	case *big.Int:
		if n == nil {
			break
		}
		return n, nil
	case big.Int:
		return &n, nil
	case *uint256.Int:
		if n == nil {
			break
		}
		return n.ToBig(), nil
	case uint256.Int:
		return n.ToBig(), nil
	case int:
		return big.NewInt(int64(n)), nil
	case int8:
		return big.NewInt(int64(n)), nil
	case int16:
		return big.NewInt(int64(n)), nil
	case int32:
		return big.NewInt(int64(n)), nil
	case int64:
		return big.NewInt(n), nil
	case uint:
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint64:
		return new(big.Int).SetUint64(n), nil
	case json.Number:
		return toBigInt(string(n))
	case string:
		r, ok := new(big.Int).SetString(n, 10)
		if !ok {
			return nil, fmt.Errorf("%w: %q is not a decimal number", ErrInvalidValue, n)
		}
		return r, nil
	}
	return nil, fmt.Errorf("%w: %T is not a number", ErrInvalidValue, v)
}

func toHex(v any) (string, error) {
	switch b := v.(type) {
	case []byte:
		return hex.EncodeToString(b), nil
	case string:
		if _, err := hex.DecodeString(b); err != nil {
			return "", fmt.Errorf("%w: %q is not a hex string", ErrInvalidValue, b)
		}
		return strings.ToLower(b), nil
	}
	return "", fmt.Errorf("%w: %T is not a ByteVec", ErrInvalidValue, v)
}

// FromVal decodes a node value according to its own type tag.
func FromVal(val noderpc.Val) (any, error) {
	if val.Type == abi.ArrayType {
		var vals []noderpc.Val
		if err := json.Unmarshal(val.Value, &vals); err != nil {
			return nil, fmt.Errorf("%w: bad array: %w", ErrInvalidValue, err)
		}
		res := make([]any, len(vals))
		for i := range vals {
			var err error
			res[i], err = FromVal(vals[i])
			if err != nil {
				return nil, err
			}
		}
		return res, nil
	}
	return fromPrimitive(val.Type, val.Value)
}

// FromValTyped decodes a node value checking it against the expected Ralph
// type.
func FromValTyped(typ string, val noderpc.Val) (any, error) {
	t, err := abi.ParseType(typ)
	if err != nil {
		return nil, err
	}
	return fromValTyped(t, val)
}

func fromValTyped(t abi.Type, val noderpc.Val) (any, error) {
	if !t.IsArray() {
		if val.Type != t.Name {
			return nil, fmt.Errorf("%w: expected %s, got %s", ErrInvalidValue, t, val.Type)
		}
		return fromPrimitive(val.Type, val.Value)
	}
	if val.Type != abi.ArrayType {
		return nil, fmt.Errorf("%w: expected %s, got %s", ErrInvalidValue, t, val.Type)
	}
	var vals []noderpc.Val
	if err := json.Unmarshal(val.Value, &vals); err != nil {
		return nil, fmt.Errorf("%w: bad array: %w", ErrInvalidValue, err)
	}
	if len(vals) != t.Len {
		return nil, fmt.Errorf("%w: expected %d elements for %s, got %d", ErrInvalidValue, t.Len, t, len(vals))
	}
	res := make([]any, len(vals))
	for i := range vals {
		var err error
		res[i], err = fromValTyped(*t.Elem, vals[i])
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

func fromPrimitive(typ string, raw json.RawMessage) (any, error) {
	switch typ {
	case abi.BoolType:
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, fmt.Errorf("%w: bad Bool: %w", ErrInvalidValue, err)
		}
		return b, nil
	case abi.I256Type, abi.U256Type:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			// Some node versions put numbers unquoted.
			s = string(raw)
		}
		n, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return nil, fmt.Errorf("%w: bad %s %q", ErrInvalidValue, typ, s)
		}
		if typ == abi.I256Type {
			return n, nil
		}
		u, overflow := uint256.FromBig(n)
		if overflow || n.Sign() < 0 {
			return nil, fmt.Errorf("%w: %s is out of U256 range", ErrInvalidValue, s)
		}
		return u, nil
	case abi.ByteVecType, abi.AddressType:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("%w: bad %s: %w", ErrInvalidValue, typ, err)
		}
		return s, nil
	}
	return nil, fmt.Errorf("%w: unknown value type %q", ErrInvalidValue, typ)
}

// DecodeVals decodes a list of node values according to their type tags.
func DecodeVals(vals []noderpc.Val) ([]any, error) {
	res := make([]any, len(vals))
	for i := range vals {
		var err error
		res[i], err = FromVal(vals[i])
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
	}
	return res, nil
}

// ToVals converts named values into node values ordered by names. The set of
// keys must be exactly the set of names.
func ToVals(names, types []string, vals NamedVals) ([]noderpc.Val, error) {
	if len(vals) != len(names) {
		return nil, fmt.Errorf("%w: expected %d values (%s), got %d", ErrInvalidValue, len(names), strings.Join(names, ", "), len(vals))
	}
	res := make([]noderpc.Val, len(names))
	for i, name := range names {
		v, ok := vals[name]
		if !ok {
			return nil, fmt.Errorf("%w: missing %q", ErrInvalidValue, name)
		}
		var err error
		res[i], err = ToVal(types[i], v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	return res, nil
}

// FromVals decodes node values into named values. Arrays can either be
// passed as Array values or flattened into consecutive primitive values.
func FromVals(names, types []string, vals []noderpc.Val) (NamedVals, error) {
	res := make(NamedVals, len(names))
	pos := 0
	for i, name := range names {
		t, err := abi.ParseType(types[i])
		if err != nil {
			return nil, err
		}
		if pos >= len(vals) {
			return nil, fmt.Errorf("%w: missing value for %q", ErrInvalidValue, name)
		}
		if t.IsArray() && vals[pos].Type != abi.ArrayType {
			size := t.FlatSize()
			if pos+size > len(vals) {
				return nil, fmt.Errorf("%w: not enough values for %q", ErrInvalidValue, name)
			}
			res[name], err = unflatten(t, vals[pos:pos+size])
			pos += size
		} else {
			res[name], err = fromValTyped(t, vals[pos])
			pos++
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	if pos != len(vals) {
		return nil, fmt.Errorf("%w: %d unexpected values", ErrInvalidValue, len(vals)-pos)
	}
	return res, nil
}

func unflatten(t abi.Type, vals []noderpc.Val) (any, error) {
	if !t.IsArray() {
		return fromValTyped(t, vals[0])
	}
	step := t.Elem.FlatSize()
	res := make([]any, t.Len)
	for i := range res {
		var err error
		res[i], err = unflatten(*t.Elem, vals[i*step:(i+1)*step])
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}
