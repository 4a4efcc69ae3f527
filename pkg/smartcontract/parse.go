package smartcontract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/nspcc-dev/alephium-go/pkg/smartcontract/abi"
)

// ParseValue parses a user-supplied string into a Go value of the given Ralph
// type. Numbers are decimal, byte vectors are hex (optionally 0x-prefixed),
// arrays use JSON syntax like [1, 2] or ["00ff", "01"]. It's intended to be
// used in user-facing interfaces.
func ParseValue(typ string, s string) (any, error) {
	t, err := abi.ParseType(typ)
	if err != nil {
		return nil, err
	}
	if !t.IsArray() {
		return parsePrimitive(t.Name, strings.TrimSpace(s))
	}
	d := json.NewDecoder(bytes.NewReader([]byte(s)))
	d.UseNumber()
	var raw any
	if err := d.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidValue, t, err)
	}
	return parseJSONValue(t, raw)
}

func parseJSONValue(t abi.Type, raw any) (any, error) {
	if t.IsArray() {
		arr, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: expected %s", ErrInvalidValue, t)
		}
		if len(arr) != t.Len {
			return nil, fmt.Errorf("%w: expected %d elements for %s, got %d", ErrInvalidValue, t.Len, t, len(arr))
		}
		res := make([]any, len(arr))
		for i := range arr {
			var err error
			res[i], err = parseJSONValue(*t.Elem, arr[i])
			if err != nil {
				return nil, err
			}
		}
		return res, nil
	}
	switch v := raw.(type) {
	case bool:
		return parsePrimitive(t.Name, strconv.FormatBool(v))
	case json.Number:
		return parsePrimitive(t.Name, v.String())
	case string:
		return parsePrimitive(t.Name, v)
	}
	return nil, fmt.Errorf("%w: unexpected %T for %s", ErrInvalidValue, raw, t)
}

func parsePrimitive(typ string, s string) (any, error) {
	switch typ {
	case abi.BoolType:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a Bool", ErrInvalidValue, s)
		}
		return b, nil
	case abi.I256Type, abi.U256Type:
		n, err := toBigInt(s)
		if err != nil {
			return nil, err
		}
		v, err := toVal(abi.Type{Name: typ}, n)
		if err != nil {
			return nil, err
		}
		return fromPrimitive(v.Type, v.Value)
	case abi.ByteVecType:
		return toHex(strings.TrimPrefix(s, "0x"))
	case abi.AddressType:
		if _, err := toVal(abi.Type{Name: typ}, s); err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("%w: unsupported type %s", ErrInvalidValue, typ)
}
