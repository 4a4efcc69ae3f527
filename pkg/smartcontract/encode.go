package smartcontract

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"regexp"
	"strconv"

	"github.com/holiman/uint256"
	"github.com/nspcc-dev/alephium-go/pkg/encoding/address"
	"github.com/nspcc-dev/alephium-go/pkg/io"
	"github.com/nspcc-dev/alephium-go/pkg/noderpc"
	"github.com/nspcc-dev/alephium-go/pkg/smartcontract/abi"
)

// Field type tags used in contract deployment bytecode.
const (
	boolTag    byte = 0x00
	i256Tag    byte = 0x01
	u256Tag    byte = 0x02
	byteVecTag byte = 0x03
	addressTag byte = 0x04
)

// Instructions pushing constants in script bytecode.
const (
	constTrue    byte = 0x03
	constFalse   byte = 0x04
	i256Const    byte = 0x12
	u256Const    byte = 0x13
	bytesConst   byte = 0x14
	addressConst byte = 0x15
)

var scriptFieldRegex = regexp.MustCompile(`\{([0-9]+)\}`)

// Flatten converts named values into primitive node values ordered by the
// signature with arrays unrolled.
func Flatten(sig abi.FieldsSig, fields NamedVals) ([]noderpc.Val, error) {
	vals, err := ToVals(sig.Names, sig.Types, fields)
	if err != nil {
		return nil, err
	}
	var res []noderpc.Val
	for _, v := range vals {
		res, err = appendFlat(res, v)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

func appendFlat(dst []noderpc.Val, v noderpc.Val) ([]noderpc.Val, error) {
	if v.Type != abi.ArrayType {
		return append(dst, v), nil
	}
	var vals []noderpc.Val
	if err := json.Unmarshal(v.Value, &vals); err != nil {
		return nil, fmt.Errorf("%w: bad array: %w", ErrInvalidValue, err)
	}
	var err error
	for _, e := range vals {
		dst, err = appendFlat(dst, e)
		if err != nil {
			return nil, err
		}
	}
	return dst, nil
}

// EncodeFields serializes contract fields the way contract deployment
// bytecode carries them: the number of flattened fields followed by each
// tagged value.
func EncodeFields(sig abi.FieldsSig, fields NamedVals) ([]byte, error) {
	flat, err := Flatten(sig, fields)
	if err != nil {
		return nil, err
	}
	w := io.NewBufBinWriter()
	w.WriteCompactInt(len(flat))
	for _, v := range flat {
		if err := encodeField(w.BinWriter, v); err != nil {
			return nil, err
		}
	}
	if w.Err != nil {
		return nil, w.Err
	}
	return w.Bytes(), nil
}

// DeployBytecode returns the hex bytecode for contract deployment, it's the
// contract code followed by encoded initial fields.
func DeployBytecode(bytecode string, sig abi.FieldsSig, fields NamedVals) (string, error) {
	if _, err := hex.DecodeString(bytecode); err != nil {
		return "", fmt.Errorf("bad bytecode: %w", err)
	}
	enc, err := EncodeFields(sig, fields)
	if err != nil {
		return "", err
	}
	return bytecode + hex.EncodeToString(enc), nil
}

func encodeField(w *io.BinWriter, v noderpc.Val) error {
	prim, err := fromPrimitive(v.Type, v.Value)
	if err != nil {
		return err
	}
	switch v.Type {
	case abi.BoolType:
		w.WriteB(boolTag)
		w.WriteBool(prim.(bool))
	case abi.I256Type:
		w.WriteB(i256Tag)
		w.WriteCompactI256(prim.(*big.Int))
	case abi.U256Type:
		w.WriteB(u256Tag)
		w.WriteCompactU256(prim.(*uint256.Int))
	case abi.ByteVecType:
		b, err := hex.DecodeString(prim.(string))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidValue, err)
		}
		w.WriteB(byteVecTag)
		w.WriteVarBytes(b)
	case abi.AddressType:
		b, err := address.Decode(prim.(string))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidValue, err)
		}
		w.WriteB(addressTag)
		w.WriteBytes(b)
	}
	return w.Err
}

func encodeScriptField(w *io.BinWriter, v noderpc.Val) error {
	prim, err := fromPrimitive(v.Type, v.Value)
	if err != nil {
		return err
	}
	switch v.Type {
	case abi.BoolType:
		if prim.(bool) {
			w.WriteB(constTrue)
		} else {
			w.WriteB(constFalse)
		}
	case abi.I256Type:
		w.WriteB(i256Const)
		w.WriteCompactI256(prim.(*big.Int))
	case abi.U256Type:
		w.WriteB(u256Const)
		w.WriteCompactU256(prim.(*uint256.Int))
	case abi.ByteVecType:
		b, err := hex.DecodeString(prim.(string))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidValue, err)
		}
		w.WriteB(bytesConst)
		w.WriteVarBytes(b)
	case abi.AddressType:
		b, err := address.Decode(prim.(string))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidValue, err)
		}
		w.WriteB(addressConst)
		w.WriteBytes(b)
	}
	return w.Err
}

// ScriptBytecode fills the script bytecode template with field values.
// Template placeholders like {0} refer to fields by their index, they're
// replaced with instructions pushing the value (all elements for arrays).
func ScriptBytecode(template string, sig abi.FieldsSig, fields NamedVals) (string, error) {
	vals, err := ToVals(sig.Names, sig.Types, fields)
	if err != nil {
		return "", err
	}
	var replaceErr error
	res := scriptFieldRegex.ReplaceAllStringFunc(template, func(m string) string {
		i, err := strconv.Atoi(m[1 : len(m)-1])
		if err != nil || i >= len(vals) {
			replaceErr = fmt.Errorf("%w: no field for placeholder %s", ErrInvalidValue, m)
			return ""
		}
		flat, err := appendFlat(nil, vals[i])
		if err != nil {
			replaceErr = err
			return ""
		}
		w := io.NewBufBinWriter()
		for _, v := range flat {
			if err := encodeScriptField(w.BinWriter, v); err != nil {
				replaceErr = err
				return ""
			}
		}
		h, err := w.Hex()
		if err != nil {
			replaceErr = err
		}
		return h
	})
	if replaceErr != nil {
		return "", replaceErr
	}
	return res, nil
}
