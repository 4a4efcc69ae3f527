/*
Package address converts lockup scripts and contract ids to base58 addresses
and back. It also calculates the group an address belongs to.
*/
package address

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/alephium-go/pkg/io"
)

// Type is the lockup script type stored in the first byte of a decoded
// address.
type Type byte

// Known address types.
const (
	P2PKH  Type = 0x00
	P2MPKH Type = 0x01
	P2SH   Type = 0x02
	P2C    Type = 0x03
)

const (
	// DefaultGroups is the number of groups of a standard network.
	DefaultGroups = 4
	// HashLen is the length of public key hashes, script hashes and contract
	// ids.
	HashLen = 32
)

// ErrInvalidAddress is returned for malformed addresses.
var ErrInvalidAddress = errors.New("invalid address")

// String implements fmt.Stringer.
func (t Type) String() string {
	switch t {
	case P2PKH:
		return "P2PKH"
	case P2MPKH:
		return "P2MPKH"
	case P2SH:
		return "P2SH"
	case P2C:
		return "P2C"
	default:
		return fmt.Sprintf("Type(%d)", byte(t))
	}
}

// FromPublicKeyHash returns the P2PKH address of the given public key hash.
func FromPublicKeyHash(h []byte) string {
	return encode(P2PKH, h)
}

// FromScriptHash returns the P2SH address of the given script hash.
func FromScriptHash(h []byte) string {
	return encode(P2SH, h)
}

// FromContractID returns the P2C address of the given contract id.
func FromContractID(id []byte) string {
	return encode(P2C, id)
}

// FromContractIDHex is the same as FromContractID, but accepts a hex string.
func FromContractIDHex(id string) (string, error) {
	b, err := hex.DecodeString(id)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	if len(b) != HashLen {
		return "", fmt.Errorf("%w: contract id must be %d bytes, got %d", ErrInvalidAddress, HashLen, len(b))
	}
	return FromContractID(b), nil
}

func encode(t Type, body []byte) string {
	return base58.Encode(append([]byte{byte(t)}, body...))
}

// Decode returns the serialized lockup script of the address. It's the type
// byte followed by the script body and it's also the form addresses take in
// bytecode.
func Decode(addr string) ([]byte, error) {
	b, err := base58.Decode(addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrInvalidAddress)
	}
	switch Type(b[0]) {
	case P2PKH, P2SH, P2C:
		if len(b) != HashLen+1 {
			return nil, fmt.Errorf("%w: %s body must be %d bytes, got %d", ErrInvalidAddress, Type(b[0]), HashLen, len(b)-1)
		}
	case P2MPKH:
		if _, _, err := decodeMultisig(b[1:]); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: unknown type %d", ErrInvalidAddress, b[0])
	}
	return b, nil
}

// TypeOf returns the type of the address.
func TypeOf(addr string) (Type, error) {
	b, err := Decode(addr)
	if err != nil {
		return 0, err
	}
	return Type(b[0]), nil
}

// decodeMultisig returns public key hashes and the signature threshold of a
// P2MPKH body.
func decodeMultisig(body []byte) ([][]byte, int, error) {
	r := io.NewBinReaderFromBuf(body)
	n := r.ReadCompactInt()
	if r.Err != nil || n <= 0 || n*HashLen > len(body) {
		return nil, 0, fmt.Errorf("%w: bad multisig key count", ErrInvalidAddress)
	}
	hashes := make([][]byte, n)
	for i := range hashes {
		hashes[i] = make([]byte, HashLen)
		r.ReadBytes(hashes[i])
	}
	m := r.ReadCompactInt()
	if r.Err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrInvalidAddress, r.Err)
	}
	if m <= 0 || m > n {
		return nil, 0, fmt.Errorf("%w: bad multisig threshold %d of %d", ErrInvalidAddress, m, n)
	}
	return hashes, m, nil
}

// FromMultisig returns the P2MPKH address for m-of-n public key hashes.
func FromMultisig(hashes [][]byte, m int) (string, error) {
	if len(hashes) == 0 || m <= 0 || m > len(hashes) {
		return "", fmt.Errorf("%w: bad multisig threshold %d of %d", ErrInvalidAddress, m, len(hashes))
	}
	w := io.NewBufBinWriter()
	w.WriteB(byte(P2MPKH))
	w.WriteCompactInt(len(hashes))
	for _, h := range hashes {
		if len(h) != HashLen {
			return "", fmt.Errorf("%w: key hash must be %d bytes", ErrInvalidAddress, HashLen)
		}
		w.WriteBytes(h)
	}
	w.WriteCompactInt(m)
	if w.Err != nil {
		return "", w.Err
	}
	return base58.Encode(w.Bytes()), nil
}

// ContractID returns the contract id of a P2C address.
func ContractID(addr string) ([]byte, error) {
	b, err := Decode(addr)
	if err != nil {
		return nil, err
	}
	if Type(b[0]) != P2C {
		return nil, fmt.Errorf("%w: %s is not a contract address", ErrInvalidAddress, Type(b[0]))
	}
	return b[1:], nil
}

// ContractIDHex is the same as ContractID, but returns a hex string.
func ContractIDHex(addr string) (string, error) {
	id, err := ContractID(addr)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(id), nil
}

// Group returns the group of the given address for the network with the
// specified number of groups.
func Group(addr string, groups int) (int, error) {
	b, err := Decode(addr)
	if err != nil {
		return 0, err
	}
	switch Type(b[0]) {
	case P2PKH, P2SH:
		return GroupOfHash(b[1:], groups), nil
	case P2MPKH:
		hashes, _, err := decodeMultisig(b[1:])
		if err != nil {
			return 0, err
		}
		return GroupOfHash(hashes[0], groups), nil
	default:
		return GroupOfContractID(b[1:], groups), nil
	}
}

// GroupOfHash calculates the group of a P2PKH or P2SH script body.
func GroupOfHash(h []byte, groups int) int {
	hint := djb2(h) | 1
	x := byte(hint>>24) ^ byte(hint>>16) ^ byte(hint>>8) ^ byte(hint)
	return int(x) % groups
}

// GroupOfContractID returns the group of a contract, it's encoded in the last
// byte of its id.
func GroupOfContractID(id []byte, groups int) int {
	if len(id) == 0 {
		return 0
	}
	return int(id[len(id)-1]) % groups
}

func djb2(b []byte) uint32 {
	var h uint32 = 5381
	for _, c := range b {
		h = h<<5 + h + uint32(c)
	}
	return h
}

// Equal compares two addresses by their lockup scripts.
func Equal(a, b string) bool {
	da, err := Decode(a)
	if err != nil {
		return false
	}
	db, err := Decode(b)
	if err != nil {
		return false
	}
	return bytes.Equal(da, db)
}
