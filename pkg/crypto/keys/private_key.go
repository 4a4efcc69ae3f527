package keys

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/nspcc-dev/alephium-go/pkg/crypto/hash"
	"github.com/nspcc-dev/rfc6979"
)

// PrivateKeyLen is the length of a serialized private key.
const PrivateKeyLen = 32

// SignatureLen is the length of a serialized r‖s signature.
const SignatureLen = 64

// PrivateKey represents a secp256k1 private key and provides a high level API
// around ecdsa.PrivateKey.
type PrivateKey struct {
	ecdsa.PrivateKey
}

// NewPrivateKey creates a new random secp256k1 private key.
func NewPrivateKey() (*PrivateKey, error) {
	k, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, err
	}
	return &PrivateKey{*k.ToECDSA()}, nil
}

// NewPrivateKeyFromHex returns a PrivateKey created from the given hex string.
func NewPrivateKeyFromHex(str string) (*PrivateKey, error) {
	b, err := hex.DecodeString(str)
	if err != nil {
		return nil, err
	}
	return NewPrivateKeyFromBytes(b)
}

// NewPrivateKeyFromBytes returns a PrivateKey from the given byte slice.
func NewPrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	if len(b) != PrivateKeyLen {
		return nil, fmt.Errorf(
			"invalid byte length: expected %d bytes got %d", PrivateKeyLen, len(b),
		)
	}
	var d secp256k1.ModNScalar
	if overflow := d.SetByteSlice(b); overflow || d.IsZero() {
		return nil, fmt.Errorf("invalid private key scalar")
	}
	k := secp256k1.NewPrivateKey(&d)
	return &PrivateKey{*k.ToECDSA()}, nil
}

// PublicKey derives the public key from the private key.
func (p *PrivateKey) PublicKey() *PublicKey {
	result := PublicKey(p.PrivateKey.PublicKey)
	return &result
}

// Address derives the P2PKH address that is coupled with the private key, and
// returns it as a string.
func (p *PrivateKey) Address() string {
	return p.PublicKey().Address()
}

// Sign signs arbitrary length data using the private key. It uses blake2b to
// calculate hash and then SignHash to create a signature (so you can save on
// hash calculation if you already have it).
func (p *PrivateKey) Sign(data []byte) []byte {
	return p.SignHash(hash.Blake2b(data))
}

// SignHash signs particular hash with the private key. Signatures are
// deterministic (RFC6979) and always have the lower S value.
func (p *PrivateKey) SignHash(digest [hash.Size]byte) []byte {
	r, s := rfc6979.SignECDSA(&p.PrivateKey, digest[:], sha256.New)
	halfOrder := new(big.Int).Rsh(p.Curve.Params().N, 1)
	if s.Cmp(halfOrder) > 0 {
		s = new(big.Int).Sub(p.Curve.Params().N, s)
	}
	return getSignatureSlice(r, s)
}

// SignHashHex is the same as SignHash, but accepts and returns hex strings.
// It's what transaction signers use for transaction ids.
func (p *PrivateKey) SignHashHex(digest string) (string, error) {
	b, err := hex.DecodeString(digest)
	if err != nil {
		return "", err
	}
	if len(b) != hash.Size {
		return "", fmt.Errorf("invalid hash length: expected %d bytes got %d", hash.Size, len(b))
	}
	var h [hash.Size]byte
	copy(h[:], b)
	return hex.EncodeToString(p.SignHash(h)), nil
}

func getSignatureSlice(r, s *big.Int) []byte {
	signature := make([]byte, SignatureLen)
	r.FillBytes(signature[:SignatureLen/2])
	s.FillBytes(signature[SignatureLen/2:])
	return signature
}

// String implements the stringer interface.
func (p *PrivateKey) String() string {
	return hex.EncodeToString(p.Bytes())
}

// Bytes returns the underlying bytes of the PrivateKey.
func (p *PrivateKey) Bytes() []byte {
	result := make([]byte, PrivateKeyLen)
	return p.D.FillBytes(result)
}
