package keys

import (
	"crypto/ecdsa"
	"encoding/hex"
	"errors"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	secpecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/nspcc-dev/alephium-go/pkg/crypto/hash"
	"github.com/nspcc-dev/alephium-go/pkg/encoding/address"
)

// PublicKeyLen is the length of a compressed public key.
const PublicKeyLen = 33

// PublicKey represents a secp256k1 public key and provides a high level
// API around the X/Y point.
type PublicKey ecdsa.PublicKey

// NewPublicKeyFromBytes returns a public key created from the given
// compressed or uncompressed representation.
func NewPublicKeyFromBytes(b []byte) (*PublicKey, error) {
	k, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, err
	}
	pub := PublicKey(*k.ToECDSA())
	return &pub, nil
}

// NewPublicKeyFromString returns a public key created from the given hex
// string.
func NewPublicKeyFromString(s string) (*PublicKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return NewPublicKeyFromBytes(b)
}

func (p *PublicKey) secp() *secp256k1.PublicKey {
	var x, y secp256k1.FieldVal
	x.SetByteSlice(p.X.Bytes())
	y.SetByteSlice(p.Y.Bytes())
	return secp256k1.NewPublicKey(&x, &y)
}

// Bytes returns the compressed representation of the key.
func (p *PublicKey) Bytes() []byte {
	if p.X == nil || p.Y == nil {
		return nil
	}
	return p.secp().SerializeCompressed()
}

// StringCompressed returns the hex-encoded compressed key.
func (p *PublicKey) StringCompressed() string {
	return hex.EncodeToString(p.Bytes())
}

// Hash returns blake2b hash of the compressed key. It's the body of the P2PKH
// lockup script.
func (p *PublicKey) Hash() [hash.Size]byte {
	return hash.Blake2b(p.Bytes())
}

// Address returns the P2PKH address of the key.
func (p *PublicKey) Address() string {
	h := p.Hash()
	return address.FromPublicKeyHash(h[:])
}

// Group returns the group the key's address belongs to.
func (p *PublicKey) Group(groups int) int {
	h := p.Hash()
	return address.GroupOfHash(h[:], groups)
}

// Equal returns true in case public keys are equal.
func (p *PublicKey) Equal(key *PublicKey) bool {
	return p.X != nil && key.X != nil &&
		p.X.Cmp(key.X) == 0 && p.Y.Cmp(key.Y) == 0
}

// Verify returns true if the signature is valid and corresponds
// to the hash and public key.
func (p *PublicKey) Verify(signature []byte, hash []byte) bool {
	if p.X == nil || p.Y == nil || len(signature) != SignatureLen {
		return false
	}
	var r, s secp256k1.ModNScalar
	if r.SetByteSlice(signature[:SignatureLen/2]) || s.SetByteSlice(signature[SignatureLen/2:]) {
		return false
	}
	return secpecdsa.NewSignature(&r, &s).Verify(hash, p.secp())
}

// VerifyHex is the same as Verify, but accepts hex strings.
func (p *PublicKey) VerifyHex(signature string, hash string) (bool, error) {
	sig, err := hex.DecodeString(signature)
	if err != nil {
		return false, err
	}
	h, err := hex.DecodeString(hash)
	if err != nil {
		return false, err
	}
	if len(h) == 0 {
		return false, errors.New("empty hash")
	}
	return p.Verify(sig, h), nil
}
