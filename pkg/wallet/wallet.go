/*
Package wallet provides transaction signers. PrivateKeyWallet signs with a
local secp256k1 key, NodeWallet delegates signing to a wallet kept by the
node.
*/
package wallet

import (
	"context"
	"errors"
)

// ErrNoActiveAddress is returned by NodeWallet when the node wallet has no
// active address.
var ErrNoActiveAddress = errors.New("no active address in node wallet")

// Account is the signer's address along with its public key.
type Account struct {
	Address   string
	PublicKey string
	Group     int
}

// Signer signs transactions on behalf of a single account.
type Signer interface {
	// Account returns the account used for signing.
	Account(ctx context.Context) (*Account, error)
	// SignRaw signs a hex-encoded 32-byte hash (a transaction id) and
	// returns a hex-encoded 64-byte signature.
	SignRaw(ctx context.Context, hexHash string) (string, error)
}
