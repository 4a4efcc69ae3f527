package wallet

import (
	"context"
	"fmt"

	"github.com/nspcc-dev/alephium-go/pkg/crypto/keys"
	"github.com/nspcc-dev/alephium-go/pkg/encoding/address"
)

// maxGroupAttempts limits key generation for a particular group.
const maxGroupAttempts = 1000

// PrivateKeyWallet is a Signer holding a private key.
type PrivateKeyWallet struct {
	key    *keys.PrivateKey
	groups int
}

// NewPrivateKeyWallet creates a wallet for the key, groups is the number of
// groups of the network (address.DefaultGroups if not positive).
func NewPrivateKeyWallet(key *keys.PrivateKey, groups int) *PrivateKeyWallet {
	if groups <= 0 {
		groups = address.DefaultGroups
	}
	return &PrivateKeyWallet{key: key, groups: groups}
}

// NewPrivateKeyWalletFromHex creates a wallet for the hex-encoded private key.
func NewPrivateKeyWalletFromHex(s string, groups int) (*PrivateKeyWallet, error) {
	k, err := keys.NewPrivateKeyFromHex(s)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return NewPrivateKeyWallet(k, groups), nil
}

// NewRandomPrivateKeyWallet creates a wallet with a fresh key. If group is not
// negative, the key is generated for the address of this group.
func NewRandomPrivateKeyWallet(group int, groups int) (*PrivateKeyWallet, error) {
	if groups <= 0 {
		groups = address.DefaultGroups
	}
	if group >= groups {
		return nil, fmt.Errorf("invalid group %d for %d groups", group, groups)
	}
	for i := 0; i < maxGroupAttempts; i++ {
		k, err := keys.NewPrivateKey()
		if err != nil {
			return nil, err
		}
		if group < 0 || k.PublicKey().Group(groups) == group {
			return NewPrivateKeyWallet(k, groups), nil
		}
	}
	return nil, fmt.Errorf("failed to generate a key for group %d", group)
}

// PrivateKey returns the key of the wallet.
func (w *PrivateKeyWallet) PrivateKey() *keys.PrivateKey {
	return w.key
}

// Account implements the Signer interface.
func (w *PrivateKeyWallet) Account(context.Context) (*Account, error) {
	pub := w.key.PublicKey()
	return &Account{
		Address:   pub.Address(),
		PublicKey: pub.StringCompressed(),
		Group:     pub.Group(w.groups),
	}, nil
}

// SignRaw implements the Signer interface.
func (w *PrivateKeyWallet) SignRaw(_ context.Context, hexHash string) (string, error) {
	return w.key.SignHashHex(hexHash)
}
