package wallet

import (
	"context"
	"sync"

	"github.com/nspcc-dev/alephium-go/pkg/noderpc/result"
)

// RPCWallet is a set of node wallet methods needed by NodeWallet.
type RPCWallet interface {
	UnlockWallet(ctx context.Context, name string, password string) error
	GetWalletAddresses(ctx context.Context, name string) (*result.WalletAddresses, error)
	SignWithWallet(ctx context.Context, name string, data string) (string, error)
}

// NodeWallet is a Signer using the active address of a node wallet. The
// wallet must be unlocked before signing.
type NodeWallet struct {
	client   RPCWallet
	name     string
	password string

	lock    sync.Mutex
	account *Account
}

// NewNodeWallet creates a NodeWallet for the named node wallet.
func NewNodeWallet(client RPCWallet, name string, password string) *NodeWallet {
	return &NodeWallet{client: client, name: name, password: password}
}

// Name returns the node wallet name.
func (w *NodeWallet) Name() string {
	return w.name
}

// Unlock unlocks the node wallet with the password.
func (w *NodeWallet) Unlock(ctx context.Context) error {
	return w.client.UnlockWallet(ctx, w.name, w.password)
}

// Account implements the Signer interface. The active address is requested
// once and cached.
func (w *NodeWallet) Account(ctx context.Context) (*Account, error) {
	w.lock.Lock()
	defer w.lock.Unlock()
	if w.account != nil {
		return w.account, nil
	}
	addrs, err := w.client.GetWalletAddresses(ctx, w.name)
	if err != nil {
		return nil, err
	}
	a, ok := addrs.Active()
	if !ok {
		return nil, ErrNoActiveAddress
	}
	w.account = &Account{Address: a.Address, PublicKey: a.PublicKey, Group: a.Group}
	return w.account, nil
}

// SignRaw implements the Signer interface.
func (w *NodeWallet) SignRaw(ctx context.Context, hexHash string) (string, error) {
	return w.client.SignWithWallet(ctx, w.name, hexHash)
}
