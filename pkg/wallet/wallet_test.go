package wallet

import (
	"context"
	"errors"
	"testing"

	"github.com/nspcc-dev/alephium-go/pkg/crypto/keys"
	"github.com/nspcc-dev/alephium-go/pkg/noderpc/result"
	"github.com/stretchr/testify/require"
)

const txID = "b7ec1f2fcb1d56e1d1fbbd1d0ae26c5d2b14f3ea3f9b7bb0e4c8a9ab4b2cc2d1"

func TestPrivateKeyWallet(t *testing.T) {
	ctx := context.Background()
	w, err := NewPrivateKeyWalletFromHex("c0ffeec0ffeec0ffeec0ffeec0ffeec0ffeec0ffeec0ffeec0ffeec0ffeec0ff", 0)
	require.NoError(t, err)

	acc, err := w.Account(ctx)
	require.NoError(t, err)
	pub := w.PrivateKey().PublicKey()
	require.Equal(t, pub.Address(), acc.Address)
	require.Equal(t, pub.StringCompressed(), acc.PublicKey)
	require.Equal(t, pub.Group(4), acc.Group)

	sig, err := w.SignRaw(ctx, txID)
	require.NoError(t, err)
	require.Len(t, sig, 2*keys.SignatureLen)
	ok, err := pub.VerifyHex(sig, txID)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = w.SignRaw(ctx, "abcd")
	require.Error(t, err)

	_, err = NewPrivateKeyWalletFromHex("zz", 4)
	require.Error(t, err)
}

func TestRandomPrivateKeyWallet(t *testing.T) {
	for g := 0; g < 4; g++ {
		w, err := NewRandomPrivateKeyWallet(g, 4)
		require.NoError(t, err)
		acc, err := w.Account(context.Background())
		require.NoError(t, err)
		require.Equal(t, g, acc.Group)
	}
	_, err := NewRandomPrivateKeyWallet(-1, 0)
	require.NoError(t, err)
	_, err = NewRandomPrivateKeyWallet(4, 4)
	require.Error(t, err)
}

type rpcWallet struct {
	err      error
	unlocked string
	requests int
	addrs    *result.WalletAddresses
}

func (r *rpcWallet) UnlockWallet(_ context.Context, name string, password string) error {
	if password != "pass" {
		return errors.New("bad password")
	}
	r.unlocked = name
	return nil
}

func (r *rpcWallet) GetWalletAddresses(context.Context, string) (*result.WalletAddresses, error) {
	r.requests++
	return r.addrs, r.err
}

func (r *rpcWallet) SignWithWallet(_ context.Context, name string, data string) (string, error) {
	if r.unlocked != name {
		return "", errors.New("locked")
	}
	return "sig:" + data, nil
}

func TestNodeWallet(t *testing.T) {
	var (
		ctx = context.Background()
		c   = &rpcWallet{addrs: &result.WalletAddresses{
			ActiveAddress: "addr2",
			Addresses: []result.AddressInfo{
				{Address: "addr1", PublicKey: "pub1", Group: 1},
				{Address: "addr2", PublicKey: "pub2", Group: 2},
			},
		}}
		w = NewNodeWallet(c, "w", "pass")
	)
	require.Equal(t, "w", w.Name())

	_, err := w.SignRaw(ctx, txID)
	require.Error(t, err)
	require.Error(t, NewNodeWallet(c, "w", "wrong").Unlock(ctx))
	require.NoError(t, w.Unlock(ctx))

	acc, err := w.Account(ctx)
	require.NoError(t, err)
	require.Equal(t, &Account{Address: "addr2", PublicKey: "pub2", Group: 2}, acc)
	_, err = w.Account(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, c.requests)

	sig, err := w.SignRaw(ctx, txID)
	require.NoError(t, err)
	require.Equal(t, "sig:"+txID, sig)

	c.addrs = &result.WalletAddresses{ActiveAddress: "none"}
	_, err = NewNodeWallet(c, "w", "pass").Account(ctx)
	require.ErrorIs(t, err, ErrNoActiveAddress)
}
