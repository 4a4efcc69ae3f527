package alphtest

import (
	"context"
	"testing"

	"github.com/nspcc-dev/alephium-go/pkg/noderpc"
	"github.com/nspcc-dev/alephium-go/pkg/noderpc/result"
	"github.com/nspcc-dev/alephium-go/pkg/wallet"
	"github.com/stretchr/testify/require"
)

// Parameters of the node wallet funded in the genesis of development
// networks.
const (
	TestWalletName = "alephium-web3-test-only-wallet"
	TestMnemonic   = "vault alarm sad mass witness property virus style good flower rice alpha viable evidence run glare pretty scout evil judge enroll refuse another lava"
	TestPassword   = "alph"
	TestAddress    = "1DrDyTr9RpRsQnDnXo2YRiPzPW4ooHX5LLoqXrqfMrpQH"
)

// RPCWallet is the node API used to restore the test wallet.
type RPCWallet interface {
	wallet.RPCWallet

	RestoreWallet(ctx context.Context, req *noderpc.WalletRestore) (*result.WalletRestore, error)
}

// TestWallet restores the genesis-funded wallet on the node, unlocks it and
// returns a signer for it.
func TestWallet(t testing.TB, client RPCWallet) *wallet.NodeWallet {
	ctx := context.Background()
	_, err := client.RestoreWallet(ctx, &noderpc.WalletRestore{
		Password:   TestPassword,
		Mnemonic:   TestMnemonic,
		WalletName: TestWalletName,
	})
	require.NoError(t, err, "failed to restore test wallet")

	w := wallet.NewNodeWallet(client, TestWalletName, TestPassword)
	require.NoError(t, w.Unlock(ctx))
	return w
}
