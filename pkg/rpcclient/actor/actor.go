/*
Package actor provides a way to change chain state via RPC client.

This layer builds on top of the basic RPC client and [invoker] package, it
simplifies building, signing and submitting transactions to the network
(since that's the only way chain state is changed). It's generic enough to be
used for any contract and contract-specific code can build on top of it.
*/
package actor

import (
	"context"
	"fmt"

	"github.com/nspcc-dev/alephium-go/pkg/noderpc"
	"github.com/nspcc-dev/alephium-go/pkg/noderpc/result"
	"github.com/nspcc-dev/alephium-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/alephium-go/pkg/rpcclient/waiter"
	"github.com/nspcc-dev/alephium-go/pkg/wallet"
)

// RPCActor is an interface required from the RPC client to successfully
// build and submit transactions.
type RPCActor interface {
	invoker.RPCInvoke

	BuildDeployContractTx(ctx context.Context, req *noderpc.BuildDeployContractTx) (*result.BuildDeployContractTx, error)
	BuildExecuteScriptTx(ctx context.Context, req *noderpc.BuildExecuteScriptTx) (*result.BuildExecuteScriptTx, error)
	SubmitTransaction(ctx context.Context, unsignedTx string, signature string) (*result.SubmitTransaction, error)
}

// Actor keeps a connection to the RPC endpoint and allows to perform
// state-changing actions (via transactions that can also be built without
// submitting them to the network) on behalf of a signer. It also provides
// an Invoker interface to perform read calls.
//
// Prefixes of Actor methods denote the action to be performed, "Make" prefix
// is used for methods that build unsigned transactions, while "Send" prefix
// is used by methods that also sign and submit them to the node.
//
// Actor also provides a Waiter interface to wait until transaction will be
// confirmed. Depending on the underlying RPCActor functionality, transaction
// awaiting can be performed via web-socket block notifications with
// EventBased waiter, via regular status requests with PollingBased waiter
// or can not be performed if RPCActor doesn't implement the necessary
// interfaces (ErrAwaitingNotSupported is returned from Wait then).
type Actor struct {
	invoker.Invoker
	waiter.Waiter

	client  RPCActor
	opts    Options
	signer  wallet.Signer
	account *wallet.Account
}

// Options are used to create Actor with non-standard waiter configuration or
// gas settings to be applied for all transactions.
type Options struct {
	// GasAmount and GasPrice are set into every request that doesn't have
	// its own values, the node estimates them otherwise.
	GasAmount *int
	GasPrice  string
	// InputAssets are used for read calls made with the embedded Invoker.
	InputAssets []noderpc.InputAsset
	// Waiter is the configuration of the transaction waiter.
	Waiter waiter.Config
}

// New creates an Actor instance using the specified RPC interface and the
// signer. Every transaction built by this Actor will be signed by this signer
// and all communication will be performed via this RPC. Upon Actor instance
// creation the signer account is requested and cached forever.
func New(ctx context.Context, ra RPCActor, signer wallet.Signer) (*Actor, error) {
	return NewTuned(ctx, ra, signer, Options{})
}

// NewTuned creates an Actor that will use the specified Options as defaults
// when building new transactions.
func NewTuned(ctx context.Context, ra RPCActor, signer wallet.Signer, opts Options) (*Actor, error) {
	if signer == nil {
		return nil, fmt.Errorf("nil signer")
	}
	acc, err := signer.Account(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get signer account: %w", err)
	}
	return &Actor{
		Invoker: *invoker.New(ra, opts.InputAssets),
		Waiter:  waiter.NewCustom(ra, opts.Waiter),
		client:  ra,
		opts:    opts,
		signer:  signer,
		account: acc,
	}, nil
}

// Account returns the account of the signer.
func (a *Actor) Account() wallet.Account {
	return *a.account
}

// Sender returns the address of the signer.
func (a *Actor) Sender() string {
	return a.account.Address
}

// Sign signs the transaction id with the Actor's signer.
func (a *Actor) Sign(ctx context.Context, txID string) (string, error) {
	return a.signer.SignRaw(ctx, txID)
}

// SubmitTransaction signs the transaction id and submits the unsigned
// transaction along with the signature to the network.
func (a *Actor) SubmitTransaction(ctx context.Context, unsignedTx string, txID string) (*result.SubmitTransaction, error) {
	sig, err := a.Sign(ctx, txID)
	if err != nil {
		return nil, fmt.Errorf("failed to sign %s: %w", txID, err)
	}
	return a.client.SubmitTransaction(ctx, unsignedTx, sig)
}
