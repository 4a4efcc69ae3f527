package actor

import (
	"context"
	"fmt"

	"github.com/nspcc-dev/alephium-go/pkg/noderpc"
	"github.com/nspcc-dev/alephium-go/pkg/noderpc/result"
)

// MakeDeployContract builds an unsigned contract deployment transaction
// from the request, FromPublicKey is set to the signer's key and gas
// settings are filled from Options if not set. The request is not modified.
func (a *Actor) MakeDeployContract(ctx context.Context, req *noderpc.BuildDeployContractTx) (*result.BuildDeployContractTx, error) {
	r := *req
	r.FromPublicKey = a.account.PublicKey
	if r.GasAmount == nil {
		r.GasAmount = a.opts.GasAmount
	}
	if r.GasPrice == "" {
		r.GasPrice = a.opts.GasPrice
	}
	return a.client.BuildDeployContractTx(ctx, &r)
}

// MakeExecuteScript builds an unsigned script execution transaction the same
// way MakeDeployContract does for deployments.
func (a *Actor) MakeExecuteScript(ctx context.Context, req *noderpc.BuildExecuteScriptTx) (*result.BuildExecuteScriptTx, error) {
	r := *req
	r.FromPublicKey = a.account.PublicKey
	if r.GasAmount == nil {
		r.GasAmount = a.opts.GasAmount
	}
	if r.GasPrice == "" {
		r.GasPrice = a.opts.GasPrice
	}
	return a.client.BuildExecuteScriptTx(ctx, &r)
}

// SendDeployContract builds, signs and submits a contract deployment
// transaction. It returns the built transaction (with the address of the
// new contract) and the submission result.
func (a *Actor) SendDeployContract(ctx context.Context, req *noderpc.BuildDeployContractTx) (*result.BuildDeployContractTx, *result.SubmitTransaction, error) {
	tx, err := a.MakeDeployContract(ctx, req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build deployment: %w", err)
	}
	res, err := a.SubmitTransaction(ctx, tx.UnsignedTx, tx.TxID)
	if err != nil {
		return tx, nil, err
	}
	return tx, res, nil
}

// SendExecuteScript builds, signs and submits a script execution
// transaction.
func (a *Actor) SendExecuteScript(ctx context.Context, req *noderpc.BuildExecuteScriptTx) (*result.BuildExecuteScriptTx, *result.SubmitTransaction, error) {
	tx, err := a.MakeExecuteScript(ctx, req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build script execution: %w", err)
	}
	res, err := a.SubmitTransaction(ctx, tx.UnsignedTx, tx.TxID)
	if err != nil {
		return tx, nil, err
	}
	return tx, res, nil
}
