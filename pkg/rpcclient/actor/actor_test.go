package actor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nspcc-dev/alephium-go/pkg/contract"
	"github.com/nspcc-dev/alephium-go/pkg/noderpc"
	"github.com/nspcc-dev/alephium-go/pkg/noderpc/result"
	"github.com/nspcc-dev/alephium-go/pkg/rpcclient/waiter"
	"github.com/nspcc-dev/alephium-go/pkg/wallet"
	"github.com/stretchr/testify/require"
)

const testTxID = "0f7c4c0db8b5d8e6a0a0b1c2d3e4f5a6b7c8d9e0f1a2b3c4d5e6f708192a3b4c"

var _ contract.Deployer = (*Actor)(nil)

type RPCClient struct {
	err    error
	status *result.TxStatus

	deploy *noderpc.BuildDeployContractTx
	script *noderpc.BuildExecuteScriptTx
	signed string
}

func (r *RPCClient) TestContract(context.Context, *noderpc.TestContract) (*result.TestContract, error) {
	return nil, r.err
}
func (r *RPCClient) CallContract(context.Context, *noderpc.CallContract) (*result.CallContract, error) {
	return nil, r.err
}
func (r *RPCClient) MulticallContract(context.Context, *noderpc.MultipleCallContract) (*result.MultipleCallContract, error) {
	return nil, r.err
}
func (r *RPCClient) GetContractState(context.Context, string, int) (*noderpc.ContractState, error) {
	return nil, r.err
}
func (r *RPCClient) BuildDeployContractTx(_ context.Context, req *noderpc.BuildDeployContractTx) (*result.BuildDeployContractTx, error) {
	r.deploy = req
	if r.err != nil {
		return nil, r.err
	}
	return &result.BuildDeployContractTx{UnsignedTx: "00aa", TxID: testTxID, ContractAddress: "addr"}, nil
}
func (r *RPCClient) BuildExecuteScriptTx(_ context.Context, req *noderpc.BuildExecuteScriptTx) (*result.BuildExecuteScriptTx, error) {
	r.script = req
	if r.err != nil {
		return nil, r.err
	}
	return &result.BuildExecuteScriptTx{UnsignedTx: "00bb", TxID: testTxID}, nil
}
func (r *RPCClient) SubmitTransaction(_ context.Context, unsignedTx string, signature string) (*result.SubmitTransaction, error) {
	r.signed = signature
	return &result.SubmitTransaction{TxID: testTxID}, r.err
}
func (r *RPCClient) GetTransactionStatus(context.Context, string) (*result.TxStatus, error) {
	return r.status, r.err
}

type badSigner struct{}

func (badSigner) Account(context.Context) (*wallet.Account, error) {
	return nil, errors.New("no account")
}
func (badSigner) SignRaw(context.Context, string) (string, error) {
	return "", errors.New("can't sign")
}

func testRPCAndSigner(t *testing.T) (*RPCClient, *wallet.PrivateKeyWallet) {
	w, err := wallet.NewPrivateKeyWalletFromHex("000000000000000000000000000000000000000000000000000000000000002a", 4)
	require.NoError(t, err)
	return &RPCClient{}, w
}

func TestNew(t *testing.T) {
	ctx := context.Background()
	client, w := testRPCAndSigner(t)

	_, err := New(ctx, client, nil)
	require.Error(t, err)
	_, err = New(ctx, client, badSigner{})
	require.Error(t, err)

	a, err := New(ctx, client, w)
	require.NoError(t, err)
	acc, err := w.Account(ctx)
	require.NoError(t, err)
	require.Equal(t, *acc, a.Account())
	require.Equal(t, acc.Address, a.Sender())
	require.IsType(t, &waiter.PollingBased{}, a.Waiter)
	require.Equal(t, 4, a.Groups())
}

func TestMake(t *testing.T) {
	var (
		ctx       = context.Background()
		client, w = testRPCAndSigner(t)
		gas       = 50000
	)
	a, err := NewTuned(ctx, client, w, Options{GasAmount: &gas, GasPrice: "100"})
	require.NoError(t, err)
	pub := a.Account().PublicKey

	req := &noderpc.BuildDeployContractTx{Bytecode: "0102"}
	tx, err := a.MakeDeployContract(ctx, req)
	require.NoError(t, err)
	require.Equal(t, testTxID, tx.TxID)
	require.Empty(t, req.FromPublicKey)
	require.Equal(t, &noderpc.BuildDeployContractTx{
		FromPublicKey: pub,
		Bytecode:      "0102",
		GasAmount:     &gas,
		GasPrice:      "100",
	}, client.deploy)

	own := 1000
	_, err = a.MakeExecuteScript(ctx, &noderpc.BuildExecuteScriptTx{Bytecode: "03", GasAmount: &own, GasPrice: "7"})
	require.NoError(t, err)
	require.Equal(t, pub, client.script.FromPublicKey)
	require.Equal(t, &own, client.script.GasAmount)
	require.Equal(t, "7", client.script.GasPrice)

	client.err = errors.New("bad request")
	_, err = a.MakeDeployContract(ctx, req)
	require.Error(t, err)
}

func TestSend(t *testing.T) {
	var (
		ctx       = context.Background()
		client, w = testRPCAndSigner(t)
	)
	a, err := New(ctx, client, w)
	require.NoError(t, err)

	tx, res, err := a.SendDeployContract(ctx, &noderpc.BuildDeployContractTx{Bytecode: "0102"})
	require.NoError(t, err)
	require.Equal(t, tx.TxID, res.TxID)
	ok, err := w.PrivateKey().PublicKey().VerifyHex(client.signed, testTxID)
	require.NoError(t, err)
	require.True(t, ok)

	stx, res, err := a.SendExecuteScript(ctx, &noderpc.BuildExecuteScriptTx{Bytecode: "03"})
	require.NoError(t, err)
	require.Equal(t, stx.TxID, res.TxID)

	bad, err := New(ctx, client, w)
	require.NoError(t, err)
	bad.signer = badSigner{}
	_, err = bad.SubmitTransaction(ctx, "00", testTxID)
	require.ErrorContains(t, err, "can't sign")
}

func TestWait(t *testing.T) {
	var (
		ctx       = context.Background()
		client, w = testRPCAndSigner(t)
	)
	client.status = &result.TxStatus{Type: result.TxConfirmed, ChainConfirmations: 1}
	a, err := NewTuned(ctx, client, w, Options{Waiter: waiter.Config{PollConfig: waiter.PollConfig{PollInterval: 10 * time.Millisecond}}})
	require.NoError(t, err)

	res, err := a.SubmitTransaction(ctx, "00aa", testTxID)
	require.NoError(t, err)
	st, err := a.Wait(ctx, res.TxID, err)
	require.NoError(t, err)
	require.True(t, st.Confirmed())
}
