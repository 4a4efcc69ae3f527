package rpcclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/nspcc-dev/alephium-go/pkg/noderpc"
	"github.com/nspcc-dev/alephium-go/pkg/noderpc/result"
)

// GetChainParams returns the network parameters of the node.
func (c *Client) GetChainParams(ctx context.Context) (*result.ChainParams, error) {
	var resp = new(result.ChainParams)
	if err := c.get(ctx, "chain-params", "/infos/chain-params", nil, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetVersion returns the version of the node software.
func (c *Client) GetVersion(ctx context.Context) (*result.Version, error) {
	var resp = new(result.Version)
	if err := c.get(ctx, "version", "/infos/version", nil, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// CompileContract compiles the contract code (with all of its dependencies
// inlined) on the node.
func (c *Client) CompileContract(ctx context.Context, code string) (*result.CompileContract, error) {
	var resp = new(result.CompileContract)
	if err := c.post(ctx, "compile-contract", "/contracts/compile-contract", &noderpc.Compile{Code: code}, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// CompileScript compiles the transaction script code on the node.
func (c *Client) CompileScript(ctx context.Context, code string) (*result.CompileScript, error) {
	var resp = new(result.CompileScript)
	if err := c.post(ctx, "compile-script", "/contracts/compile-script", &noderpc.Compile{Code: code}, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// TestContract simulates the contract method execution against the given
// state, nothing is persisted by the node.
func (c *Client) TestContract(ctx context.Context, req *noderpc.TestContract) (*result.TestContract, error) {
	var resp = new(result.TestContract)
	if err := c.post(ctx, "test-contract", "/contracts/test-contract", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// CallContract performs a read call of a deployed contract method.
func (c *Client) CallContract(ctx context.Context, req *noderpc.CallContract) (*result.CallContract, error) {
	var resp = new(result.CallContract)
	if err := c.post(ctx, "call-contract", "/contracts/call-contract", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// MulticallContract performs several read calls in a single request, results
// are returned in the request order.
func (c *Client) MulticallContract(ctx context.Context, req *noderpc.MultipleCallContract) (*result.MultipleCallContract, error) {
	var resp = new(result.MultipleCallContract)
	if err := c.post(ctx, "multicall-contract", "/contracts/multicall-contract", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetContractState returns the current state of the contract deployed at
// the given address belonging to the given group.
func (c *Client) GetContractState(ctx context.Context, addr string, group int) (*noderpc.ContractState, error) {
	var (
		resp = new(noderpc.ContractState)
		q    = url.Values{"group": []string{strconv.Itoa(group)}}
	)
	if err := c.get(ctx, "contract-state", "/contracts/"+url.PathEscape(addr)+"/state", q, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// BuildDeployContractTx builds an unsigned contract deployment transaction.
func (c *Client) BuildDeployContractTx(ctx context.Context, req *noderpc.BuildDeployContractTx) (*result.BuildDeployContractTx, error) {
	var resp = new(result.BuildDeployContractTx)
	if err := c.post(ctx, "deploy-contract", "/contracts/unsigned-tx/deploy-contract", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// BuildExecuteScriptTx builds an unsigned script execution transaction.
func (c *Client) BuildExecuteScriptTx(ctx context.Context, req *noderpc.BuildExecuteScriptTx) (*result.BuildExecuteScriptTx, error) {
	var resp = new(result.BuildExecuteScriptTx)
	if err := c.post(ctx, "execute-script", "/contracts/unsigned-tx/execute-script", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// SubmitTransaction submits the signed transaction to the network.
func (c *Client) SubmitTransaction(ctx context.Context, unsignedTx string, signature string) (*result.SubmitTransaction, error) {
	var (
		req  = &noderpc.SubmitTransaction{UnsignedTx: unsignedTx, Signature: signature}
		resp = new(result.SubmitTransaction)
	)
	if err := c.post(ctx, "submit", "/transactions/submit", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetTransactionStatus returns the status of the transaction. The node
// doesn't fail for unknown transactions, result.TxNotFound is returned.
func (c *Client) GetTransactionStatus(ctx context.Context, txID string) (*result.TxStatus, error) {
	var (
		resp = new(result.TxStatus)
		q    = url.Values{"txId": []string{txID}}
	)
	if err := c.get(ctx, "tx-status", "/transactions/status", q, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetContractEvents returns at most limit events of the contract starting
// from the given counter value.
func (c *Client) GetContractEvents(ctx context.Context, addr string, start int, limit int) (*result.ContractEvents, error) {
	var (
		resp = new(result.ContractEvents)
		q    = url.Values{"start": []string{strconv.Itoa(start)}}
	)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if err := c.get(ctx, "contract-events", "/events/contract/"+url.PathEscape(addr), q, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetContractEventsCurrentCount returns the number of events emitted by the
// contract so far.
func (c *Client) GetContractEventsCurrentCount(ctx context.Context, addr string) (int, error) {
	var resp int
	if err := c.get(ctx, "contract-events-count", "/events/contract/"+url.PathEscape(addr)+"/current-count", nil, &resp); err != nil {
		return 0, err
	}
	return resp, nil
}

// UnlockWallet unlocks the node wallet.
func (c *Client) UnlockWallet(ctx context.Context, name string, password string) error {
	return c.performRequest(ctx, &request{
		name:     "wallet-unlock",
		method:   http.MethodPost,
		path:     "/wallets/" + url.PathEscape(name) + "/unlock",
		body:     &noderpc.WalletUnlock{Password: password},
		noResult: true,
	}, nil)
}

// GetWalletAddresses returns the addresses of the node wallet.
func (c *Client) GetWalletAddresses(ctx context.Context, name string) (*result.WalletAddresses, error) {
	var resp = new(result.WalletAddresses)
	if err := c.get(ctx, "wallet-addresses", "/wallets/"+url.PathEscape(name)+"/addresses", nil, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// SignWithWallet signs hex data with the active address of the node wallet.
func (c *Client) SignWithWallet(ctx context.Context, name string, data string) (string, error) {
	var resp = new(result.Sign)
	if err := c.post(ctx, "wallet-sign", "/wallets/"+url.PathEscape(name)+"/sign", &noderpc.Sign{Data: data}, resp); err != nil {
		return "", err
	}
	return resp.Signature, nil
}

// RestoreWallet restores the node wallet from the mnemonic.
func (c *Client) RestoreWallet(ctx context.Context, req *noderpc.WalletRestore) (*result.WalletRestore, error) {
	var resp = new(result.WalletRestore)
	err := c.performRequest(ctx, &request{
		name:   "wallet-restore",
		method: http.MethodPut,
		path:   "/wallets",
		body:   req,
	}, resp)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) get(ctx context.Context, name string, path string, q url.Values, v any) error {
	return c.performRequest(ctx, &request{
		name:   name,
		method: http.MethodGet,
		path:   path,
		query:  q,
	}, v)
}

func (c *Client) post(ctx context.Context, name string, path string, body any, v any) error {
	return c.performRequest(ctx, &request{
		name:   name,
		method: http.MethodPost,
		path:   path,
		body:   body,
	}, v)
}
