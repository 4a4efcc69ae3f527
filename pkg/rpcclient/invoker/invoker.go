/*
Package invoker provides a convenient wrapper for read-only contract calls
and method simulations.

Invoker is a layer between the node client and contract-specific code. It
reuses the same set of input assets for a series of calls and can pin them
to some historic world state. Its methods have the same signatures as the
ones of the client, so it can be used wherever contract.Caller,
contract.Tester or contract.StateReader is expected.
*/
package invoker

import (
	"context"

	"github.com/nspcc-dev/alephium-go/pkg/contract"
	"github.com/nspcc-dev/alephium-go/pkg/encoding/address"
	"github.com/nspcc-dev/alephium-go/pkg/noderpc"
	"github.com/nspcc-dev/alephium-go/pkg/noderpc/result"
	"github.com/nspcc-dev/alephium-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/alephium-go/pkg/smartcontract"
)

// RPCInvoke is a set of RPC methods needed to execute things at the current
// world state.
type RPCInvoke interface {
	contract.Tester
	contract.Caller
	contract.StateReader
}

// Invoker allows to call and simulate contract methods using RPC client. It
// doesn't do anything with the results, that's left for upper (contract)
// layer to deal with. Invoker does not produce any transactions and does not
// change the state of the chain.
type Invoker struct {
	client RPCInvoke
	assets []noderpc.InputAsset
}

type historicConverter struct {
	RPCInvoke
	block string
}

// New creates an Invoker to call things at the current world state. Input
// assets are added to every request that doesn't have its own ones.
func New(client RPCInvoke, assets []noderpc.InputAsset) *Invoker {
	return &Invoker{client, assets}
}

// NewHistoricAtBlock creates an Invoker to call things at the world state of
// the given block.
func NewHistoricAtBlock(block string, client RPCInvoke, assets []noderpc.InputAsset) *Invoker {
	return New(&historicConverter{
		RPCInvoke: client,
		block:     block,
	}, assets)
}

func (h *historicConverter) TestContract(ctx context.Context, req *noderpc.TestContract) (*result.TestContract, error) {
	if req.BlockHash == "" {
		r := *req
		r.BlockHash = h.block
		req = &r
	}
	return h.RPCInvoke.TestContract(ctx, req)
}

func (h *historicConverter) CallContract(ctx context.Context, req *noderpc.CallContract) (*result.CallContract, error) {
	return h.RPCInvoke.CallContract(ctx, h.pin(*req))
}

func (h *historicConverter) MulticallContract(ctx context.Context, req *noderpc.MultipleCallContract) (*result.MultipleCallContract, error) {
	var calls = make([]noderpc.CallContract, len(req.Calls))
	for i := range req.Calls {
		calls[i] = *h.pin(req.Calls[i])
	}
	return h.RPCInvoke.MulticallContract(ctx, &noderpc.MultipleCallContract{Calls: calls})
}

func (h *historicConverter) pin(req noderpc.CallContract) *noderpc.CallContract {
	if req.WorldStateBlockHash == "" {
		req.WorldStateBlockHash = h.block
	}
	return &req
}

// Groups returns the number of groups reported by the client if it can do
// that and address.DefaultGroups otherwise.
func (v *Invoker) Groups() int {
	if g, ok := v.client.(contract.GroupsProvider); ok {
		return g.Groups()
	}
	if h, ok := v.client.(*historicConverter); ok {
		if g, ok := h.RPCInvoke.(contract.GroupsProvider); ok {
			return g.Groups()
		}
	}
	return address.DefaultGroups
}

// TestContract simulates the method execution.
func (v *Invoker) TestContract(ctx context.Context, req *noderpc.TestContract) (*result.TestContract, error) {
	if len(req.InputAssets) == 0 && len(v.assets) != 0 {
		r := *req
		r.InputAssets = v.assets
		req = &r
	}
	return v.client.TestContract(ctx, req)
}

// CallContract calls the method of a deployed contract.
func (v *Invoker) CallContract(ctx context.Context, req *noderpc.CallContract) (*result.CallContract, error) {
	return v.client.CallContract(ctx, v.withAssets(*req))
}

// MulticallContract calls several methods in a single request.
func (v *Invoker) MulticallContract(ctx context.Context, req *noderpc.MultipleCallContract) (*result.MultipleCallContract, error) {
	var calls = make([]noderpc.CallContract, len(req.Calls))
	for i := range req.Calls {
		calls[i] = *v.withAssets(req.Calls[i])
	}
	return v.client.MulticallContract(ctx, &noderpc.MultipleCallContract{Calls: calls})
}

// GetContractState returns the current contract state, it's not affected by
// the historic block.
func (v *Invoker) GetContractState(ctx context.Context, addr string, group int) (*noderpc.ContractState, error) {
	return v.client.GetContractState(ctx, addr, group)
}

func (v *Invoker) withAssets(req noderpc.CallContract) *noderpc.CallContract {
	if len(req.InputAssets) == 0 && len(v.assets) != 0 {
		req.InputAssets = v.assets
	}
	return &req
}

// Call calls the method of the contract deployed at addr with the given
// arguments and returns the result with values decoded according to their
// type tags.
func (v *Invoker) Call(ctx context.Context, c *contract.Contract, addr string, method string, args smartcontract.NamedVals) (*contract.CallResult[[]any], error) {
	return contract.CallMethod(ctx, v, c, addr, method, contract.CallParams{Args: args}, unwrap.Values)
}

// Test simulates the method of the contract.
func (v *Invoker) Test(ctx context.Context, c *contract.Contract, method string, p contract.TestParams) (*contract.TestResult[[]any], error) {
	return contract.TestPublicMethod(ctx, v, c, method, p)
}
