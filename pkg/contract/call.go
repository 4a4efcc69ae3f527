package contract

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/nspcc-dev/alephium-go/pkg/encoding/address"
	"github.com/nspcc-dev/alephium-go/pkg/noderpc"
	"github.com/nspcc-dev/alephium-go/pkg/noderpc/result"
	"github.com/nspcc-dev/alephium-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/alephium-go/pkg/smartcontract"
)

// ErrCallFailed is returned when the node reports a failed call.
var ErrCallFailed = errors.New("call failed")

// Caller is used to call methods of deployed contracts.
type Caller interface {
	CallContract(ctx context.Context, req *noderpc.CallContract) (*result.CallContract, error)
	MulticallContract(ctx context.Context, req *noderpc.MultipleCallContract) (*result.MultipleCallContract, error)
}

// CallParams contains parameters of a read call.
type CallParams struct {
	// Args of the method.
	Args smartcontract.NamedVals
	// WorldStateBlockHash pins the call to the state at the given block,
	// the latest state is used if not set.
	WorldStateBlockHash string
	TxID                string
	// ExistingContracts are addresses of contracts the call can touch.
	ExistingContracts []string
	InputAssets       []noderpc.InputAsset
}

// TypedCallParams is the same as CallParams, but with typed arguments.
type TypedCallParams[A NamedValuer] struct {
	Args                A
	WorldStateBlockHash string
	TxID                string
	ExistingContracts   []string
	InputAssets         []noderpc.InputAsset
}

// Untyped converts parameters into CallParams.
func (p TypedCallParams[A]) Untyped() CallParams {
	return CallParams{
		Args:                p.Args.ToNamedVals(),
		WorldStateBlockHash: p.WorldStateBlockHash,
		TxID:                p.TxID,
		ExistingContracts:   p.ExistingContracts,
		InputAssets:         p.InputAssets,
	}
}

// CallResult is the result of a read call.
type CallResult[R any] struct {
	Returns   R
	GasUsed   int
	Contracts []*ContractState
	TxInputs  []string
	TxOutputs []result.Output
	Events    []ContractEvent
}

// Contract returns the state of the contract at addr from the result.
func (r *CallResult[R]) Contract(addr string) (*ContractState, bool) {
	return findState(r.Contracts, addr)
}

func (c *Contract) callRequest(groups int, addr string, method string, p CallParams) (*noderpc.CallContract, error) {
	fn, idx, err := c.Function(method)
	if err != nil {
		return nil, err
	}
	args, err := smartcontract.ToVals(fn.ParamNames, fn.ParamTypes, p.Args)
	if err != nil {
		return nil, fmt.Errorf("%s arguments: %w", method, err)
	}
	group, err := address.Group(addr, groups)
	if err != nil {
		return nil, err
	}
	return &noderpc.CallContract{
		Group:               group,
		WorldStateBlockHash: p.WorldStateBlockHash,
		TxID:                p.TxID,
		Address:             addr,
		MethodIndex:         idx,
		Args:                args,
		ExistingContracts:   p.ExistingContracts,
		InputAssets:         p.InputAssets,
	}, nil
}

// CallMethod calls the method of the contract deployed at addr and decodes
// returns with decode. The call is made against the group of addr.
func CallMethod[R any](ctx context.Context, cl Caller, c *Contract, addr string, method string, p CallParams, decode func([]noderpc.Val, error) (R, error)) (*CallResult[R], error) {
	req, err := c.callRequest(groupsOf(cl), addr, method, p)
	if err != nil {
		return nil, err
	}
	res, err := cl.CallContract(ctx, req)
	if err != nil {
		return nil, err
	}
	return DecodeCallResult(c, addr, method, res, decode)
}

// CallTyped is CallMethod for typed parameters.
func CallTyped[R any, A NamedValuer](ctx context.Context, cl Caller, c *Contract, addr string, method string, p TypedCallParams[A], decode func([]noderpc.Val, error) (R, error)) (*CallResult[R], error) {
	return CallMethod(ctx, cl, c, addr, method, p.Untyped(), decode)
}

// DecodeCallResult decodes a raw result of the method call.
func DecodeCallResult[R any](c *Contract, addr string, method string, res *result.CallContract, decode func([]noderpc.Val, error) (R, error)) (*CallResult[R], error) {
	if res.Failed() {
		return nil, fmt.Errorf("%w: %s.%s: %s", ErrCallFailed, c.Name(), method, res.Error)
	}
	returns, err := decode(res.Returns, nil)
	if err != nil {
		return nil, fmt.Errorf("%s returns: %w", method, err)
	}
	r := newResolver(c, addr, nil)
	states, err := r.states(res.Contracts)
	if err != nil {
		return nil, err
	}
	events, err := r.events(res.Events, "")
	if err != nil {
		return nil, err
	}
	return &CallResult[R]{
		Returns:   returns,
		GasUsed:   res.GasUsed,
		Contracts: states,
		TxInputs:  res.TxInputs,
		TxOutputs: res.TxOutputs,
		Events:    events,
	}, nil
}

// MultiCallRaw calls several methods of the contract deployed at addr in a
// single node request. Results are returned by method name, exactly for the
// requested set of methods. No request is made for an empty set.
func MultiCallRaw(ctx context.Context, cl Caller, c *Contract, addr string, calls map[string]CallParams) (map[string]*result.CallContract, error) {
	if len(calls) == 0 {
		return map[string]*result.CallContract{}, nil
	}
	methods := make([]string, 0, len(calls))
	for m := range calls {
		methods = append(methods, m)
	}
	sort.Strings(methods)

	var (
		groups = groupsOf(cl)
		req    = &noderpc.MultipleCallContract{Calls: make([]noderpc.CallContract, 0, len(methods))}
	)
	for _, m := range methods {
		call, err := c.callRequest(groups, addr, m, calls[m])
		if err != nil {
			return nil, err
		}
		req.Calls = append(req.Calls, *call)
	}
	res, err := cl.MulticallContract(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(res.Results) != len(methods) {
		return nil, fmt.Errorf("expected %d results, got %d", len(methods), len(res.Results))
	}
	out := make(map[string]*result.CallContract, len(methods))
	for i, m := range methods {
		out[m] = &res.Results[i]
	}
	return out, nil
}

// MultiCall is MultiCallRaw with returns decoded according to their type
// tags. Any failed call makes the whole multicall fail.
func MultiCall(ctx context.Context, cl Caller, c *Contract, addr string, calls map[string]CallParams) (map[string]*CallResult[[]any], error) {
	raw, err := MultiCallRaw(ctx, cl, c, addr, calls)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*CallResult[[]any], len(raw))
	for m, r := range raw {
		out[m], err = DecodeCallResult(c, addr, m, r, unwrap.Values)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
