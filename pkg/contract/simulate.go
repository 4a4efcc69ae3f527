package contract

import (
	"context"
	"fmt"

	"github.com/nspcc-dev/alephium-go/pkg/noderpc"
	"github.com/nspcc-dev/alephium-go/pkg/noderpc/result"
	"github.com/nspcc-dev/alephium-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/alephium-go/pkg/smartcontract"
)

// Tester is used to simulate contract methods.
type Tester interface {
	TestContract(ctx context.Context, req *noderpc.TestContract) (*result.TestContract, error)
}

// NamedValuer is implemented by typed fields and arguments of generated
// bindings.
type NamedValuer interface {
	ToNamedVals() smartcontract.NamedVals
}

// NoArgs is used for methods without parameters and contracts without
// fields.
type NoArgs struct{}

// ToNamedVals implements NamedValuer.
func (NoArgs) ToNamedVals() smartcontract.NamedVals {
	return smartcontract.NamedVals{}
}

// TestParams contains simulation parameters.
type TestParams struct {
	// Group is the group of the simulation, 0 by default.
	Group int
	// Address of the tested contract, a random one is generated if not set.
	Address string
	// BlockHash and TxID are passed to the node as is, it generates them if
	// they're not set.
	BlockHash string
	TxID      string
	// InitialFields of the tested contract.
	InitialFields smartcontract.NamedVals
	// InitialAsset of the tested contract, 1 ALPH by default.
	InitialAsset *noderpc.Asset
	// Args of the method.
	Args smartcontract.NamedVals
	// ExistingContracts are other contracts available to the tested one.
	ExistingContracts []*ContractState
	// InputAssets are assets of the caller.
	InputAssets []noderpc.InputAsset
}

// TypedTestParams is the same as TestParams, but with typed fields and
// arguments.
type TypedTestParams[F NamedValuer, A NamedValuer] struct {
	Group             int
	Address           string
	BlockHash         string
	TxID              string
	InitialFields     F
	InitialAsset      *noderpc.Asset
	Args              A
	ExistingContracts []*ContractState
	InputAssets       []noderpc.InputAsset
}

// Untyped converts parameters into TestParams.
func (p TypedTestParams[F, A]) Untyped() TestParams {
	return TestParams{
		Group:             p.Group,
		Address:           p.Address,
		BlockHash:         p.BlockHash,
		TxID:              p.TxID,
		InitialFields:     p.InitialFields.ToNamedVals(),
		InitialAsset:      p.InitialAsset,
		Args:              p.Args.ToNamedVals(),
		ExistingContracts: p.ExistingContracts,
		InputAssets:       p.InputAssets,
	}
}

// TestResult is the result of a simulation. Contracts are ordered the way
// the node returns them, the most recently touched ones go first.
type TestResult[R any] struct {
	Address    string
	ContractID string
	Returns    R
	GasUsed    int
	Contracts  []*ContractState
	TxInputs   []string
	TxOutputs  []result.Output
	Events     []ContractEvent
}

// Contract returns the state of the contract at addr from the result.
func (r *TestResult[R]) Contract(addr string) (*ContractState, bool) {
	return findState(r.Contracts, addr)
}

func findState(states []*ContractState, addr string) (*ContractState, bool) {
	for _, st := range states {
		if st.Address == addr {
			return st, true
		}
	}
	return nil, false
}

// TestPublicMethod simulates a public method of the contract, returns are
// decoded according to their type tags.
func TestPublicMethod(ctx context.Context, t Tester, c *Contract, method string, p TestParams) (*TestResult[[]any], error) {
	fn, _, err := c.Function(method)
	if err != nil {
		return nil, err
	}
	if !fn.IsPublic {
		return nil, fmt.Errorf("%w: %s.%s", ErrPrivateMethod, c.Name(), method)
	}
	return TestMethod(ctx, t, c, method, p, unwrap.Values)
}

// TestPrivateMethod simulates a private method of the contract, returns are
// decoded according to their type tags.
func TestPrivateMethod(ctx context.Context, t Tester, c *Contract, method string, p TestParams) (*TestResult[[]any], error) {
	fn, _, err := c.Function(method)
	if err != nil {
		return nil, err
	}
	if fn.IsPublic {
		return nil, fmt.Errorf("%w: %s.%s", ErrPublicMethod, c.Name(), method)
	}
	return TestMethod(ctx, t, c, method, p, unwrap.Values)
}

// TestMethod simulates any method of the contract and decodes its returns
// with decode, functions from the unwrap package can be used for it.
func TestMethod[R any](ctx context.Context, t Tester, c *Contract, method string, p TestParams, decode func([]noderpc.Val, error) (R, error)) (*TestResult[R], error) {
	req, err := c.testRequest(method, p)
	if err != nil {
		return nil, err
	}
	res, err := t.TestContract(ctx, req)
	if err != nil {
		return nil, err
	}
	return decodeTestResult(c, req, p.ExistingContracts, res, decode)
}

// TestTyped is TestMethod for typed parameters.
func TestTyped[R any, F NamedValuer, A NamedValuer](ctx context.Context, t Tester, c *Contract, method string, p TypedTestParams[F, A], decode func([]noderpc.Val, error) (R, error)) (*TestResult[R], error) {
	return TestMethod(ctx, t, c, method, p.Untyped(), decode)
}

func (c *Contract) testRequest(method string, p TestParams) (*noderpc.TestContract, error) {
	fn, idx, err := c.Function(method)
	if err != nil {
		return nil, err
	}
	fields, err := c.EncodeFields(p.InitialFields)
	if err != nil {
		return nil, fmt.Errorf("initial fields: %w", err)
	}
	args, err := smartcontract.ToVals(fn.ParamNames, fn.ParamTypes, p.Args)
	if err != nil {
		return nil, fmt.Errorf("%s arguments: %w", method, err)
	}
	addr := p.Address
	if addr == "" {
		addr, err = RandomAddress(p.Group)
		if err != nil {
			return nil, err
		}
	}
	existing := make([]noderpc.ContractState, 0, len(p.ExistingContracts))
	for _, st := range p.ExistingContracts {
		ns, err := st.ToNode()
		if err != nil {
			return nil, fmt.Errorf("existing contracts: %w", err)
		}
		existing = append(existing, ns)
	}
	asset := defaultAsset(p.InitialAsset)
	group := p.Group
	return &noderpc.TestContract{
		Group:             &group,
		BlockHash:         p.BlockHash,
		TxID:              p.TxID,
		Address:           addr,
		Bytecode:          c.Bytecode(),
		InitialFields:     fields,
		InitialAsset:      &asset,
		MethodIndex:       idx,
		Args:              args,
		ExistingContracts: existing,
		InputAssets:       p.InputAssets,
	}, nil
}

func decodeTestResult[R any](c *Contract, req *noderpc.TestContract, existing []*ContractState, res *result.TestContract, decode func([]noderpc.Val, error) (R, error)) (*TestResult[R], error) {
	returns, err := decode(res.Returns, nil)
	if err != nil {
		return nil, fmt.Errorf("returns: %w", err)
	}
	addr := res.Address
	if addr == "" {
		addr = req.Address
	}
	r := newResolver(c, addr, existing)
	states, err := r.states(res.Contracts)
	if err != nil {
		return nil, err
	}
	events, err := r.events(res.Events, req.TxID)
	if err != nil {
		return nil, err
	}
	id := res.ContractID
	if id == "" {
		id = idOf(addr)
	}
	return &TestResult[R]{
		Address:    addr,
		ContractID: id,
		Returns:    returns,
		GasUsed:    res.GasUsed,
		Contracts:  states,
		TxInputs:   res.TxInputs,
		TxOutputs:  res.TxOutputs,
		Events:     events,
	}, nil
}
