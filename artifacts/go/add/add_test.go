package add

import (
	"context"
	"testing"

	"github.com/holiman/uint256"
	"github.com/nspcc-dev/alephium-go/pkg/contract"
	"github.com/nspcc-dev/alephium-go/pkg/noderpc"
	"github.com/nspcc-dev/alephium-go/pkg/noderpc/result"
	"github.com/nspcc-dev/alephium-go/pkg/smartcontract"
	"github.com/stretchr/testify/require"
)

type testInvoker struct {
	test    *noderpc.TestContract
	multi   *noderpc.MultipleCallContract
	returns noderpc.Val
}

func (t *testInvoker) TestContract(_ context.Context, req *noderpc.TestContract) (*result.TestContract, error) {
	t.test = req
	x, _ := smartcontract.ToVal("U256", 2)
	y, _ := smartcontract.ToVal("U256", 1)
	return &result.TestContract{
		Address: req.Address,
		Returns: []noderpc.Val{t.returns},
		Contracts: []noderpc.ContractState{{
			Address:  req.Address,
			Bytecode: req.Bytecode,
			CodeHash: CodeHash,
			Fields:   req.InitialFields,
		}},
		Events: []result.ContractEventByTxID{{
			ContractAddress: req.Address,
			EventIndex:      0,
			Fields:          []noderpc.Val{x, y},
		}},
	}, nil
}

func (t *testInvoker) CallContract(context.Context, *noderpc.CallContract) (*result.CallContract, error) {
	return &result.CallContract{Returns: []noderpc.Val{t.returns}}, nil
}

func (t *testInvoker) MulticallContract(_ context.Context, req *noderpc.MultipleCallContract) (*result.MultipleCallContract, error) {
	t.multi = req
	return &result.MultipleCallContract{Results: []result.CallContract{{Returns: []noderpc.Val{t.returns}}}}, nil
}

func (t *testInvoker) GetContractState(context.Context, string, int) (*noderpc.ContractState, error) {
	return nil, nil
}

func u256s(vals ...uint64) []*uint256.Int {
	res := make([]*uint256.Int, len(vals))
	for i, v := range vals {
		res[i] = uint256.NewInt(v)
	}
	return res
}

func newInvoker(t *testing.T) *testInvoker {
	ret, err := smartcontract.ToVal("[U256;2]", []int{3, 1})
	require.NoError(t, err)
	return &testInvoker{returns: ret}
}

func TestAdd(t *testing.T) {
	var (
		ctx    = context.Background()
		inv    = newInvoker(t)
		f      = NewFactory(inv)
		fields = Fields{SubContractId: "00", Result: uint256.NewInt(0)}
	)
	res, err := f.TestAdd(ctx, contract.TypedTestParams[Fields, AddArgs]{
		InitialFields: fields,
		Args:          AddArgs{Array: u256s(2, 1)},
	})
	require.NoError(t, err)
	require.Equal(t, u256s(3, 1), res.Returns)
	require.Equal(t, 0, inv.test.MethodIndex)

	events, err := AddEventsFromEvents(res.Events)
	require.NoError(t, err)
	require.Equal(t, []*AddEvent{{X: uint256.NewInt(2), Y: uint256.NewInt(1)}}, events)

	none, err := AddEventsFromEvents([]contract.ContractEvent{{Name: "Sub"}})
	require.NoError(t, err)
	require.Empty(t, none)

	_, err = AddEventsFromEvents([]contract.ContractEvent{{Name: "Add", Fields: smartcontract.NamedVals{"x": uint256.NewInt(1)}}})
	require.ErrorContains(t, err, "field y")

	priv, err := f.TestAddPrivate(ctx, contract.TypedTestParams[Fields, AddPrivateArgs]{
		InitialFields: fields,
		Args:          AddPrivateArgs{Array: u256s(2, 1)},
	})
	require.NoError(t, err)
	require.Equal(t, u256s(3, 1), priv.Returns)
	require.Equal(t, 1, inv.test.MethodIndex)
}

func TestMulticall(t *testing.T) {
	inv := newInvoker(t)
	ins := NewFactory(inv).At("tgx7VNFoP9DJiFMFgXXtafQZkUvyEdDHT9ryamHJYrjq")

	res, err := ins.Multicall(context.Background(), MultiCallParams{
		Add: &contract.TypedCallParams[AddArgs]{Args: AddArgs{Array: u256s(1, 1)}},
	})
	require.NoError(t, err)
	require.Equal(t, u256s(3, 1), res.Add.Returns)
	require.Len(t, inv.multi.Calls, 1)

	single, err := ins.Add(context.Background(), contract.TypedCallParams[AddArgs]{Args: AddArgs{Array: u256s(1, 1)}})
	require.NoError(t, err)
	require.Equal(t, u256s(3, 1), single.Returns)
}
