package contract

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/holiman/uint256"
	"github.com/nspcc-dev/alephium-go/pkg/encoding/address"
	"github.com/nspcc-dev/alephium-go/pkg/noderpc"
	"github.com/nspcc-dev/alephium-go/pkg/noderpc/result"
	"github.com/nspcc-dev/alephium-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/alephium-go/pkg/smartcontract"
	"github.com/nspcc-dev/alephium-go/pkg/smartcontract/artifact"
	"github.com/stretchr/testify/require"
)

const artifactsDir = "../../artifacts"

func loadContract(t *testing.T, name string) *Contract {
	c, err := FromFile(filepath.Join(artifactsDir, name))
	require.NoError(t, err)
	return c
}

func u256Val(n uint64) noderpc.Val {
	v, _ := smartcontract.ToVal("U256", n)
	return v
}

func byteVecVal(s string) noderpc.Val {
	v, _ := smartcontract.ToVal("ByteVec", s)
	return v
}

func arrayVal(vals ...noderpc.Val) noderpc.Val {
	raw, _ := json.Marshal(vals)
	return noderpc.Val{Type: "Array", Value: raw}
}

type testTester struct {
	req *noderpc.TestContract
	res *result.TestContract
	err error
}

func (t *testTester) TestContract(_ context.Context, req *noderpc.TestContract) (*result.TestContract, error) {
	t.req = req
	return t.res, t.err
}

func TestLoad(t *testing.T) {
	for _, name := range []string{"add.ral.json", "sub.ral.json", "greeter.ral.json", "nft/nft_collection_test.ral.json"} {
		c := loadContract(t, name)
		require.NotEmpty(t, c.Name())
		require.Equal(t, c.Artifact().CodeHash, c.CodeHash())
	}
	for _, name := range []string{"main.ral.json", "greeter_main.ral.json"} {
		_, err := ScriptFromFile(filepath.Join(artifactsDir, name))
		require.NoError(t, err)
	}

	_, err := FromJSON([]byte(`{"name": "X"}`))
	require.Error(t, err)
	_, err = ScriptFromJSON([]byte(`{}`))
	require.Error(t, err)

	a, err := artifact.ReadContractFile(filepath.Join(artifactsDir, "greeter.ral.json"))
	require.NoError(t, err)
	_, err = FromArtifact(a)
	require.NoError(t, err)
	a.CodeHash = strings.Repeat("00", 32)
	_, err = FromArtifact(a)
	require.ErrorIs(t, err, artifact.ErrCodeHashMismatch)
}

func TestMethodIndex(t *testing.T) {
	add := loadContract(t, "add.ral.json")

	idx, err := add.MethodIndex("add")
	require.NoError(t, err)
	require.Equal(t, 0, idx)
	idx, err = add.MethodIndex("addPrivate")
	require.NoError(t, err)
	require.Equal(t, 1, idx)

	_, err = add.MethodIndex("mul")
	require.ErrorIs(t, err, ErrUnknownMethod)
	require.Equal(t, 0, add.EventIndex("Add"))
	require.Equal(t, -1, add.EventIndex("Sub"))
}

func TestToState(t *testing.T) {
	sub := loadContract(t, "sub.ral.json")

	st, err := sub.ToState(smartcontract.NamedVals{"result": 0}, nil, "")
	require.NoError(t, err)
	require.Equal(t, DefaultAttoAlphAmount, st.Asset.AttoAlphAmount)
	require.Equal(t, sub.CodeHash(), st.CodeHash)
	require.Equal(t, "Sub", st.Name())
	g, err := st.Group(address.DefaultGroups)
	require.NoError(t, err)
	require.Equal(t, 0, g)
	addr, err := AddressFromID(st.ContractID)
	require.NoError(t, err)
	require.Equal(t, st.Address, addr)

	other, err := sub.ToState(smartcontract.NamedVals{"result": 0}, nil, "")
	require.NoError(t, err)
	require.NotEqual(t, st.Address, other.Address)

	fixed := address.FromContractID(make([]byte, 32))
	st, err = sub.ToState(smartcontract.NamedVals{"result": 5}, &noderpc.Asset{AttoAlphAmount: "1"}, fixed)
	require.NoError(t, err)
	require.Equal(t, fixed, st.Address)
	require.Equal(t, strings.Repeat("00", 32), st.ContractID)
	require.Equal(t, "1", st.Asset.AttoAlphAmount)

	ns, err := st.ToNode()
	require.NoError(t, err)
	require.Equal(t, []noderpc.Val{u256Val(5)}, ns.Fields)

	_, err = sub.ToState(smartcontract.NamedVals{"res": 0}, nil, "")
	require.ErrorIs(t, err, smartcontract.ErrInvalidValue)
	_, err = sub.ToState(smartcontract.NamedVals{"result": -1}, nil, "")
	require.ErrorIs(t, err, smartcontract.ErrInvalidValue)
	_, err = sub.ToState(smartcontract.NamedVals{"result": 0}, nil, "bad")
	require.Error(t, err)
}

// addSubResult mimics the node answer for Add.add([2, 1]) with Sub deployed
// at subAddr.
func addSubResult(add, sub *Contract, addAddr, subAddr string, subID string) *result.TestContract {
	return &result.TestContract{
		Address:    addAddr,
		ContractID: idOf(addAddr),
		Returns:    []noderpc.Val{arrayVal(u256Val(3), u256Val(1))},
		GasUsed:    17476,
		Contracts: []noderpc.ContractState{
			{
				Address:  subAddr,
				Bytecode: sub.Bytecode(),
				CodeHash: sub.CodeHash(),
				Fields:   []noderpc.Val{u256Val(1)},
				Asset:    noderpc.Asset{AttoAlphAmount: DefaultAttoAlphAmount},
			},
			{
				Address:  addAddr,
				Bytecode: add.Bytecode(),
				CodeHash: add.CodeHash(),
				Fields:   []noderpc.Val{byteVecVal(subID), u256Val(3)},
				Asset:    noderpc.Asset{AttoAlphAmount: DefaultAttoAlphAmount},
			},
		},
		Events: []result.ContractEventByTxID{
			{ContractAddress: subAddr, EventIndex: 0, Fields: []noderpc.Val{u256Val(2), u256Val(1)}},
			{ContractAddress: addAddr, EventIndex: 0, Fields: []noderpc.Val{u256Val(2), u256Val(1)}},
		},
	}
}

func TestAddSubSimulation(t *testing.T) {
	add := loadContract(t, "add.ral.json")
	sub := loadContract(t, "sub.ral.json")

	subState, err := sub.ToState(smartcontract.NamedVals{"result": 0}, nil, "")
	require.NoError(t, err)
	addAddr, err := RandomAddress(0)
	require.NoError(t, err)

	tester := &testTester{res: addSubResult(add, sub, addAddr, subState.Address, subState.ContractID)}
	params := TestParams{
		Address:           addAddr,
		InitialFields:     smartcontract.NamedVals{"subContractId": subState.ContractID, "result": 0},
		Args:              smartcontract.NamedVals{"array": []int{2, 1}},
		ExistingContracts: []*ContractState{subState},
	}
	res, err := TestPublicMethod(context.Background(), tester, add, "add", params)
	require.NoError(t, err)

	req := tester.req
	require.Equal(t, 0, req.MethodIndex)
	require.Equal(t, 0, *req.Group)
	require.Equal(t, addAddr, req.Address)
	require.Equal(t, add.Bytecode(), req.Bytecode)
	require.Equal(t, []noderpc.Val{byteVecVal(subState.ContractID), u256Val(0)}, req.InitialFields)
	require.Equal(t, []noderpc.Val{arrayVal(u256Val(2), u256Val(1))}, req.Args)
	require.Equal(t, DefaultAttoAlphAmount, req.InitialAsset.AttoAlphAmount)
	require.Len(t, req.ExistingContracts, 1)
	require.Equal(t, subState.Address, req.ExistingContracts[0].Address)
	require.Equal(t, []noderpc.Val{u256Val(0)}, req.ExistingContracts[0].Fields)

	require.Equal(t, []any{[]any{uint256.NewInt(3), uint256.NewInt(1)}}, res.Returns)
	require.Equal(t, addAddr, res.Address)
	require.Len(t, res.Contracts, 2)
	require.Equal(t, sub.CodeHash(), res.Contracts[0].CodeHash)
	require.Equal(t, uint256.NewInt(1), res.Contracts[0].Fields["result"])
	require.Equal(t, add.CodeHash(), res.Contracts[1].CodeHash)
	require.Equal(t, subState.ContractID, res.Contracts[1].Fields["subContractId"])
	require.Equal(t, uint256.NewInt(3), res.Contracts[1].Fields["result"])
	st, ok := res.Contract(addAddr)
	require.True(t, ok)
	require.Equal(t, "Add", st.Name())

	SortEventsByName(res.Events)
	require.Len(t, res.Events, 2)
	require.Equal(t, "Add", res.Events[0].Name)
	require.Equal(t, "Sub", res.Events[1].Name)
	for _, ev := range res.Events {
		require.Equal(t, uint256.NewInt(2), ev.Fields["x"])
		require.Equal(t, uint256.NewInt(1), ev.Fields["y"])
	}

	typed, err := TestMethod(context.Background(), tester, add, "addPrivate", params, unwrap.ArrayOf[*uint256.Int])
	require.NoError(t, err)
	require.Equal(t, 1, tester.req.MethodIndex)
	require.Equal(t, []*uint256.Int{uint256.NewInt(3), uint256.NewInt(1)}, typed.Returns)

	priv, err := TestPrivateMethod(context.Background(), tester, add, "addPrivate", params)
	require.NoError(t, err)
	require.Equal(t, res.Returns, priv.Returns)

	_, err = TestPublicMethod(context.Background(), tester, add, "addPrivate", params)
	require.ErrorIs(t, err, ErrPrivateMethod)
	_, err = TestPrivateMethod(context.Background(), tester, add, "add", params)
	require.ErrorIs(t, err, ErrPublicMethod)
	_, err = TestPublicMethod(context.Background(), tester, add, "mul", params)
	require.ErrorIs(t, err, ErrUnknownMethod)
}

func TestSimulationErrors(t *testing.T) {
	add := loadContract(t, "add.ral.json")
	sub := loadContract(t, "sub.ral.json")
	subState, err := sub.ToState(smartcontract.NamedVals{"result": 0}, nil, "")
	require.NoError(t, err)

	good := TestParams{
		InitialFields:     smartcontract.NamedVals{"subContractId": subState.ContractID, "result": 0},
		Args:              smartcontract.NamedVals{"array": []int{2, 1}},
		ExistingContracts: []*ContractState{subState},
	}
	tester := &testTester{}

	p := good
	p.Args = smartcontract.NamedVals{"array": []int{2, 1, 0}}
	_, err = TestPublicMethod(context.Background(), tester, add, "add", p)
	require.ErrorIs(t, err, smartcontract.ErrInvalidValue)

	p = good
	p.Args = smartcontract.NamedVals{"arr": []int{2, 1}}
	_, err = TestPublicMethod(context.Background(), tester, add, "add", p)
	require.ErrorIs(t, err, smartcontract.ErrInvalidValue)

	p = good
	p.InitialFields = smartcontract.NamedVals{"subContractId": "zz", "result": 0}
	_, err = TestPublicMethod(context.Background(), tester, add, "add", p)
	require.ErrorIs(t, err, smartcontract.ErrInvalidValue)
	require.Nil(t, tester.req)

	nodeErr := noderpc.NewError(400, "VM execution error")
	tester.err = nodeErr
	_, err = TestPublicMethod(context.Background(), tester, add, "add", good)
	require.ErrorIs(t, err, nodeErr)

	// Random address of the requested group.
	p = good
	p.Group = 2
	_, _ = TestPublicMethod(context.Background(), tester, add, "add", p)
	g, err := address.Group(tester.req.Address, address.DefaultGroups)
	require.NoError(t, err)
	require.Equal(t, 2, g)

	// Node returns a contract nobody knows about.
	tester.err = nil
	tester.res = addSubResult(add, sub, tester.req.Address, subState.Address, subState.ContractID)
	tester.res.Contracts[0].CodeHash = strings.Repeat("11", 32)
	_, err = TestPublicMethod(context.Background(), tester, add, "add", good)
	require.ErrorIs(t, err, ErrUnknownContract)

	// Registered contracts are found by code hash.
	tester.res = addSubResult(add, sub, tester.req.Address, subState.Address, subState.ContractID)
	p = good
	p.ExistingContracts = nil
	_, err = TestPublicMethod(context.Background(), tester, add, "add", p)
	require.ErrorIs(t, err, ErrUnknownContract)
	reg := DefaultRegistry
	DefaultRegistry = NewRegistry()
	t.Cleanup(func() { DefaultRegistry = reg })
	Register(sub)
	// Sub event can't be attributed without the existing state.
	tester.res.Events = tester.res.Events[1:]
	res, err := TestPublicMethod(context.Background(), tester, add, "add", p)
	require.NoError(t, err)
	require.Equal(t, "Sub", res.Contracts[0].Name())
}

func TestSortEventsByName(t *testing.T) {
	events := []ContractEvent{
		{Name: "Sub", EventIndex: 1},
		{Name: "Add", EventIndex: 2},
		{Name: "Sub", EventIndex: 3},
		{Name: "Add", EventIndex: 4},
	}
	SortEventsByName(events)
	var idx []int
	for _, ev := range events {
		idx = append(idx, ev.EventIndex)
	}
	require.Equal(t, []int{2, 4, 1, 3}, idx)
}

func TestSystemEvents(t *testing.T) {
	created := address.FromContractID(make([]byte, 32))
	raw, _ := json.Marshal(created)
	vals := []noderpc.Val{{Type: "Address", Value: raw}}

	name, fields, err := decodeEvent(nil, ContractCreatedEventIndex, vals)
	require.NoError(t, err)
	require.Equal(t, ContractCreatedEvent, name)
	require.Equal(t, created, fields["address"])

	name, _, err = decodeEvent(nil, ContractDestroyedEventIndex, vals)
	require.NoError(t, err)
	require.Equal(t, ContractDestroyedEvent, name)

	_, _, err = decodeEvent(nil, 0, vals)
	require.ErrorIs(t, err, ErrUnknownContract)

	add := loadContract(t, "add.ral.json")
	_, _, err = decodeEvent(add, 5, vals)
	require.Error(t, err)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	greeter := loadContract(t, "greeter.ral.json")

	_, ok := r.LookupByCodeHash(greeter.CodeHash())
	require.False(t, ok)
	r.Register(greeter)
	c, ok := r.LookupByCodeHash(greeter.CodeHash())
	require.True(t, ok)
	require.Same(t, greeter, c)

	require.Panics(t, func() { MustRegisterJSON([]byte(`{}`)) })
}

func TestInstance(t *testing.T) {
	add := loadContract(t, "add.ral.json")
	id := make([]byte, 32)
	id[31] = 3
	addr := address.FromContractID(id)

	i := add.At(addr)
	require.Equal(t, addr, i.Address)
	g, err := i.Group(address.DefaultGroups)
	require.NoError(t, err)
	require.Equal(t, 3, g)
	cid, err := i.ContractID()
	require.NoError(t, err)
	require.Equal(t, strings.Repeat("00", 31)+"03", cid)

	// Nothing is checked until used.
	bad := add.At("bad")
	_, err = bad.ContractID()
	require.Error(t, err)
	_, err = bad.FetchState(context.Background(), &testReader{})
	require.ErrorIs(t, err, address.ErrInvalidAddress)
}
