package contract

import (
	"context"
	"fmt"

	"github.com/nspcc-dev/alephium-go/pkg/encoding/address"
	"github.com/nspcc-dev/alephium-go/pkg/noderpc"
	"github.com/nspcc-dev/alephium-go/pkg/smartcontract"
	"github.com/nspcc-dev/alephium-go/pkg/smartcontract/artifact"
)

// StateReader is used by FetchState to get contract states from the node.
type StateReader interface {
	GetContractState(ctx context.Context, addr string, group int) (*noderpc.ContractState, error)
}

// GroupsProvider can be implemented by node clients to report the number of
// groups of the network, address.DefaultGroups is used otherwise.
type GroupsProvider interface {
	Groups() int
}

// ContractState is a snapshot of some contract state with fields decoded
// according to the contract artifact.
type ContractState struct {
	Address          string
	ContractID       string
	Bytecode         string
	CodeHash         string
	InitialStateHash string
	Fields           smartcontract.NamedVals
	Asset            noderpc.Asset

	contract *Contract
}

// TypedState is a contract state with typed fields, it's used by generated
// bindings.
type TypedState[F any] struct {
	Address    string
	ContractID string
	CodeHash   string
	Fields     F
	Asset      noderpc.Asset
}

// Contract returns the contract the state belongs to.
func (s *ContractState) Contract() *Contract {
	return s.contract
}

// Name returns the name of the contract or an empty string if it's unknown.
func (s *ContractState) Name() string {
	if s.contract == nil {
		return ""
	}
	return s.contract.Name()
}

// Group returns the group of the contract.
func (s *ContractState) Group(groups int) (int, error) {
	return address.Group(s.Address, groups)
}

// ToNode converts the state into the node representation.
func (s *ContractState) ToNode() (noderpc.ContractState, error) {
	if s.contract == nil {
		return noderpc.ContractState{}, fmt.Errorf("%w: state of %s has no contract", ErrUnknownContract, s.Address)
	}
	vals, err := s.contract.EncodeFields(s.Fields)
	if err != nil {
		return noderpc.ContractState{}, fmt.Errorf("contract %s: %w", s.contract.Name(), err)
	}
	return noderpc.ContractState{
		Address:          s.Address,
		Bytecode:         s.Bytecode,
		CodeHash:         s.CodeHash,
		InitialStateHash: s.InitialStateHash,
		Fields:           vals,
		Asset:            s.Asset,
	}, nil
}

func (c *Contract) decodeState(st *noderpc.ContractState) (*ContractState, error) {
	if st.CodeHash != c.artifact.CodeHash {
		return nil, fmt.Errorf("%w: contract %s at %s has %s", artifact.ErrCodeHashMismatch, c.artifact.Name, st.Address, st.CodeHash)
	}
	fields, err := c.DecodeFields(st.Fields)
	if err != nil {
		return nil, fmt.Errorf("contract %s at %s: %w", c.artifact.Name, st.Address, err)
	}
	return &ContractState{
		Address:          st.Address,
		ContractID:       idOf(st.Address),
		Bytecode:         st.Bytecode,
		CodeHash:         st.CodeHash,
		InitialStateHash: st.InitialStateHash,
		Fields:           fields,
		Asset:            st.Asset,
		contract:         c,
	}, nil
}

func groupsOf(v any) int {
	if g, ok := v.(GroupsProvider); ok && g.Groups() > 0 {
		return g.Groups()
	}
	return address.DefaultGroups
}

// FetchState gets the current state of the contract deployed at addr. The
// state isn't cached, every call goes to the node.
func FetchState(ctx context.Context, r StateReader, c *Contract, addr string) (*ContractState, error) {
	group, err := address.Group(addr, groupsOf(r))
	if err != nil {
		return nil, err
	}
	st, err := r.GetContractState(ctx, addr, group)
	if err != nil {
		return nil, err
	}
	return c.decodeState(st)
}

// FetchTypedState is the same as FetchState, but converts fields with conv.
func FetchTypedState[F any](ctx context.Context, r StateReader, c *Contract, addr string, conv func(smartcontract.NamedVals) (F, error)) (*TypedState[F], error) {
	st, err := FetchState(ctx, r, c, addr)
	if err != nil {
		return nil, err
	}
	return ToTypedState(st, conv)
}

// ToTypedState converts fields of the state with conv.
func ToTypedState[F any](st *ContractState, conv func(smartcontract.NamedVals) (F, error)) (*TypedState[F], error) {
	fields, err := conv(st.Fields)
	if err != nil {
		return nil, fmt.Errorf("contract %s at %s: %w", st.Name(), st.Address, err)
	}
	return &TypedState[F]{
		Address:    st.Address,
		ContractID: st.ContractID,
		CodeHash:   st.CodeHash,
		Fields:     fields,
		Asset:      st.Asset,
	}, nil
}
