/*
Package contract provides a generic way to simulate, call and deploy Ralph
contracts and scripts using their compiled artifacts.

It works with untyped NamedVals, generated bindings build typed APIs on top
of it using generic TestMethod and CallMethod functions along with decoders
from the unwrap package. Contract state is never cached, every FetchState or
CallMethod goes to the node.
*/
package contract

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/nspcc-dev/alephium-go/pkg/compiler"
	"github.com/nspcc-dev/alephium-go/pkg/encoding/address"
	"github.com/nspcc-dev/alephium-go/pkg/noderpc"
	"github.com/nspcc-dev/alephium-go/pkg/smartcontract"
	"github.com/nspcc-dev/alephium-go/pkg/smartcontract/abi"
	"github.com/nspcc-dev/alephium-go/pkg/smartcontract/artifact"
)

// DefaultAttoAlphAmount is the amount of ALPH (in atto units) contracts get
// in simulations and state snapshots if no asset is specified, it's 1 ALPH.
const DefaultAttoAlphAmount = "1000000000000000000"

var (
	// ErrUnknownMethod is returned for method names that are not present in
	// the contract artifact.
	ErrUnknownMethod = errors.New("unknown method")
	// ErrPrivateMethod is returned when a private method is used where only
	// public ones are allowed.
	ErrPrivateMethod = errors.New("method is private")
	// ErrPublicMethod is returned by TestPrivateMethod for public methods.
	ErrPublicMethod = errors.New("method is public")
	// ErrUnknownContract is returned when some contract in the node response
	// can't be matched with any known artifact.
	ErrUnknownContract = errors.New("unknown contract")
)

// Contract is a compiled contract ready to be simulated, called or deployed.
// It's immutable and can be shared.
type Contract struct {
	artifact *artifact.Contract
}

// FromArtifact creates a Contract from the artifact after validating it.
func FromArtifact(a *artifact.Contract) (*Contract, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &Contract{artifact: a}, nil
}

// FromJSON creates a Contract from the JSON artifact.
func FromJSON(data []byte) (*Contract, error) {
	a, err := artifact.LoadContract(data)
	if err != nil {
		return nil, err
	}
	return &Contract{artifact: a}, nil
}

// FromFile creates a Contract from the JSON artifact file.
func FromFile(path string) (*Contract, error) {
	a, err := artifact.ReadContractFile(path)
	if err != nil {
		return nil, err
	}
	return &Contract{artifact: a}, nil
}

// FromSource compiles the contract at path (relative to the compiler source
// directory) and creates a Contract from the result.
func FromSource(ctx context.Context, c *compiler.Compiler, path string) (*Contract, error) {
	a, err := c.CompileContract(ctx, path)
	if err != nil {
		return nil, err
	}
	return &Contract{artifact: a}, nil
}

// Artifact returns the contract artifact, it must not be modified.
func (c *Contract) Artifact() *artifact.Contract {
	return c.artifact
}

// Name returns the contract name.
func (c *Contract) Name() string {
	return c.artifact.Name
}

// CodeHash returns the hex-encoded contract code hash.
func (c *Contract) CodeHash() string {
	return c.artifact.CodeHash
}

// Bytecode returns the hex-encoded contract bytecode.
func (c *Contract) Bytecode() string {
	return c.artifact.Bytecode
}

// FieldsSig returns the signature of contract fields.
func (c *Contract) FieldsSig() abi.FieldsSig {
	return c.artifact.FieldsSig
}

// Function returns the signature and the index of the method.
func (c *Contract) Function(method string) (*abi.FunctionSig, int, error) {
	fn, idx, ok := c.artifact.Function(method)
	if !ok {
		return nil, -1, fmt.Errorf("%w: %s.%s", ErrUnknownMethod, c.artifact.Name, method)
	}
	return fn, idx, nil
}

// MethodIndex returns the index of the method.
func (c *Contract) MethodIndex(method string) (int, error) {
	_, idx, err := c.Function(method)
	return idx, err
}

// Event returns the signature of the event with the given index.
func (c *Contract) Event(index int) (*abi.EventSig, bool) {
	if index < 0 || index >= len(c.artifact.EventsSig) {
		return nil, false
	}
	return &c.artifact.EventsSig[index], true
}

// EventIndex returns the index of the event with the given name or -1.
func (c *Contract) EventIndex(name string) int {
	return abi.EventIndex(c.artifact.EventsSig, name)
}

// EncodeFields returns node values of the contract fields ordered by the
// fields signature.
func (c *Contract) EncodeFields(fields smartcontract.NamedVals) ([]noderpc.Val, error) {
	sig := c.artifact.FieldsSig
	return smartcontract.ToVals(sig.Names, sig.Types, fields)
}

// DecodeFields decodes node values of contract fields.
func (c *Contract) DecodeFields(vals []noderpc.Val) (smartcontract.NamedVals, error) {
	sig := c.artifact.FieldsSig
	return smartcontract.FromVals(sig.Names, sig.Types, vals)
}

// DeployBytecode returns the contract bytecode with encoded initial fields
// as it's used in deployment transactions.
func (c *Contract) DeployBytecode(fields smartcontract.NamedVals) (string, error) {
	return smartcontract.DeployBytecode(c.artifact.Bytecode, c.artifact.FieldsSig, fields)
}

// ToState creates a state snapshot of the contract that can be used as an
// existing contract in simulations. A random contract address of group 0 is
// generated if addr is empty. Asset defaults to 1 ALPH.
func (c *Contract) ToState(fields smartcontract.NamedVals, asset *noderpc.Asset, addr string) (*ContractState, error) {
	if _, err := c.EncodeFields(fields); err != nil {
		return nil, err
	}
	if addr == "" {
		var err error
		addr, err = RandomAddress(0)
		if err != nil {
			return nil, err
		}
	}
	id, err := address.ContractIDHex(addr)
	if err != nil {
		return nil, err
	}
	st := &ContractState{
		Address:    addr,
		ContractID: id,
		Bytecode:   c.artifact.Bytecode,
		CodeHash:   c.artifact.CodeHash,
		Fields:     fields,
		Asset:      defaultAsset(asset),
		contract:   c,
	}
	return st, nil
}

// RandomAddress returns a random contract address of the given group.
func RandomAddress(group int) (string, error) {
	id := make([]byte, address.HashLen)
	if _, err := rand.Read(id); err != nil {
		return "", err
	}
	id[len(id)-1] = byte(group)
	return address.FromContractID(id), nil
}

// AddressFromID converts a hex contract id into an address.
func AddressFromID(id string) (string, error) {
	return address.FromContractIDHex(id)
}

func defaultAsset(a *noderpc.Asset) noderpc.Asset {
	if a == nil {
		return noderpc.Asset{AttoAlphAmount: DefaultAttoAlphAmount}
	}
	return *a
}

func idOf(addr string) string {
	id, err := address.ContractID(addr)
	if err != nil {
		return ""
	}
	return hex.EncodeToString(id)
}
