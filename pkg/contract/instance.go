package contract

import (
	"context"

	"github.com/nspcc-dev/alephium-go/pkg/encoding/address"
	"github.com/nspcc-dev/alephium-go/pkg/rpcclient/unwrap"
)

// Instance is a contract deployed at some address. It holds no state,
// creating it doesn't involve any network I/O.
type Instance struct {
	Contract *Contract
	Address  string
}

// At returns an Instance of c at addr.
func (c *Contract) At(addr string) *Instance {
	return &Instance{Contract: c, Address: addr}
}

// ContractID returns the hex contract id derived from the address.
func (i *Instance) ContractID() (string, error) {
	return address.ContractIDHex(i.Address)
}

// Group returns the group of the contract.
func (i *Instance) Group(groups int) (int, error) {
	return address.Group(i.Address, groups)
}

// FetchState gets the current contract state from the node.
func (i *Instance) FetchState(ctx context.Context, r StateReader) (*ContractState, error) {
	return FetchState(ctx, r, i.Contract, i.Address)
}

// Call calls the method, returns are decoded according to their type tags.
func (i *Instance) Call(ctx context.Context, cl Caller, method string, p CallParams) (*CallResult[[]any], error) {
	return CallMethod(ctx, cl, i.Contract, i.Address, method, p, unwrap.Values)
}

// MultiCall calls several methods in a single request.
func (i *Instance) MultiCall(ctx context.Context, cl Caller, calls map[string]CallParams) (map[string]*CallResult[[]any], error) {
	return MultiCall(ctx, cl, i.Contract, i.Address, calls)
}
