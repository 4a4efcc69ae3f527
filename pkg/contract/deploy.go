package contract

import (
	"context"

	"github.com/nspcc-dev/alephium-go/pkg/encoding/address"
	"github.com/nspcc-dev/alephium-go/pkg/noderpc"
	"github.com/nspcc-dev/alephium-go/pkg/noderpc/result"
	"github.com/nspcc-dev/alephium-go/pkg/smartcontract"
)

// Deployer builds unsigned transactions on behalf of some signer, actor.Actor
// implements it. FromPublicKey of requests is filled by the deployer.
type Deployer interface {
	MakeDeployContract(ctx context.Context, req *noderpc.BuildDeployContractTx) (*result.BuildDeployContractTx, error)
	MakeExecuteScript(ctx context.Context, req *noderpc.BuildExecuteScriptTx) (*result.BuildExecuteScriptTx, error)
}

// DeployParams contains contract deployment parameters.
type DeployParams struct {
	InitialFields smartcontract.NamedVals
	// InitialAttoAlphAmount is the amount of ALPH the contract gets, the
	// node minimum is used if not set.
	InitialAttoAlphAmount string
	InitialTokenAmounts   []noderpc.Token
	// IssueTokenAmount makes the contract issue its own token.
	IssueTokenAmount string
	GasAmount        *int
	GasPrice         string
}

// DeployTx is an unsigned contract deployment transaction.
type DeployTx struct {
	FromGroup       int
	ToGroup         int
	UnsignedTx      string
	TxID            string
	ContractAddress string
	ContractID      string
	GasAmount       int
	GasPrice        string
}

// TransactionForDeployment builds an unsigned transaction deploying the
// contract with the given initial fields.
func (c *Contract) TransactionForDeployment(ctx context.Context, d Deployer, p DeployParams) (*DeployTx, error) {
	bytecode, err := c.DeployBytecode(p.InitialFields)
	if err != nil {
		return nil, err
	}
	res, err := d.MakeDeployContract(ctx, &noderpc.BuildDeployContractTx{
		Bytecode:              bytecode,
		InitialAttoAlphAmount: p.InitialAttoAlphAmount,
		InitialTokenAmounts:   p.InitialTokenAmounts,
		IssueTokenAmount:      p.IssueTokenAmount,
		GasAmount:             p.GasAmount,
		GasPrice:              p.GasPrice,
	})
	if err != nil {
		return nil, err
	}
	id, err := address.ContractIDHex(res.ContractAddress)
	if err != nil {
		return nil, err
	}
	return &DeployTx{
		FromGroup:       res.FromGroup,
		ToGroup:         res.ToGroup,
		UnsignedTx:      res.UnsignedTx,
		TxID:            res.TxID,
		ContractAddress: res.ContractAddress,
		ContractID:      id,
		GasAmount:       res.GasAmount,
		GasPrice:        res.GasPrice,
	}, nil
}
