package contract

import (
	"context"

	"github.com/nspcc-dev/alephium-go/pkg/compiler"
	"github.com/nspcc-dev/alephium-go/pkg/noderpc"
	"github.com/nspcc-dev/alephium-go/pkg/smartcontract"
	"github.com/nspcc-dev/alephium-go/pkg/smartcontract/artifact"
)

// Script is a compiled transaction script.
type Script struct {
	artifact *artifact.Script
}

// ScriptFromArtifact creates a Script from the artifact after validating it.
func ScriptFromArtifact(a *artifact.Script) (*Script, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &Script{artifact: a}, nil
}

// ScriptFromJSON creates a Script from the JSON artifact.
func ScriptFromJSON(data []byte) (*Script, error) {
	a, err := artifact.LoadScript(data)
	if err != nil {
		return nil, err
	}
	return &Script{artifact: a}, nil
}

// ScriptFromFile creates a Script from the JSON artifact file.
func ScriptFromFile(path string) (*Script, error) {
	a, err := artifact.ReadScriptFile(path)
	if err != nil {
		return nil, err
	}
	return &Script{artifact: a}, nil
}

// ScriptFromSource compiles the script at path and creates a Script from
// the result.
func ScriptFromSource(ctx context.Context, c *compiler.Compiler, path string) (*Script, error) {
	a, err := c.CompileScript(ctx, path)
	if err != nil {
		return nil, err
	}
	return &Script{artifact: a}, nil
}

// Artifact returns the script artifact, it must not be modified.
func (s *Script) Artifact() *artifact.Script {
	return s.artifact
}

// Name returns the script name.
func (s *Script) Name() string {
	return s.artifact.Name
}

// Bytecode returns the script bytecode with fields substituted.
func (s *Script) Bytecode(fields smartcontract.NamedVals) (string, error) {
	return smartcontract.ScriptBytecode(s.artifact.BytecodeTemplate, s.artifact.FieldsSig, fields)
}

// ExecuteScriptParams contains script execution parameters.
type ExecuteScriptParams struct {
	InitialFields smartcontract.NamedVals
	// AttoAlphAmount and Tokens are approved for the script.
	AttoAlphAmount string
	Tokens         []noderpc.Token
	GasAmount      *int
	GasPrice       string
}

// ExecuteScriptTx is an unsigned script execution transaction.
type ExecuteScriptTx struct {
	FromGroup  int
	ToGroup    int
	UnsignedTx string
	TxID       string
	GasAmount  int
	GasPrice   string
}

// TransactionForDeployment builds an unsigned transaction executing the
// script with the given fields.
func (s *Script) TransactionForDeployment(ctx context.Context, d Deployer, p ExecuteScriptParams) (*ExecuteScriptTx, error) {
	bytecode, err := s.Bytecode(p.InitialFields)
	if err != nil {
		return nil, err
	}
	res, err := d.MakeExecuteScript(ctx, &noderpc.BuildExecuteScriptTx{
		Bytecode:       bytecode,
		AttoAlphAmount: p.AttoAlphAmount,
		Tokens:         p.Tokens,
		GasAmount:      p.GasAmount,
		GasPrice:       p.GasPrice,
	})
	if err != nil {
		return nil, err
	}
	return &ExecuteScriptTx{
		FromGroup:  res.FromGroup,
		ToGroup:    res.ToGroup,
		UnsignedTx: res.UnsignedTx,
		TxID:       res.TxID,
		GasAmount:  res.GasAmount,
		GasPrice:   res.GasPrice,
	}, nil
}
