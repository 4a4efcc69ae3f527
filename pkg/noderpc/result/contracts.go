package result

import (
	"github.com/nspcc-dev/alephium-go/pkg/noderpc"
	"github.com/nspcc-dev/alephium-go/pkg/smartcontract/abi"
)

// Call result types reported by the node.
const (
	CallContractSucceeded = "CallContractSucceeded"
	CallContractFailed    = "CallContractFailed"
)

type (
	// CompileContract is the compiled contract along with its interface.
	CompileContract struct {
		Version            string            `json:"version"`
		Name               string            `json:"name"`
		Bytecode           string            `json:"bytecode"`
		BytecodeDebugPatch string            `json:"bytecodeDebugPatch,omitempty"`
		CodeHash           string            `json:"codeHash"`
		CodeHashDebug      string            `json:"codeHashDebug,omitempty"`
		Fields             abi.FieldsSig     `json:"fields"`
		Functions          []abi.FunctionSig `json:"functions"`
		Events             []abi.EventSig    `json:"events"`
		Warnings           []string          `json:"warnings,omitempty"`
	}

	// CompileScript is the compiled script template along with its
	// interface.
	CompileScript struct {
		Version            string            `json:"version"`
		Name               string            `json:"name"`
		BytecodeTemplate   string            `json:"bytecodeTemplate"`
		BytecodeDebugPatch string            `json:"bytecodeDebugPatch,omitempty"`
		Fields             abi.FieldsSig     `json:"fields"`
		Functions          []abi.FunctionSig `json:"functions"`
		Warnings           []string          `json:"warnings,omitempty"`
	}

	// Output is a transaction output produced by a simulated execution.
	Output struct {
		Type           string          `json:"type"`
		Hint           int             `json:"hint,omitempty"`
		Key            string          `json:"key,omitempty"`
		Address        string          `json:"address"`
		AttoAlphAmount string          `json:"attoAlphAmount"`
		Tokens         []noderpc.Token `json:"tokens,omitempty"`
	}

	// ContractEventByTxID is an event emitted during a simulated or a read
	// call.
	ContractEventByTxID struct {
		BlockHash       string        `json:"blockHash,omitempty"`
		ContractAddress string        `json:"contractAddress"`
		EventIndex      int           `json:"eventIndex"`
		Fields          []noderpc.Val `json:"fields"`
	}

	// TestContract is the result of a contract method simulation.
	TestContract struct {
		Address    string                  `json:"address"`
		ContractID string                  `json:"contractId"`
		Returns    []noderpc.Val           `json:"returns"`
		GasUsed    int                     `json:"gasUsed"`
		Contracts  []noderpc.ContractState `json:"contracts"`
		TxInputs   []string                `json:"txInputs"`
		TxOutputs  []Output                `json:"txOutputs"`
		Events     []ContractEventByTxID   `json:"events"`
	}

	// CallContract is the result of a read call. Type is either
	// CallContractSucceeded or CallContractFailed (Error is set then), older
	// nodes omit it for successful calls.
	CallContract struct {
		Type      string                  `json:"type,omitempty"`
		Error     string                  `json:"error,omitempty"`
		Returns   []noderpc.Val           `json:"returns"`
		GasUsed   int                     `json:"gasUsed"`
		Contracts []noderpc.ContractState `json:"contracts"`
		TxInputs  []string                `json:"txInputs"`
		TxOutputs []Output                `json:"txOutputs"`
		Events    []ContractEventByTxID   `json:"events"`
	}

	// MultipleCallContract holds results of a batched call in request order.
	MultipleCallContract struct {
		Results []CallContract `json:"results"`
	}
)

// Failed returns true if the node reported a failed call.
func (c *CallContract) Failed() bool {
	return c.Type == CallContractFailed
}
