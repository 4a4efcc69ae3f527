/*
Package noderpc contains a set of types used for REST communication with
full nodes. It defines request bodies, the Val wire value and the Error
returned for non-successful responses. Response bodies live in the result
subpackage.
*/
package noderpc

import (
	"encoding/json"
	"fmt"
)

type (
	// Val is a typed value as it's passed to and returned from the node.
	// Numbers are decimal strings, byte vectors are hex strings, addresses
	// are base58 strings and arrays hold nested Vals.
	Val struct {
		Type  string          `json:"type"`
		Value json.RawMessage `json:"value"`
	}

	// Token is an amount of some token.
	Token struct {
		ID     string `json:"id"`
		Amount string `json:"amount"`
	}

	// Asset is an ALPH amount with optional tokens.
	Asset struct {
		AttoAlphAmount string  `json:"attoAlphAmount"`
		Tokens         []Token `json:"tokens,omitempty"`
	}

	// ContractState is the full state of a contract, it's used both as
	// an input for test calls and as a state snapshot returned by the node.
	ContractState struct {
		Address          string `json:"address"`
		Bytecode         string `json:"bytecode"`
		CodeHash         string `json:"codeHash"`
		InitialStateHash string `json:"initialStateHash,omitempty"`
		Fields           []Val  `json:"fields"`
		Asset            Asset  `json:"asset"`
	}

	// InputAsset is an asset spent by some address during a test call.
	InputAsset struct {
		Address string `json:"address"`
		Asset   Asset  `json:"asset"`
	}

	// Compile is a request body for contract and script compilation.
	Compile struct {
		Code string `json:"code"`
	}

	// TestContract is a request for contract method simulation. The node
	// executes the method against the supplied state without persisting
	// anything.
	TestContract struct {
		Group             *int            `json:"group,omitempty"`
		BlockHash         string          `json:"blockHash,omitempty"`
		TxID              string          `json:"txId,omitempty"`
		Address           string          `json:"address,omitempty"`
		Bytecode          string          `json:"bytecode"`
		InitialFields     []Val           `json:"initialFields"`
		InitialAsset      *Asset          `json:"initialAsset,omitempty"`
		MethodIndex       int             `json:"methodIndex"`
		Args              []Val           `json:"args"`
		ExistingContracts []ContractState `json:"existingContracts,omitempty"`
		InputAssets       []InputAsset    `json:"inputAssets,omitempty"`
	}

	// CallContract is a request for a read call of a deployed contract.
	CallContract struct {
		Group               int          `json:"group"`
		WorldStateBlockHash string       `json:"worldStateBlockHash,omitempty"`
		TxID                string       `json:"txId,omitempty"`
		Address             string       `json:"address"`
		MethodIndex         int          `json:"methodIndex"`
		Args                []Val        `json:"args,omitempty"`
		ExistingContracts   []string     `json:"existingContracts,omitempty"`
		InputAssets         []InputAsset `json:"inputAssets,omitempty"`
	}

	// MultipleCallContract batches several calls into a single request.
	MultipleCallContract struct {
		Calls []CallContract `json:"calls"`
	}

	// BuildDeployContractTx is a request for an unsigned contract deployment
	// transaction.
	BuildDeployContractTx struct {
		FromPublicKey         string  `json:"fromPublicKey"`
		Bytecode              string  `json:"bytecode"`
		InitialAttoAlphAmount string  `json:"initialAttoAlphAmount,omitempty"`
		InitialTokenAmounts   []Token `json:"initialTokenAmounts,omitempty"`
		IssueTokenAmount      string  `json:"issueTokenAmount,omitempty"`
		GasAmount             *int    `json:"gasAmount,omitempty"`
		GasPrice              string  `json:"gasPrice,omitempty"`
	}

	// BuildExecuteScriptTx is a request for an unsigned script execution
	// transaction.
	BuildExecuteScriptTx struct {
		FromPublicKey  string  `json:"fromPublicKey"`
		Bytecode       string  `json:"bytecode"`
		AttoAlphAmount string  `json:"attoAlphAmount,omitempty"`
		Tokens         []Token `json:"tokens,omitempty"`
		GasAmount      *int    `json:"gasAmount,omitempty"`
		GasPrice       string  `json:"gasPrice,omitempty"`
	}

	// SubmitTransaction carries a signed transaction.
	SubmitTransaction struct {
		UnsignedTx string `json:"unsignedTx"`
		Signature  string `json:"signature"`
	}

	// WalletUnlock is a request to unlock a node wallet.
	WalletUnlock struct {
		Password           string `json:"password"`
		MnemonicPassphrase string `json:"mnemonicPassphrase,omitempty"`
	}

	// WalletRestore is a request to restore a node wallet from a mnemonic.
	WalletRestore struct {
		Password           string `json:"password"`
		Mnemonic           string `json:"mnemonic"`
		WalletName         string `json:"walletName"`
		IsMiner            bool   `json:"isMiner,omitempty"`
		MnemonicPassphrase string `json:"mnemonicPassphrase,omitempty"`
	}

	// Sign is a request to sign data with the active address of a node
	// wallet.
	Sign struct {
		Data string `json:"data"`
	}
)

// String implements fmt.Stringer.
func (v Val) String() string {
	return fmt.Sprintf("%s(%s)", v.Type, string(v.Value))
}
