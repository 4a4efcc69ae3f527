package result

// Transaction status types.
const (
	TxConfirmed = "Confirmed"
	TxMemPooled = "MemPooled"
	TxNotFound  = "TxNotFound"
)

type (
	// BuildDeployContractTx is an unsigned contract deployment transaction.
	BuildDeployContractTx struct {
		FromGroup       int    `json:"fromGroup"`
		ToGroup         int    `json:"toGroup"`
		UnsignedTx      string `json:"unsignedTx"`
		GasAmount       int    `json:"gasAmount"`
		GasPrice        string `json:"gasPrice"`
		TxID            string `json:"txId"`
		ContractAddress string `json:"contractAddress"`
	}

	// BuildExecuteScriptTx is an unsigned script execution transaction.
	BuildExecuteScriptTx struct {
		FromGroup  int    `json:"fromGroup"`
		ToGroup    int    `json:"toGroup"`
		UnsignedTx string `json:"unsignedTx"`
		GasAmount  int    `json:"gasAmount"`
		GasPrice   string `json:"gasPrice"`
		TxID       string `json:"txId"`
	}

	// SubmitTransaction is the node's answer to a transaction submission.
	SubmitTransaction struct {
		TxID      string `json:"txId"`
		FromGroup int    `json:"fromGroup"`
		ToGroup   int    `json:"toGroup"`
	}

	// TxStatus is the status of a transaction. Only Type is set for
	// MemPooled and TxNotFound.
	TxStatus struct {
		Type                   string `json:"type"`
		BlockHash              string `json:"blockHash,omitempty"`
		TxIndex                int    `json:"txIndex,omitempty"`
		ChainConfirmations     int    `json:"chainConfirmations,omitempty"`
		FromGroupConfirmations int    `json:"fromGroupConfirmations,omitempty"`
		ToGroupConfirmations   int    `json:"toGroupConfirmations,omitempty"`
	}
)

// Confirmed returns true if the transaction is in a block.
func (s *TxStatus) Confirmed() bool {
	return s.Type == TxConfirmed
}
