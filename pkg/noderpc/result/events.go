package result

import "github.com/nspcc-dev/alephium-go/pkg/noderpc"

type (
	// ContractEvent is an event stored by the node.
	ContractEvent struct {
		BlockHash  string        `json:"blockHash"`
		TxID       string        `json:"txId"`
		EventIndex int           `json:"eventIndex"`
		Fields     []noderpc.Val `json:"fields"`
	}

	// ContractEvents is a page of contract events. NextStart is the counter
	// value to continue from.
	ContractEvents struct {
		Events    []ContractEvent `json:"events"`
		NextStart int             `json:"nextStart"`
	}

	// BlockNotify is a block notification delivered via websocket.
	BlockNotify struct {
		Hash      string `json:"hash"`
		Timestamp int64  `json:"timestamp"`
		ChainFrom int    `json:"chainFrom"`
		ChainTo   int    `json:"chainTo"`
		Height    int    `json:"height"`
	}
)
