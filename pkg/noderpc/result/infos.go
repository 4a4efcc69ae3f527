/*
Package result contains bodies of node responses.
*/
package result

type (
	// ChainParams holds network parameters of the node.
	ChainParams struct {
		NetworkID             int `json:"networkId"`
		NumZerosAtLeastInHash int `json:"numZerosAtLeastInHash"`
		GroupNumPerBroker     int `json:"groupNumPerBroker"`
		Groups                int `json:"groups"`
	}

	// Version is the node software version.
	Version struct {
		Version string `json:"version"`
	}
)
