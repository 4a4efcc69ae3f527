package result

type (
	// AddressInfo describes a single address of a node wallet.
	AddressInfo struct {
		Address   string `json:"address"`
		PublicKey string `json:"publicKey"`
		Group     int    `json:"group"`
		Path      string `json:"path,omitempty"`
	}

	// WalletAddresses lists addresses of a node wallet.
	WalletAddresses struct {
		ActiveAddress string        `json:"activeAddress"`
		Addresses     []AddressInfo `json:"addresses"`
	}

	// WalletRestore is the node's answer to a wallet restoration.
	WalletRestore struct {
		WalletName string `json:"walletName"`
	}

	// Sign holds a signature produced by a node wallet.
	Sign struct {
		Signature string `json:"signature"`
	}
)

// Active returns the info of the active address if it's in the list.
func (w *WalletAddresses) Active() (AddressInfo, bool) {
	for _, a := range w.Addresses {
		if a.Address == w.ActiveAddress {
			return a, true
		}
	}
	return AddressInfo{}, false
}
