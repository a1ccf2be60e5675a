package port

// WalletProvider defines the interface for loading wallet addresses.
type WalletProvider interface {
	GetWallets() ([]string, error)
}
