package entity

import "strings"

// NetworkDefinition describes a Solana cluster reachable through the RPC provider.
// This structure is defined at the domain level to be used across application and infrastructure layers.
type NetworkDefinition struct {
	Name             string `json:"name" yaml:"name"`
	Identifier       string `json:"identifier" yaml:"identifier"` // e.g. "mainnet-beta", "devnet"
	NativeSymbol     string `json:"nativeSymbol" yaml:"nativeSymbol"`
	Decimals         int32  `json:"decimals" yaml:"decimals"`
	RPCURLTemplate   string `json:"-" yaml:"rpcUrlTemplate"` // API key is appended; may embed credentials
	BlockExplorerURL string `json:"blockExplorerUrl,omitempty" yaml:"blockExplorerUrl,omitempty"`
}

// RPCURL returns the endpoint authenticated with apiKey.
func (n NetworkDefinition) RPCURL(apiKey string) string {
	if strings.HasSuffix(n.RPCURLTemplate, "=") {
		return n.RPCURLTemplate + apiKey
	}
	return n.RPCURLTemplate
}
