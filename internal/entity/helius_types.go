package entity

// Fungible DAS interfaces eligible for valuation.
const (
	InterfaceFungibleToken = "FungibleToken"
	InterfaceFungibleAsset = "FungibleAsset"
)

// MaxAssetsPageLimit is the largest page DAS getAssetsByOwner serves.
const MaxAssetsPageLimit = 1000

// RPCRequest is a JSON-RPC 2.0 request envelope.
type RPCRequest struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      string      `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
}

// RPCError is the error member of a JSON-RPC response.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// AssetsByOwnerParams are the named params of DAS getAssetsByOwner.
type AssetsByOwnerParams struct {
	OwnerAddress   string         `json:"ownerAddress"`
	Page           int            `json:"page"`
	Limit          int            `json:"limit"`
	DisplayOptions DisplayOptions `json:"displayOptions"`
}

// DisplayOptions toggles optional sections of a DAS response.
type DisplayOptions struct {
	ShowFungible bool `json:"showFungible"`
}

// AssetsByOwnerResponse is the full JSON-RPC response of getAssetsByOwner.
type AssetsByOwnerResponse struct {
	JSONRPC string     `json:"jsonrpc"`
	ID      string     `json:"id"`
	Result  *AssetList `json:"result"`
	Error   *RPCError  `json:"error"`
}

// AssetList is one page of DAS assets.
type AssetList struct {
	Total int        `json:"total"`
	Limit int        `json:"limit"`
	Page  int        `json:"page"`
	Items []DASAsset `json:"items"`
}

// DASAsset is a single item of a DAS asset listing. Only the fields used for
// valuation are mapped.
type DASAsset struct {
	Interface string     `json:"interface"`
	ID        string     `json:"id"`
	Content   *Content   `json:"content"`
	TokenInfo *TokenInfo `json:"token_info"` // Pointer to handle missing token info
}

// Content holds the asset metadata.
type Content struct {
	Metadata Metadata `json:"metadata"`
}

// Metadata is the on-chain metadata of an asset.
type Metadata struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// TokenInfo is the fungible token section of a DAS asset.
type TokenInfo struct {
	Symbol    string     `json:"symbol"`
	Balance   float64    `json:"balance"`
	Decimals  int        `json:"decimals"`
	PriceInfo *PriceInfo `json:"price_info"` // Absent for unpriced tokens
}

// PriceInfo is the provider's USD valuation of a holding.
type PriceInfo struct {
	PricePerToken float64 `json:"price_per_token"`
	TotalPrice    float64 `json:"total_price"`
	Currency      string  `json:"currency"`
}

// Eligible reports whether the asset is a fungible kind carrying price info.
func (a DASAsset) Eligible() bool {
	if a.Interface != InterfaceFungibleToken && a.Interface != InterfaceFungibleAsset {
		return false
	}
	return a.TokenInfo != nil && a.TokenInfo.PriceInfo != nil
}

// DisplaySymbol picks the ticker to show, falling back to metadata and then the id.
func (a DASAsset) DisplaySymbol() string {
	if a.TokenInfo != nil && a.TokenInfo.Symbol != "" {
		return a.TokenInfo.Symbol
	}
	if a.Content != nil && a.Content.Metadata.Symbol != "" {
		return a.Content.Metadata.Symbol
	}
	return a.ID
}
