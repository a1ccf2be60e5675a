package httpclient

import (
	"context"

	"solana_portfolio/internal/entity"
)

// HeliusDASClient defines the interface for the Helius Digital Asset Standard API.
type HeliusDASClient interface {
	// GetAssetsByOwner returns the first page of assets owned by ownerAddress.
	GetAssetsByOwner(ctx context.Context, ownerAddress string) (*entity.AssetList, error)
}

// CoinMarketCapClient defines the interface for interacting with the CoinMarketCap API.
type CoinMarketCapClient interface {
	// GetLatestPrice returns the latest price of symbol expressed in convert.
	GetLatestPrice(ctx context.Context, apiKey, symbol, convert string) (float64, error)
}
