package port

import "context"

// PriceProvider quotes the native currency in USD.
type PriceProvider interface {
	GetSpotPriceUSD(ctx context.Context, apiKey string) (float64, error)
}
