package port

import (
	"context"

	"solana_portfolio/internal/domain/entity"
)

// AssetFetcher retrieves raw holdings for one address from the RPC provider.
// Implementations return lamport amounts; conversion to SOL happens in the normalizer.
type AssetFetcher interface {
	// GetTokens returns the first page of eligible (fungible, priced) token holdings.
	GetTokens(ctx context.Context, address string) (entity.TokenPage, error)

	// GetBalance returns the unstaked native balance in lamports.
	GetBalance(ctx context.Context, address string) (uint64, error)

	// GetStake returns the delegated stake accounts whose withdraw authority is address.
	GetStake(ctx context.Context, address string) ([]entity.StakeEntry, error)
}

// AssetFetcherFactory builds an AssetFetcher bound to a caller-supplied API key.
type AssetFetcherFactory interface {
	ForAPIKey(apiKey string) (AssetFetcher, error)
}

// NetworkDefinitionProvider defines the interface for providing cluster definitions.
type NetworkDefinitionProvider interface {
	GetAllNetworkDefinitions() []entity.NetworkDefinition

	// GetNetworkDefinitionByName returns the definition and true if found.
	GetNetworkDefinitionByName(nameOrIdentifier string) (entity.NetworkDefinition, bool)
}
