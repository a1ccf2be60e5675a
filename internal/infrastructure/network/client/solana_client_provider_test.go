package client

import (
	"testing"

	"solana_portfolio/internal/infrastructure/configloader"
	networkdefinition "solana_portfolio/internal/infrastructure/network/definition"
	"solana_portfolio/internal/pkg/logger"

	"go.uber.org/zap"
)

func testProviderConfig() *configloader.Config {
	cfg := &configloader.Config{}
	cfg.Helius.RequestTimeoutMillis = 1000
	cfg.Helius.PageLimit = 1000
	cfg.RpcClient.ClientIdleMinutes = 5
	cfg.RpcClient.RateLimit = 5
	cfg.RpcClient.BurstLimit = 1
	return cfg
}

func TestSolanaClientProvider_CachesPerAPIKey(t *testing.T) {
	p := NewSolanaClientProvider(testProviderConfig(), networkdefinition.Devnet, zap.NewNop(), logger.NewNop())

	a1, err := p.ForAPIKey("key-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a2, _ := p.ForAPIKey("key-a")
	b, _ := p.ForAPIKey("key-b")

	if a1 != a2 {
		t.Error("expected the cached fetcher for the same key")
	}
	if a1 == b {
		t.Error("expected distinct fetchers for distinct keys")
	}
}

func TestSolanaClientProvider_RequiresAPIKey(t *testing.T) {
	p := NewSolanaClientProvider(testProviderConfig(), networkdefinition.MainnetBeta, zap.NewNop(), logger.NewNop())
	if _, err := p.ForAPIKey(""); err == nil {
		t.Fatal("expected an error for an empty key")
	}
}
