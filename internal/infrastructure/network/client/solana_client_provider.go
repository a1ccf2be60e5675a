package client

import (
	"fmt"
	"sync"
	"time"

	"solana_portfolio/internal/app/port"
	"solana_portfolio/internal/domain/entity"
	heliusclient "solana_portfolio/internal/client"
	"solana_portfolio/internal/infrastructure/configloader"
	"solana_portfolio/internal/pkg/utils"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/patrickmn/go-cache"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// solanaClientProvider implements port.AssetFetcherFactory.
// Fetchers are cached per API key and dropped after sitting idle.
type solanaClientProvider struct {
	netDef     entity.NetworkDefinition
	clients    *cache.Cache
	mu         sync.Mutex
	idle       time.Duration
	httpClient *fasthttp.Client
	timeout    time.Duration
	pageLimit  int
	rateLimit  float64
	burst      int
	zapLogger  *zap.Logger
	logger     port.Logger
}

// NewSolanaClientProvider creates a new provider for the given cluster.
func NewSolanaClientProvider(
	cfg *configloader.Config,
	netDef entity.NetworkDefinition,
	zapLogger *zap.Logger,
	log port.Logger,
) port.AssetFetcherFactory {
	idle := time.Duration(cfg.RpcClient.ClientIdleMinutes) * time.Minute
	timeout := time.Duration(cfg.Helius.RequestTimeoutMillis) * time.Millisecond
	return &solanaClientProvider{
		netDef:  netDef,
		clients: cache.New(idle, idle),
		idle:    idle,
		httpClient: &fasthttp.Client{
			Name:         "solana_portfolio",
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		timeout:   timeout,
		pageLimit: cfg.Helius.PageLimit,
		rateLimit: cfg.RpcClient.RateLimit,
		burst:     cfg.RpcClient.BurstLimit,
		zapLogger: zapLogger,
		logger:    log,
	}
}

// ForAPIKey returns a fetcher authenticated with apiKey, reusing a cached one when possible.
func (p *solanaClientProvider) ForAPIKey(apiKey string) (port.AssetFetcher, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("RPC API key is required")
	}
	key := utils.KeyFingerprint(apiKey)

	p.mu.Lock()
	defer p.mu.Unlock()

	if cached, ok := p.clients.Get(key); ok {
		p.clients.Set(key, cached, p.idle)
		p.logger.Debug("Returning cached Solana client", "cluster", p.netDef.Identifier)
		return cached.(port.AssetFetcher), nil
	}

	rpcURL := p.netDef.RPCURL(apiKey)
	var limiter *rate.Limiter
	if p.rateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(p.rateLimit), p.burst)
	}
	das := heliusclient.NewHeliusClient(p.httpClient, rpcURL, p.timeout, limiter, p.zapLogger, p.pageLimit)
	fetcher := NewSolanaClient(das, rpc.New(rpcURL), limiter, p.timeout, p.logger)

	p.clients.Set(key, fetcher, p.idle)
	p.logger.Info("Created new Solana client", "cluster", p.netDef.Identifier, "cached_clients", p.clients.ItemCount())
	return fetcher, nil
}
