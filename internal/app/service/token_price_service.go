package service

import (
	"context"
	"fmt"
	"time"

	"solana_portfolio/internal/app/port"
	"solana_portfolio/internal/infrastructure/configloader"
	"solana_portfolio/internal/infrastructure/httpclient"
	"solana_portfolio/internal/pkg/metrics"
	"solana_portfolio/internal/pkg/utils"

	"github.com/patrickmn/go-cache"
)

// spotPriceServiceImpl implements port.PriceProvider on top of CoinMarketCap.
type spotPriceServiceImpl struct {
	cmcClient httpclient.CoinMarketCapClient
	symbol    string
	convert   string
	cache     *cache.Cache // nil when caching is disabled
	logger    port.Logger
}

// NewSpotPriceService creates a new instance of spotPriceServiceImpl.
// A positive priceService.cacheTTLSeconds keeps quotes for that long.
func NewSpotPriceService(
	client httpclient.CoinMarketCapClient,
	cfg *configloader.Config,
	l port.Logger,
) port.PriceProvider {
	s := &spotPriceServiceImpl{
		cmcClient: client,
		symbol:    cfg.CoinMarketCap.Symbol,
		convert:   cfg.CoinMarketCap.Convert,
		logger:    l,
	}
	if ttl := time.Duration(cfg.PriceSvc.CacheTTLSeconds) * time.Second; ttl > 0 {
		s.cache = cache.New(ttl, 2*ttl)
	}
	l.Info("SpotPriceService initialized", "symbol", s.symbol, "convert", s.convert, "cache", s.cache != nil)
	return s
}

// GetSpotPriceUSD implements port.PriceProvider.
func (s *spotPriceServiceImpl) GetSpotPriceUSD(ctx context.Context, apiKey string) (price float64, err error) {
	pair := s.symbol + "/" + s.convert
	// Cached per credential.
	key := pair + "/" + utils.KeyFingerprint(apiKey)
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			s.logger.Debug("Using cached spot price", "pair", pair, "price", cached)
			return cached.(float64), nil
		}
	}

	start := time.Now()
	defer func() { metrics.ObserveFetch(priceKind, start, err) }()

	price, err = s.cmcClient.GetLatestPrice(ctx, apiKey, s.symbol, s.convert)
	if err != nil {
		return 0, fmt.Errorf("spot price %s: %w", pair, err)
	}
	if s.cache != nil {
		s.cache.SetDefault(key, price)
	}
	s.logger.Debug("Fetched spot price", "pair", pair, "price", price)
	return price, nil
}
