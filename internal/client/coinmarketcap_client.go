package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"solana_portfolio/internal/entity"
	"solana_portfolio/internal/infrastructure/httpclient"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

const (
	cmcQuotesLatestPath = "/v2/cryptocurrency/quotes/latest"
	cmcAPIKeyHeader     = "X-CMC_PRO_API_KEY"
)

// coinMarketCapClientImpl is the implementation of httpclient.CoinMarketCapClient.
type coinMarketCapClientImpl struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	logger  *zap.Logger
}

// NewCoinMarketCapClient creates a new instance of CoinMarketCapClient.
func NewCoinMarketCapClient(baseURL string, timeout time.Duration, logger *zap.Logger) httpclient.CoinMarketCapClient {
	return &coinMarketCapClientImpl{
		client: &fasthttp.Client{
			Name:         "solana_portfolio",
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		logger:  logger.Named("CoinMarketCapClient"),
	}
}

// GetLatestPrice implements the httpclient.CoinMarketCapClient interface.
func (c *coinMarketCapClientImpl) GetLatestPrice(ctx context.Context, apiKey, symbol, convert string) (float64, error) {
	if apiKey == "" {
		return 0, fmt.Errorf("apiKey cannot be empty")
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(c.baseURL + cmcQuotesLatestPath)
	args := req.URI().QueryArgs()
	args.Add("symbol", symbol)
	args.Add("convert", convert)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(cmcAPIKeyHeader, apiKey)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else {
		err = c.client.DoTimeout(req, resp, c.timeout)
	}
	if err != nil {
		c.logger.Error("Failed to execute request to CoinMarketCap", zap.String("symbol", symbol), zap.Error(err))
		return 0, fmt.Errorf("failed to execute request to CoinMarketCap: %w", err)
	}

	rawBody := resp.Body()
	var out entity.CMCQuotesResponse
	if err := json.Unmarshal(rawBody, &out); err != nil {
		if resp.StatusCode() != fasthttp.StatusOK {
			return 0, fmt.Errorf("CoinMarketCap request failed with status %d: %s", resp.StatusCode(), string(rawBody))
		}
		return 0, fmt.Errorf("failed to unmarshal CoinMarketCap response: %w", err)
	}
	if resp.StatusCode() != fasthttp.StatusOK || out.Status.ErrorCode != 0 {
		c.logger.Error("CoinMarketCap request failed",
			zap.String("symbol", symbol),
			zap.Int("statusCode", resp.StatusCode()),
			zap.Int("errorCode", out.Status.ErrorCode),
			zap.String("errorMessage", out.Status.ErrorMessage),
		)
		return 0, fmt.Errorf("CoinMarketCap request failed with status %d (code %d): %s",
			resp.StatusCode(), out.Status.ErrorCode, out.Status.ErrorMessage)
	}

	currencies := out.Data[symbol]
	if len(currencies) == 0 {
		return 0, fmt.Errorf("CoinMarketCap returned no data for %s", symbol)
	}
	quote, ok := currencies[0].Quote[convert]
	if !ok {
		return 0, fmt.Errorf("CoinMarketCap returned no %s quote for %s", convert, symbol)
	}
	if quote.Price <= 0 {
		return 0, fmt.Errorf("CoinMarketCap returned non-positive price %v for %s", quote.Price, symbol)
	}

	c.logger.Debug("Received price from CoinMarketCap",
		zap.String("symbol", symbol),
		zap.String("convert", convert),
		zap.Float64("price", quote.Price))
	return quote.Price, nil
}
