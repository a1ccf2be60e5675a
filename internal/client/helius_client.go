package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"solana_portfolio/internal/entity"
	"solana_portfolio/internal/infrastructure/httpclient"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const methodGetAssetsByOwner = "getAssetsByOwner"

// heliusClientImpl is the implementation of httpclient.HeliusDASClient.
type heliusClientImpl struct {
	client    *fasthttp.Client
	rpcURL    string
	timeout   time.Duration
	limiter   *rate.Limiter
	logger    *zap.Logger
	pageLimit int
}

// NewHeliusClient creates a DAS client for one authenticated endpoint. The fasthttp
// client and limiter may be shared between endpoints; limiter may be nil.
func NewHeliusClient(
	httpClient *fasthttp.Client,
	rpcURL string,
	timeout time.Duration,
	limiter *rate.Limiter,
	logger *zap.Logger,
	pageLimit int,
) httpclient.HeliusDASClient {
	if httpClient == nil {
		httpClient = &fasthttp.Client{}
	}
	if pageLimit <= 0 {
		pageLimit = entity.MaxAssetsPageLimit
	}
	return &heliusClientImpl{
		client:    httpClient,
		rpcURL:    strings.TrimSpace(rpcURL),
		timeout:   timeout,
		limiter:   limiter,
		logger:    logger.Named("HeliusClient"),
		pageLimit: pageLimit,
	}
}

// GetAssetsByOwner implements the httpclient.HeliusDASClient interface.
func (c *heliusClientImpl) GetAssetsByOwner(ctx context.Context, ownerAddress string) (*entity.AssetList, error) {
	if ownerAddress == "" {
		return nil, fmt.Errorf("ownerAddress cannot be empty")
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(entity.RPCRequest{
		JSONRPC: "2.0",
		ID:      "portfolio-" + ownerAddress,
		Method:  methodGetAssetsByOwner,
		Params: entity.AssetsByOwnerParams{
			OwnerAddress:   ownerAddress,
			Page:           1,
			Limit:          c.pageLimit,
			DisplayOptions: entity.DisplayOptions{ShowFungible: true},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s request: %w", methodGetAssetsByOwner, err)
	}

	c.logger.Debug("Requesting assets from Helius DAS", zap.String("owner", ownerAddress), zap.Int("limit", c.pageLimit))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(c.rpcURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentTypeBytes([]byte("application/json"))
	req.SetBodyRaw(payload)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else {
		err = c.client.DoTimeout(req, resp, c.timeout)
	}
	if err != nil {
		c.logger.Error("Failed to execute request to Helius DAS", zap.String("owner", ownerAddress), zap.Error(err))
		return nil, fmt.Errorf("failed to execute %s: %w", methodGetAssetsByOwner, err)
	}

	rawBody := resp.Body()
	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.Error("Helius DAS request failed",
			zap.String("owner", ownerAddress),
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("responseBody", rawBody),
		)
		return nil, fmt.Errorf("%s failed with status %d: %s", methodGetAssetsByOwner, resp.StatusCode(), string(rawBody))
	}

	var out entity.AssetsByOwnerResponse
	if err := json.Unmarshal(rawBody, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s response: %w", methodGetAssetsByOwner, err)
	}
	if out.Error != nil {
		return nil, fmt.Errorf("%s returned error %d: %s", methodGetAssetsByOwner, out.Error.Code, out.Error.Message)
	}
	if out.Result == nil {
		return nil, fmt.Errorf("%s returned no result", methodGetAssetsByOwner)
	}

	c.logger.Debug("Received assets from Helius DAS",
		zap.String("owner", ownerAddress),
		zap.Int("items", len(out.Result.Items)),
		zap.Int("total", out.Result.Total))
	return out.Result, nil
}
