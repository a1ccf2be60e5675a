package client

import (
	"context"
	"fmt"
	"time"

	"solana_portfolio/internal/app/port"
	"solana_portfolio/internal/domain/entity"
	wire "solana_portfolio/internal/entity"
	"solana_portfolio/internal/infrastructure/httpclient"
	"solana_portfolio/internal/pkg/metrics"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	jsoniter "github.com/json-iterator/go"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// stakeWithdrawerOffset is the byte offset of the withdraw authority in a stake account.
	stakeWithdrawerOffset = 44
	stakeAccountSize      = 200
)

// SolanaClient implements port.AssetFetcher against one authenticated Helius endpoint:
// DAS for fungible tokens, plain JSON-RPC for balances and stake accounts.
type SolanaClient struct {
	das            httpclient.HeliusDASClient
	rpcClient      *rpc.Client
	limiter        *rate.Limiter
	rpcCallTimeout time.Duration
	logger         port.Logger
}

// NewSolanaClient creates a new fetcher. limiter may be nil.
func NewSolanaClient(
	das httpclient.HeliusDASClient,
	rpcClient *rpc.Client,
	limiter *rate.Limiter,
	rpcCallTimeout time.Duration,
	log port.Logger,
) *SolanaClient {
	return &SolanaClient{
		das:            das,
		rpcClient:      rpcClient,
		limiter:        limiter,
		rpcCallTimeout: rpcCallTimeout,
		logger:         log.With("component", "SolanaClient"),
	}
}

// GetTokens returns the eligible fungible holdings of address.
func (c *SolanaClient) GetTokens(ctx context.Context, address string) (page entity.TokenPage, err error) {
	start := time.Now()
	defer func() { metrics.ObserveFetch(entity.TokenAsset.String(), start, err) }()

	list, err := c.das.GetAssetsByOwner(ctx, address)
	if err != nil {
		return entity.TokenPage{}, err
	}

	page = entity.TokenPage{
		Address: address,
		Items:   make([]entity.TokenHolding, 0, len(list.Items)),
		Total:   list.Total,
		Limit:   list.Limit,
		Page:    list.Page,
	}
	for _, item := range list.Items {
		if !item.Eligible() {
			continue
		}
		if item.ID == "" {
			metrics.MalformedItems.WithLabelValues(entity.TokenAsset.String()).Inc()
			c.logger.Warn("Skipping priced asset without id", "address", address)
			continue
		}
		page.Items = append(page.Items, entity.TokenHolding{
			ID:            item.ID,
			Interface:     item.Interface,
			Symbol:        item.DisplaySymbol(),
			TotalPriceUSD: item.TokenInfo.PriceInfo.TotalPrice,
		})
	}
	c.logger.Debug("Fetched token holdings", "address", address, "eligible", len(page.Items), "listed", len(list.Items), "total", list.Total)
	return page, nil
}

// GetBalance returns the native balance of address in lamports.
func (c *SolanaClient) GetBalance(ctx context.Context, address string) (lamports uint64, err error) {
	start := time.Now()
	defer func() { metrics.ObserveFetch(entity.NativeBalanceAsset.String(), start, err) }()

	owner, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return 0, fmt.Errorf("invalid address %s: %w", address, err)
	}
	callCtx, cancel, err := c.prepareCall(ctx)
	if err != nil {
		return 0, err
	}
	defer cancel()

	out, err := c.rpcClient.GetBalance(callCtx, owner, rpc.CommitmentConfirmed)
	if err != nil {
		return 0, fmt.Errorf("getBalance for %s: %w", address, err)
	}
	if out == nil {
		return 0, fmt.Errorf("getBalance for %s returned no result", address)
	}
	return out.Value, nil
}

// GetStake returns the delegated stake accounts withdrawable by address.
// Accounts without a delegation are omitted.
func (c *SolanaClient) GetStake(ctx context.Context, address string) (entries []entity.StakeEntry, err error) {
	start := time.Now()
	defer func() { metrics.ObserveFetch(entity.StakedBalanceAsset.String(), start, err) }()

	owner, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return nil, fmt.Errorf("invalid address %s: %w", address, err)
	}
	callCtx, cancel, err := c.prepareCall(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	accounts, err := c.rpcClient.GetProgramAccountsWithOpts(callCtx, solana.StakeProgramID, &rpc.GetProgramAccountsOpts{
		Commitment: rpc.CommitmentConfirmed,
		Encoding:   solana.EncodingJSONParsed,
		Filters: []rpc.RPCFilter{
			{DataSize: stakeAccountSize},
			{Memcmp: &rpc.RPCFilterMemcmp{Offset: stakeWithdrawerOffset, Bytes: solana.Base58(owner.Bytes())}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("getProgramAccounts(stake) for %s: %w", address, err)
	}

	entries = make([]entity.StakeEntry, 0, len(accounts))
	for _, keyed := range accounts {
		if keyed == nil || keyed.Account == nil || keyed.Account.Data == nil {
			metrics.MalformedItems.WithLabelValues(entity.StakedBalanceAsset.String()).Inc()
			continue
		}
		raw := keyed.Account.Data.GetRawJSON()
		if len(raw) == 0 {
			metrics.MalformedItems.WithLabelValues(entity.StakedBalanceAsset.String()).Inc()
			c.logger.Warn("Stake account returned without parsed data", "address", address, "account", keyed.Pubkey.String())
			continue
		}
		var parsed wire.ParsedStakeAccount
		if err := json.Unmarshal(raw, &parsed); err != nil {
			metrics.MalformedItems.WithLabelValues(entity.StakedBalanceAsset.String()).Inc()
			c.logger.Warn("Failed to decode stake account", "address", address, "account", keyed.Pubkey.String(), "error", err)
			continue
		}
		if parsed.Parsed.Info.Stake == nil {
			continue
		}
		entries = append(entries, entity.StakeEntry{
			Pubkey:            keyed.Pubkey.String(),
			DelegatedLamports: parsed.Parsed.Info.Stake.Delegation.Stake,
		})
	}
	c.logger.Debug("Fetched stake accounts", "address", address, "accounts", len(accounts), "delegated", len(entries))
	return entries, nil
}

func (c *SolanaClient) prepareCall(ctx context.Context) (context.Context, context.CancelFunc, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, nil, fmt.Errorf("rate limiter: %w", err)
		}
	}
	if c.rpcCallTimeout <= 0 {
		callCtx, cancel := context.WithCancel(ctx)
		return callCtx, cancel, nil
	}
	callCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	return callCtx, cancel, nil
}
