package service

import (
	"context"
	"fmt"
	"time"

	"solana_portfolio/internal/app/port"
	"solana_portfolio/internal/domain/entity"
	"solana_portfolio/internal/pkg/metrics"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const priceKind = "price"

// PortfolioServiceImpl implements port.PortfolioService.
type PortfolioServiceImpl struct {
	fetcherFactory        port.AssetFetcherFactory
	priceProvider         port.PriceProvider
	renderer              port.ChartRenderer
	logger                port.Logger
	maxConcurrentRoutines int
	materialityPercent    float64
}

// NewPortfolioService creates a new instance of PortfolioServiceImpl.
// renderer may be nil, in which case no chart spec is attached to results.
func NewPortfolioService(
	ff port.AssetFetcherFactory,
	pp port.PriceProvider,
	renderer port.ChartRenderer,
	l port.Logger,
	maxRoutines int,
	materialityPercent float64,
) *PortfolioServiceImpl {
	if maxRoutines <= 0 {
		maxRoutines = 1
	}
	if materialityPercent < 0 {
		materialityPercent = DefaultMaterialityPercent
	}
	return &PortfolioServiceImpl{
		fetcherFactory:        ff,
		priceProvider:         pp,
		renderer:              renderer,
		logger:                l,
		maxConcurrentRoutines: maxRoutines,
		materialityPercent:    materialityPercent,
	}
}

// fetched holds the raw results of one submission. Slices are indexed like the
// submission's addresses, so concurrent writers never share an element.
type fetched struct {
	pages    []entity.TokenPage
	balances []uint64
	stakes   [][]entity.StakeEntry
	priceUSD float64
}

// RenderForAddresses implements port.PortfolioService.
func (s *PortfolioServiceImpl) RenderForAddresses(ctx context.Context, sub entity.Submission) (*entity.PortfolioChart, error) {
	sub = sub.Normalized()
	submissionID := uuid.NewString()
	log := s.logger.With("submission_id", submissionID)

	if err := sub.Validate(); err != nil {
		metrics.Submissions.WithLabelValues("invalid").Inc()
		log.Info("Submission rejected", "error", err)
		return nil, err
	}

	log.Info("Processing submission",
		"addresses", len(sub.Addresses),
		"include_unstaked", sub.IncludeUnstaked,
		"include_staked", sub.IncludeStaked)
	start := time.Now()

	fetcher, err := s.fetcherFactory.ForAPIKey(sub.Credentials.RPCAPIKey)
	if err != nil {
		metrics.Submissions.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("create RPC client: %w", err)
	}

	res, err := s.fetchAll(ctx, fetcher, sub)
	if err != nil {
		metrics.Submissions.WithLabelValues("failed").Inc()
		log.Error("Submission failed", "error", err, "elapsed", time.Since(start))
		return nil, err
	}

	chart := &entity.PortfolioChart{
		SubmissionID: submissionID,
		Warnings:     truncationWarnings(res.pages),
	}
	for _, w := range chart.Warnings {
		metrics.TruncatedResults.Inc()
		log.Warn("Token listing truncated", "address", w.Address, "message", w.Message)
	}

	records := s.assemble(log, sub, res)
	display, total := MakeDisplayable(records, s.materialityPercent)
	if total == 0 {
		chart.Status = entity.StatusEmpty
		chart.Records = []entity.DisplayRecord{}
		metrics.Submissions.WithLabelValues(string(entity.StatusEmpty)).Inc()
		log.Info("Portfolio has no holdings", "elapsed", time.Since(start))
		return chart, nil
	}

	chart.TotalValueUSD = total
	if len(display) == 0 {
		chart.Status = entity.StatusImmaterial
		chart.Records = display
		metrics.Submissions.WithLabelValues(string(entity.StatusImmaterial)).Inc()
		log.Info("No holding reaches the display threshold",
			"aggregated", len(records),
			"threshold_percent", s.materialityPercent,
			"total_usd", total)
		return chart, nil
	}

	chart.Status = entity.StatusOK
	chart.Records = display
	if s.renderer != nil {
		spec, err := s.renderer.Render(display)
		if err != nil {
			metrics.Submissions.WithLabelValues("failed").Inc()
			return nil, fmt.Errorf("render chart: %w", err)
		}
		chart.Spec = spec
	}

	metrics.Submissions.WithLabelValues(string(entity.StatusOK)).Inc()
	log.Info("Portfolio rendered",
		"aggregated", len(records),
		"displayed", len(display),
		"total_usd", total,
		"elapsed", time.Since(start))
	return chart, nil
}

// fetchAll runs one barrier per enabled asset class plus the price lookup.
// The first failure cancels everything still in flight.
func (s *PortfolioServiceImpl) fetchAll(ctx context.Context, fetcher port.AssetFetcher, sub entity.Submission) (*fetched, error) {
	n := len(sub.Addresses)
	res := &fetched{pages: make([]entity.TokenPage, n)}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.forEachAddress(gctx, sub.Addresses, func(ctx context.Context, i int, addr string) error {
			page, err := fetcher.GetTokens(ctx, addr)
			if err != nil {
				return &entity.FetchError{Kind: entity.TokenAsset.String(), Address: addr, Err: err}
			}
			res.pages[i] = page
			return nil
		})
	})

	if sub.IncludesSOL() {
		g.Go(func() error {
			price, err := s.priceProvider.GetSpotPriceUSD(gctx, sub.Credentials.PriceAPIKey)
			if err != nil {
				return &entity.FetchError{Kind: priceKind, Err: err}
			}
			res.priceUSD = price
			return nil
		})
	}

	if sub.IncludeUnstaked {
		res.balances = make([]uint64, n)
		g.Go(func() error {
			return s.forEachAddress(gctx, sub.Addresses, func(ctx context.Context, i int, addr string) error {
				lamports, err := fetcher.GetBalance(ctx, addr)
				if err != nil {
					return &entity.FetchError{Kind: entity.NativeBalanceAsset.String(), Address: addr, Err: err}
				}
				res.balances[i] = lamports
				return nil
			})
		})
	}

	if sub.IncludeStaked {
		res.stakes = make([][]entity.StakeEntry, n)
		g.Go(func() error {
			return s.forEachAddress(gctx, sub.Addresses, func(ctx context.Context, i int, addr string) error {
				entries, err := fetcher.GetStake(ctx, addr)
				if err != nil {
					return &entity.FetchError{Kind: entity.StakedBalanceAsset.String(), Address: addr, Err: err}
				}
				res.stakes[i] = entries
				return nil
			})
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

// forEachAddress is one barrier: fn runs for every address with bounded
// concurrency and the call returns once all have finished or one has failed.
func (s *PortfolioServiceImpl) forEachAddress(
	ctx context.Context,
	addresses []string,
	fn func(ctx context.Context, i int, addr string) error,
) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrentRoutines)
	for i, addr := range addresses {
		g.Go(func() error { return fn(gctx, i, addr) })
	}
	return g.Wait()
}

// assemble normalizes and aggregates the fetched tokens, then prepends the
// unstaked and staked SOL records. Result order: staked, unstaked, tokens.
func (s *PortfolioServiceImpl) assemble(log port.Logger, sub entity.Submission, res *fetched) []entity.AssetRecord {
	var tokens []entity.AssetRecord
	for _, page := range res.pages {
		for _, h := range page.Items {
			tokens = append(tokens, NormalizeToken(h))
		}
	}
	records := Aggregate(tokens)

	if sub.IncludeUnstaked {
		rec := NormalizeNative(SumLamports(res.balances), res.priceUSD)
		records = append([]entity.AssetRecord{rec}, records...)
	}

	if sub.IncludeStaked {
		var entries []entity.StakeEntry
		for _, e := range res.stakes {
			entries = append(entries, e...)
		}
		lamports, skipped := SumDelegatedLamports(entries)
		for _, e := range skipped {
			metrics.MalformedItems.WithLabelValues(entity.StakedBalanceAsset.String()).Inc()
			log.Warn("Skipping stake account with unreadable delegation", "account", e.Pubkey, "stake", e.DelegatedLamports)
		}
		rec := NormalizeStaked(lamports, res.priceUSD)
		records = append([]entity.AssetRecord{rec}, records...)
	}

	log.Debug("Assembled asset records", "tokens", len(tokens), "records", len(records), "price_usd", res.priceUSD)
	return records
}

func truncationWarnings(pages []entity.TokenPage) []entity.Warning {
	var warnings []entity.Warning
	for _, p := range pages {
		if !p.Truncated() {
			continue
		}
		limit := p.Limit
		if limit <= 0 {
			limit = entity.DefaultPageLimit
		}
		warnings = append(warnings, entity.Warning{
			Address: p.Address,
			Message: fmt.Sprintf("address returned %d assets in a page of %d; further assets were not fetched (pagination is not implemented)", p.Total, limit),
		})
	}
	return warnings
}
