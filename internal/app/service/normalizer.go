package service

import (
	"math/big"

	"solana_portfolio/internal/domain/entity"
	"solana_portfolio/internal/pkg/utils"
)

// NormalizeToken converts an eligible token holding into an AssetRecord.
// The provider already valued the holding, so no price lookup happens here.
func NormalizeToken(h entity.TokenHolding) entity.AssetRecord {
	return entity.AssetRecord{
		ID:       h.ID,
		Symbol:   h.Symbol,
		ValueUSD: h.TotalPriceUSD,
	}
}

// NormalizeNative values an unstaked lamport balance at priceUSD per SOL.
func NormalizeNative(lamports *big.Int, priceUSD float64) entity.AssetRecord {
	return nativeRecord(entity.NativeBalanceAsset, lamports, priceUSD)
}

// NormalizeStaked values a delegated lamport total at priceUSD per SOL.
func NormalizeStaked(lamports *big.Int, priceUSD float64) entity.AssetRecord {
	return nativeRecord(entity.StakedBalanceAsset, lamports, priceUSD)
}

func nativeRecord(kind entity.AssetKind, lamports *big.Int, priceUSD float64) entity.AssetRecord {
	rec := entity.AssetRecord{
		ValueUSD: utils.ValueUSD(utils.LamportsToSOL(lamports), priceUSD),
	}
	switch kind {
	case entity.StakedBalanceAsset:
		rec.ID, rec.Symbol = entity.NativeStakedID, entity.NativeStakedSymbol
	default:
		rec.ID, rec.Symbol = entity.NativeUnstakedID, entity.NativeUnstakedSymbol
	}
	return rec
}

// SumLamports adds up native balances reported per address.
func SumLamports(balances []uint64) *big.Int {
	total := new(big.Int)
	for _, b := range balances {
		total.Add(total, new(big.Int).SetUint64(b))
	}
	return total
}

// SumDelegatedLamports adds up the delegated amounts of stake entries.
// Entries whose amount is not a non-negative integer are skipped and returned.
func SumDelegatedLamports(entries []entity.StakeEntry) (*big.Int, []entity.StakeEntry) {
	total := new(big.Int)
	var skipped []entity.StakeEntry
	for _, e := range entries {
		v, err := utils.ParseLamports(e.DelegatedLamports)
		if err != nil {
			skipped = append(skipped, e)
			continue
		}
		total.Add(total, v)
	}
	return total, skipped
}
