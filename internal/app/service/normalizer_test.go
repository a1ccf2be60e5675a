package service

import (
	"math/big"
	"testing"

	"solana_portfolio/internal/domain/entity"
)

func TestNormalizeNative_ConvertsLamportsAtSpotPrice(t *testing.T) {
	got := NormalizeNative(big.NewInt(2_500_000_000), 150.0)
	if got.ValueUSD != 375.0 {
		t.Errorf("expected 375.0, got %v", got.ValueUSD)
	}
	if got.ID != entity.NativeUnstakedID || got.Symbol != entity.NativeUnstakedSymbol {
		t.Errorf("unexpected identity %s/%s", got.ID, got.Symbol)
	}
}

func TestNormalizeStaked_UsesItsOwnSentinel(t *testing.T) {
	staked := NormalizeStaked(big.NewInt(entity.LamportsPerSOL), 10)
	unstaked := NormalizeNative(big.NewInt(entity.LamportsPerSOL), 10)
	if staked.ID == unstaked.ID {
		t.Fatalf("staked and unstaked records share id %s", staked.ID)
	}
	if staked.ID != entity.NativeStakedID || staked.Symbol != entity.NativeStakedSymbol || staked.ValueUSD != 10 {
		t.Errorf("unexpected staked record %+v", staked)
	}
}

func TestNormalizeToken_CopiesProviderValuation(t *testing.T) {
	got := NormalizeToken(entity.TokenHolding{
		ID:            "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
		Interface:     "FungibleToken",
		Symbol:        "USDC",
		TotalPriceUSD: 12.34,
	})
	want := entity.AssetRecord{ID: "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", Symbol: "USDC", ValueUSD: 12.34}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestSumDelegatedLamports_SkipsUnreadableEntries(t *testing.T) {
	total, skipped := SumDelegatedLamports([]entity.StakeEntry{
		{Pubkey: "a", DelegatedLamports: "1000000000"},
		{Pubkey: "b", DelegatedLamports: "1500000000"},
		{Pubkey: "c", DelegatedLamports: "not-a-number"},
		{Pubkey: "d", DelegatedLamports: "-5"},
	})
	if total.Cmp(big.NewInt(2_500_000_000)) != 0 {
		t.Errorf("expected 2500000000, got %s", total)
	}
	if len(skipped) != 2 || skipped[0].Pubkey != "c" || skipped[1].Pubkey != "d" {
		t.Errorf("unexpected skipped entries %+v", skipped)
	}
}

func TestSumDelegatedLamports_HandlesAmountsBeyondUint64(t *testing.T) {
	total, _ := SumDelegatedLamports([]entity.StakeEntry{
		{DelegatedLamports: "18446744073709551615"},
		{DelegatedLamports: "1"},
	})
	if total.String() != "18446744073709551616" {
		t.Errorf("unexpected total %s", total)
	}
}

func TestSumLamports(t *testing.T) {
	if got := SumLamports([]uint64{1, 2, 3}); got.Int64() != 6 {
		t.Errorf("expected 6, got %s", got)
	}
	if got := SumLamports(nil); got.Sign() != 0 {
		t.Errorf("expected 0, got %s", got)
	}
}
