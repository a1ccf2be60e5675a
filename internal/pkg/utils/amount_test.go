package utils

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseLamports(t *testing.T) {
	v, err := ParseLamports(" 2500000000 ")
	if err != nil || v.Int64() != 2_500_000_000 {
		t.Errorf("expected 2500000000, got %v, %v", v, err)
	}
	for _, bad := range []string{"", "1.5", "abc", "-1"} {
		if _, err := ParseLamports(bad); err == nil {
			t.Errorf("%q: expected an error", bad)
		}
	}
}

func TestLamportsToSOL(t *testing.T) {
	if got := LamportsToSOL(big.NewInt(2_500_000_000)).String(); got != "2.5" {
		t.Errorf("expected 2.5, got %s", got)
	}
	if got := FormatSOL(big.NewInt(1)); got != "0.000000001" {
		t.Errorf("expected one lamport, got %s", got)
	}
	if !LamportsToSOL(nil).IsZero() {
		t.Error("expected zero for nil")
	}
}

func TestValueUSD(t *testing.T) {
	if got := ValueUSD(decimal.RequireFromString("2.5"), 150); got != 375 {
		t.Errorf("expected 375, got %v", got)
	}
}

func TestPercentOf_RoundsTiesAwayFromZero(t *testing.T) {
	tests := []struct {
		part, total string
		want        string
	}{
		{"1", "2000", "0.1"},
		{"1999", "2000", "100"},
		{"1", "1000", "0.1"},
		{"999", "1000", "99.9"},
		{"1", "3", "33.3"},
		{"2", "3", "66.7"},
	}
	for _, tt := range tests {
		got := PercentOf(decimal.RequireFromString(tt.part), decimal.RequireFromString(tt.total))
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("%s/%s: expected %s, got %s", tt.part, tt.total, tt.want, got)
		}
	}
}
