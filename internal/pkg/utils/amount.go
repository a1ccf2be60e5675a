package utils

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// lamportsExp is the decimal exponent of one lamport in SOL.
const lamportsExp = -9

// ParseLamports parses a base-10 lamport amount as reported by the RPC.
func ParseLamports(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok {
		return nil, fmt.Errorf("invalid lamport amount %q", s)
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("negative lamport amount %q", s)
	}
	return v, nil
}

// LamportsToSOL converts a lamport amount to an exact SOL quantity.
// Example: 2500000000 => 2.5
func LamportsToSOL(lamports *big.Int) decimal.Decimal {
	if lamports == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(lamports, lamportsExp)
}

// ValueUSD multiplies a SOL quantity by a USD spot price.
func ValueUSD(sol decimal.Decimal, priceUSD float64) float64 {
	return sol.Mul(decimal.NewFromFloat(priceUSD)).InexactFloat64()
}

// PercentOf returns part/total*100 rounded to one decimal place, ties away from zero.
// The caller guarantees total > 0.
func PercentOf(part, total decimal.Decimal) decimal.Decimal {
	return part.Mul(decimal.NewFromInt(100)).Div(total).Round(1)
}

// FormatSOL renders a lamport amount as SOL without trailing zeros.
func FormatSOL(lamports *big.Int) string {
	return LamportsToSOL(lamports).String()
}
