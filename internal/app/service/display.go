package service

import (
	"fmt"

	"solana_portfolio/internal/domain/entity"
	"solana_portfolio/internal/pkg/utils"

	"github.com/shopspring/decimal"
)

// DefaultMaterialityPercent is the smallest share a holding needs to be displayed.
const DefaultMaterialityPercent = 0.5

// ComputePercentages attaches each record's share of the total and its tooltip.
// It returns nil and a zero total when there is nothing to divide by.
func ComputePercentages(records []entity.AssetRecord) ([]entity.DisplayRecord, decimal.Decimal) {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(decimal.NewFromFloat(r.ValueUSD))
	}
	if !total.IsPositive() {
		return nil, decimal.Zero
	}

	out := make([]entity.DisplayRecord, 0, len(records))
	for _, r := range records {
		pct := utils.PercentOf(decimal.NewFromFloat(r.ValueUSD), total)
		out = append(out, entity.DisplayRecord{
			AssetRecord: r,
			Percent:     pct.InexactFloat64(),
			Tooltip:     fmt.Sprintf("%s: %s%%", r.Symbol, pct.StringFixed(1)),
		})
	}
	return out, total
}

// FilterMaterial keeps records whose percent is at least thresholdPercent.
// Percentages are not renormalized.
func FilterMaterial(records []entity.DisplayRecord, thresholdPercent float64) []entity.DisplayRecord {
	threshold := decimal.NewFromFloat(thresholdPercent)
	out := make([]entity.DisplayRecord, 0, len(records))
	for _, r := range records {
		if decimal.NewFromFloat(r.Percent).LessThan(threshold) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// MakeDisplayable computes percentages against the total of all records and then
// drops the immaterial ones. An empty or worthless portfolio yields an empty slice
// and a zero total.
func MakeDisplayable(records []entity.AssetRecord, thresholdPercent float64) ([]entity.DisplayRecord, float64) {
	withPct, total := ComputePercentages(records)
	if withPct == nil {
		return []entity.DisplayRecord{}, 0
	}
	return FilterMaterial(withPct, thresholdPercent), total.InexactFloat64()
}
