package service

import "solana_portfolio/internal/domain/entity"

// Aggregate merges records sharing an id into one record whose value is the sum
// of the inputs. The symbol of the first record seen for an id wins, and the
// output keeps first-seen order. The input is not modified.
func Aggregate(records []entity.AssetRecord) []entity.AssetRecord {
	out := make([]entity.AssetRecord, 0, len(records))
	index := make(map[string]int, len(records))
	for _, r := range records {
		if i, ok := index[r.ID]; ok {
			out[i].ValueUSD += r.ValueUSD
			continue
		}
		index[r.ID] = len(out)
		out = append(out, r)
	}
	return out
}
