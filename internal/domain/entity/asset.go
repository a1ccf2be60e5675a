package entity

import "fmt"

// AssetKind selects how a fetched holding is turned into an AssetRecord.
type AssetKind int

const (
	// TokenAsset is a priced fungible token returned by the DAS API.
	TokenAsset AssetKind = iota
	// NativeBalanceAsset is the unstaked SOL held directly by a wallet.
	NativeBalanceAsset
	// StakedBalanceAsset is SOL delegated through stake accounts.
	StakedBalanceAsset
)

// String returns the label used in logs and metrics.
func (k AssetKind) String() string {
	switch k {
	case TokenAsset:
		return "tokens"
	case NativeBalanceAsset:
		return "native"
	case StakedBalanceAsset:
		return "staked"
	default:
		return fmt.Sprintf("AssetKind(%d)", int(k))
	}
}

// LamportsPerSOL is the number of lamports in one SOL.
const LamportsPerSOL = 1_000_000_000

// Grouping keys for the synthetic SOL records. Real asset ids are base58
// strings, which can never contain ':'.
const (
	NativeUnstakedID = "native:SOL:unstaked"
	NativeStakedID   = "native:SOL:staked"

	NativeUnstakedSymbol = "SOL (unstaked)"
	NativeStakedSymbol   = "SOL (staked)"
)

// AssetRecord is the canonical, per-asset USD valuation used by the aggregation pipeline.
type AssetRecord struct {
	ID       string  `json:"id"`
	Symbol   string  `json:"symbol"`
	ValueUSD float64 `json:"value_usd"`
}

// DisplayRecord is an AssetRecord with its share of the portfolio attached.
type DisplayRecord struct {
	AssetRecord
	Percent float64 `json:"percent"`
	Tooltip string  `json:"tooltip"`
}
