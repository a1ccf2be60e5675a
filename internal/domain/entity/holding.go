package entity

// DefaultPageLimit is the page size requested from the asset API. Only the first
// page is ever fetched.
const DefaultPageLimit = 1000

// TokenHolding is one eligible fungible token of a wallet, already priced by the provider.
type TokenHolding struct {
	ID            string
	Interface     string
	Symbol        string
	TotalPriceUSD float64
}

// TokenPage is the first page of fungible holdings returned for one address.
type TokenPage struct {
	Address string
	Items   []TokenHolding
	Total   int
	Limit   int
	Page    int
}

// Truncated reports whether the provider may hold more assets than the page returned.
// DAS reports total as the item count of the page, so a full page counts as truncated.
func (p TokenPage) Truncated() bool {
	limit := p.Limit
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	return p.Total >= limit
}

// StakeEntry is one delegated stake account. DelegatedLamports is the decimal string
// exactly as the RPC reports it.
type StakeEntry struct {
	Pubkey            string
	DelegatedLamports string
}
