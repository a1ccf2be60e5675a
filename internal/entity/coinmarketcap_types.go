package entity

// CMCQuotesResponse is the body of /v2/cryptocurrency/quotes/latest.
type CMCQuotesResponse struct {
	Status CMCStatus                `json:"status"`
	Data   map[string][]CMCCurrency `json:"data"`
}

// CMCStatus reports API-level errors.
type CMCStatus struct {
	ErrorCode    int    `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

// CMCCurrency is one listed currency matching the requested symbol.
type CMCCurrency struct {
	ID     int                 `json:"id"`
	Name   string              `json:"name"`
	Symbol string              `json:"symbol"`
	Quote  map[string]CMCQuote `json:"quote"`
}

// CMCQuote is the price in one convert currency.
type CMCQuote struct {
	Price float64 `json:"price"`
}
