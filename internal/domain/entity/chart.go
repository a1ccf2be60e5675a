package entity

import "encoding/json"

// ChartStatus is the terminal state of a successful submission.
type ChartStatus string

const (
	// StatusOK means at least one holding is displayed.
	StatusOK ChartStatus = "ok"
	// StatusEmpty means the portfolio is worth nothing and there is nothing to chart.
	StatusEmpty ChartStatus = "empty"
	// StatusImmaterial means the portfolio has value but every holding is below the
	// display threshold.
	StatusImmaterial ChartStatus = "immaterial"
)

// PortfolioChart is the outcome of one submission, ready for presentation.
type PortfolioChart struct {
	SubmissionID  string          `json:"submission_id"`
	Status        ChartStatus     `json:"status"`
	Records       []DisplayRecord `json:"records"`
	TotalValueUSD float64         `json:"total_value_usd"`
	Warnings      []Warning       `json:"warnings,omitempty"`
	Spec          json.RawMessage `json:"spec,omitempty"`
}

// Empty reports whether there are no holdings to show.
func (c *PortfolioChart) Empty() bool {
	return c == nil || c.Status != StatusOK
}

// EmptyMessage explains an empty chart to the user.
func (c *PortfolioChart) EmptyMessage() string {
	if c != nil && c.Status == StatusImmaterial {
		return "No holding reaches the display threshold."
	}
	return "No holdings found for the supplied addresses."
}
