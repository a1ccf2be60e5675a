package port

import (
	"context"

	"solana_portfolio/internal/domain/entity"
)

// PortfolioService runs one fetch-aggregate-render cycle.
type PortfolioService interface {
	// RenderForAddresses validates the submission, fetches every enabled asset class
	// and returns the displayable breakdown. Validation problems come back as
	// entity.ValidationErrors and fetch problems as *entity.FetchError.
	RenderForAddresses(ctx context.Context, sub entity.Submission) (*entity.PortfolioChart, error)
}

// ChartRenderer is the presentation sink for display records.
type ChartRenderer interface {
	Render(records []entity.DisplayRecord) ([]byte, error)
}
