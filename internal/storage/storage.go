package storage

import (
	"context"

	"spreadScope/internal/model"
)

// OpportunitySink persists detected opportunities.
type OpportunitySink interface {
	SaveOpportunity(ctx context.Context, opp model.ArbitrageOpportunity) error
}
