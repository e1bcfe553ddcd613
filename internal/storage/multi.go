package storage

import (
	"context"
	"errors"

	"spreadScope/internal/model"
)

// MultiSink writes each opportunity to every sink. A failing sink does not
// stop the others; all errors are joined.
type MultiSink []OpportunitySink

func (m MultiSink) SaveOpportunity(ctx context.Context, opp model.ArbitrageOpportunity) error {
	var errs []error
	for _, sink := range m {
		if sink == nil {
			continue
		}
		if err := sink.SaveOpportunity(ctx, opp); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
