package detector

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"spreadScope/internal/gecko"
	"spreadScope/internal/model"
	"spreadScope/internal/storage"
)

// PoolSource provides pool listings for a network.
type PoolSource interface {
	NewestPools(ctx context.Context, network string, page int) (*gecko.Document, error)
	SearchPools(ctx context.Context, network, query string) (*gecko.Document, error)
}

// Config controls detection behavior.
type Config struct {
	Threshold   decimal.Decimal
	SearchDelay time.Duration
	Page        int
}

// Summary counts what a scan did.
type Summary struct {
	Pools    int
	Analyzed int
	Skipped  int
	Found    int
	Saved    int
}

// Detector scans newly created pools for cross-pool price spreads.
type Detector struct {
	cfg    Config
	source PoolSource
	sink   storage.OpportunitySink
	out    io.Writer
	logger *zap.Logger
	wait   func(context.Context, time.Duration) error
}

// New builds a Detector. sink may be nil, in which case opportunities are
// only reported. out receives the human-readable opportunity block.
func New(cfg Config, source PoolSource, sink storage.OpportunitySink, out io.Writer, logger *zap.Logger) *Detector {
	if logger == nil {
		logger = zap.NewNop()
	}
	if out == nil {
		out = io.Discard
	}
	if cfg.Page < 1 {
		cfg.Page = 1
	}
	return &Detector{
		cfg:    cfg,
		source: source,
		sink:   sink,
		out:    out,
		logger: logger,
		wait:   sleepContext,
	}
}

// Detect runs one scan over the newest pools of network. Per-pool problems
// are logged and skipped; only context cancellation is returned as an error.
func (d *Detector) Detect(ctx context.Context, network string) (Summary, error) {
	var summary Summary
	if d.source == nil {
		return summary, fmt.Errorf("pool source is nil")
	}

	listing, err := d.source.NewestPools(ctx, network, d.cfg.Page)
	if err != nil {
		d.logger.Warn("fetch newest pools failed", zap.String("network", network), zap.Error(err))
		listing = nil
	}
	if listing == nil || len(listing.Data) == 0 {
		d.logger.Info("could not fetch new pools", zap.String("network", network))
		return summary, nil
	}

	summary.Pools = len(listing.Data)
	tokens := gecko.NewTokenIndex(listing.Included)

	d.logger.Info("scan start",
		zap.String("network", network),
		zap.Int("pools", summary.Pools),
		zap.String("threshold_pct", d.cfg.Threshold.String()),
	)

	for _, resource := range listing.Data {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		opp, analyzed, err := d.analyzePool(ctx, network, resource, tokens)
		if analyzed {
			summary.Analyzed++
		}
		if err != nil {
			if ctx.Err() != nil {
				return summary, ctx.Err()
			}
			summary.Skipped++
			continue
		}
		if opp == nil {
			summary.Skipped++
			continue
		}

		summary.Found++
		d.report(*opp)
		if d.persist(ctx, *opp) {
			summary.Saved++
		}
	}

	d.logger.Info("scan complete",
		zap.String("network", network),
		zap.Int("pools", summary.Pools),
		zap.Int("analyzed", summary.Analyzed),
		zap.Int("skipped", summary.Skipped),
		zap.Int("found", summary.Found),
		zap.Int("saved", summary.Saved),
	)

	return summary, nil
}

// analyzePool returns an opportunity for one listed pool, or nil when the
// pool has nothing to report. analyzed is true once its tokens resolved.
func (d *Detector) analyzePool(ctx context.Context, network string, resource gecko.Resource, tokens gecko.TokenIndex) (*model.ArbitrageOpportunity, bool, error) {
	poolAddress, _ := gecko.Address(resource)

	baseRef, quoteRef, err := gecko.TokenRefs(resource)
	if err != nil {
		d.logger.Warn("skip malformed pool", zap.String("pool_id", resource.ID), zap.Error(err))
		return nil, false, nil
	}
	baseToken, err := tokens.Lookup(baseRef)
	if err != nil {
		d.logger.Warn("skip pool with unresolved base token", zap.String("pool_id", resource.ID), zap.Error(err))
		return nil, false, nil
	}
	quoteToken, err := tokens.Lookup(quoteRef)
	if err != nil {
		d.logger.Warn("skip pool with unresolved quote token", zap.String("pool_id", resource.ID), zap.Error(err))
		return nil, false, nil
	}

	pair := baseToken.Symbol + "/" + quoteToken.Symbol
	d.logger.Info("analyze pool",
		zap.String("pair", pair),
		zap.String("pool", model.DisplayAddress(poolAddress)),
	)

	if err := d.wait(ctx, d.cfg.SearchDelay); err != nil {
		return nil, true, err
	}

	results, err := d.source.SearchPools(ctx, network, baseToken.Address)
	if err != nil {
		d.logger.Warn("search pools failed", zap.String("pair", pair), zap.Error(err))
		return nil, true, nil
	}
	if results == nil || len(results.Data) == 0 {
		d.logger.Debug("no search results", zap.String("pair", pair))
		return nil, true, nil
	}

	pools := make([]model.Pool, 0, len(results.Data))
	for _, r := range results.Data {
		pool, err := gecko.ToPool(r)
		if err != nil {
			d.logger.Debug("skip search result", zap.String("pool_id", r.ID), zap.Error(err))
			continue
		}
		pools = append(pools, pool)
	}

	candidates := PricePoints(FilterPair(pools, baseRef, quoteRef))
	spread, ok := EvaluateSpread(candidates, d.cfg.Threshold)
	if !ok {
		d.logger.Debug("no opportunity for pair",
			zap.String("pair", pair),
			zap.Int("candidates", len(candidates)),
			zap.String("spread_pct", spread.Percent.StringFixed(4)),
		)
		return nil, true, nil
	}

	return &model.ArbitrageOpportunity{
		Network:                network,
		BaseTokenName:          baseToken.Symbol,
		QuoteTokenName:         quoteToken.Symbol,
		BaseTokenAddress:       baseToken.Address,
		QuoteTokenAddress:      quoteToken.Address,
		HighPricePoolAddress:   spread.High.PoolAddress,
		LowPricePoolAddress:    spread.Low.PoolAddress,
		HighPrice:              spread.High.Price,
		LowPrice:               spread.Low.Price,
		PriceDifferencePercent: spread.Percent,
	}, true, nil
}

func (d *Detector) report(opp model.ArbitrageOpportunity) {
	d.logger.Info("arbitrage opportunity",
		zap.String("network", opp.Network),
		zap.String("pair", opp.Pair()),
		zap.String("high_price", opp.HighPrice.String()),
		zap.String("low_price", opp.LowPrice.String()),
		zap.String("spread_pct", opp.PriceDifferencePercent.StringFixed(4)),
	)
	_, _ = io.WriteString(d.out, FormatOpportunity(opp))
}

func (d *Detector) persist(ctx context.Context, opp model.ArbitrageOpportunity) bool {
	if d.sink == nil {
		return false
	}
	if err := d.sink.SaveOpportunity(ctx, opp); err != nil {
		d.logger.Warn("save opportunity failed", zap.String("pair", opp.Pair()), zap.Error(err))
		return false
	}
	return true
}

// FormatOpportunity renders the console block for an opportunity.
func FormatOpportunity(opp model.ArbitrageOpportunity) string {
	rule := strings.Repeat("=", 25)
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n", rule)
	b.WriteString("!!! ARBITRAGE OPPORTUNITY FOUND !!!\n")
	fmt.Fprintf(&b, "  Pair: %s\n", opp.Pair())
	fmt.Fprintf(&b, "  High Price: $%s (Pool: %s)\n", opp.HighPrice.StringFixed(6), model.ShortAddress(opp.HighPricePoolAddress, 10))
	fmt.Fprintf(&b, "  Low Price:  $%s (Pool: %s)\n", opp.LowPrice.StringFixed(6), model.ShortAddress(opp.LowPricePoolAddress, 10))
	fmt.Fprintf(&b, "  Difference: %s%%\n", opp.PriceDifferencePercent.StringFixed(2))
	fmt.Fprintf(&b, "%s\n\n", rule)
	return b.String()
}

func sleepContext(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
