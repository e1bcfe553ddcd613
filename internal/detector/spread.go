package detector

import (
	"github.com/shopspring/decimal"

	"spreadScope/internal/model"
)

var hundred = decimal.NewFromInt(100)

// DefaultThreshold is the minimum spread, in percent, reported as an opportunity.
var DefaultThreshold = decimal.RequireFromString("0.5")

// Spread is the price range observed for one pair across pools.
type Spread struct {
	High    model.PricePoint
	Low     model.PricePoint
	Percent decimal.Decimal
}

// FilterPair keeps only pools trading exactly base/quote, preserving order.
func FilterPair(pools []model.Pool, base, quote model.TokenRef) []model.Pool {
	out := make([]model.Pool, 0, len(pools))
	for _, pool := range pools {
		if pool.SamePair(base, quote) {
			out = append(out, pool)
		}
	}
	return out
}

// PricePoints projects pools onto their address and quoted price.
func PricePoints(pools []model.Pool) []model.PricePoint {
	points := make([]model.PricePoint, 0, len(pools))
	for _, pool := range pools {
		points = append(points, model.PricePoint{PoolAddress: pool.Address, Price: pool.PriceUSD})
	}
	return points
}

// HighLow returns the first highest and first lowest priced entries.
// ok is false when fewer than two points are given.
func HighLow(points []model.PricePoint) (high, low model.PricePoint, ok bool) {
	if len(points) < 2 {
		return model.PricePoint{}, model.PricePoint{}, false
	}
	high, low = points[0], points[0]
	for _, p := range points[1:] {
		if p.Price.GreaterThan(high.Price) {
			high = p
		}
		if p.Price.LessThan(low.Price) {
			low = p
		}
	}
	return high, low, true
}

// SpreadPercent computes (high-low)/low*100. ok is false when low <= 0.
func SpreadPercent(high, low decimal.Decimal) (decimal.Decimal, bool) {
	if !low.IsPositive() {
		return decimal.Zero, false
	}
	return high.Sub(low).Div(low).Mul(hundred), true
}

// EvaluateSpread reports the spread of points and whether it meets threshold.
func EvaluateSpread(points []model.PricePoint, threshold decimal.Decimal) (Spread, bool) {
	high, low, ok := HighLow(points)
	if !ok {
		return Spread{}, false
	}
	pct, ok := SpreadPercent(high.Price, low.Price)
	if !ok {
		return Spread{High: high, Low: low}, false
	}
	spread := Spread{High: high, Low: low, Percent: pct}
	return spread, pct.GreaterThanOrEqual(threshold)
}
