package model

import "github.com/shopspring/decimal"

// ArbitrageOpportunity is a detected price spread for one pair across pools.
// Records are append-only and never updated after creation.
type ArbitrageOpportunity struct {
	Network                string          `json:"network"`
	BaseTokenName          string          `json:"base_token_name"`
	QuoteTokenName         string          `json:"quote_token_name"`
	BaseTokenAddress       string          `json:"base_token_address"`
	QuoteTokenAddress      string          `json:"quote_token_address"`
	HighPricePoolAddress   string          `json:"high_price_pool_address"`
	LowPricePoolAddress    string          `json:"low_price_pool_address"`
	HighPrice              decimal.Decimal `json:"high_price"`
	LowPrice               decimal.Decimal `json:"low_price"`
	PriceDifferencePercent decimal.Decimal `json:"price_difference_percent"`
}

// Pair returns the "BASE/QUOTE" symbol label.
func (o ArbitrageOpportunity) Pair() string {
	return o.BaseTokenName + "/" + o.QuoteTokenName
}
