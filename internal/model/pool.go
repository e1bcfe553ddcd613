package model

import "github.com/shopspring/decimal"

// Pool is a single pool snapshot as returned by the pools API.
type Pool struct {
	Address       string          `json:"address"`
	BaseTokenRef  TokenRef        `json:"base_token_ref"`
	QuoteTokenRef TokenRef        `json:"quote_token_ref"`
	PriceUSD      decimal.Decimal `json:"price_usd"`
}

// SamePair reports whether p trades exactly the base/quote pair given.
func (p Pool) SamePair(base, quote TokenRef) bool {
	return p.BaseTokenRef == base && p.QuoteTokenRef == quote
}

// PricePoint is one pool's quoted price within a candidate set.
type PricePoint struct {
	PoolAddress string
	Price       decimal.Decimal
}
