package gecko

// Document is a JSON:API response body from the pools endpoints.
type Document struct {
	Data     []Resource `json:"data"`
	Included []Resource `json:"included"`
}

// Resource is a single JSON:API resource object (pool or token).
type Resource struct {
	ID            string                  `json:"id"`
	Type          string                  `json:"type"`
	Attributes    *Attributes             `json:"attributes"`
	Relationships map[string]Relationship `json:"relationships"`
}

// Attributes holds the subset of pool and token attributes used by the scanner.
// Fields are pointers so that an absent key is distinguishable from an empty value.
type Attributes struct {
	Address           *string `json:"address"`
	Name              *string `json:"name"`
	Symbol            *string `json:"symbol"`
	BaseTokenPriceUSD *string `json:"base_token_price_usd"`
}

// Relationship is a to-one JSON:API relationship.
type Relationship struct {
	Data *ResourceIdentifier `json:"data"`
}

// ResourceIdentifier references another resource by id and type.
type ResourceIdentifier struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

const (
	relBaseToken  = "base_token"
	relQuoteToken = "quote_token"
)
