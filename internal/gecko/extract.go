package gecko

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"spreadScope/internal/model"
)

// ErrMissingField is matched by every MissingFieldError.
var ErrMissingField = errors.New("missing field")

// MissingFieldError reports an absent or empty field in an API resource.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %s", e.Field)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

func missing(field string) error {
	return &MissingFieldError{Field: field}
}

// TokenRefs returns the base and quote token references of a pool resource.
func TokenRefs(r Resource) (model.TokenRef, model.TokenRef, error) {
	base, err := relationshipRef(r, relBaseToken)
	if err != nil {
		return model.TokenRef{}, model.TokenRef{}, err
	}
	quote, err := relationshipRef(r, relQuoteToken)
	if err != nil {
		return model.TokenRef{}, model.TokenRef{}, err
	}
	return base, quote, nil
}

func relationshipRef(r Resource, name string) (model.TokenRef, error) {
	rel, ok := r.Relationships[name]
	if !ok {
		return model.TokenRef{}, missing("relationships." + name)
	}
	if rel.Data == nil || rel.Data.ID == "" {
		return model.TokenRef{}, missing("relationships." + name + ".data")
	}
	return model.TokenRef{ID: rel.Data.ID, Type: rel.Data.Type}, nil
}

// Address returns the resource's address attribute.
func Address(r Resource) (string, error) {
	if r.Attributes == nil {
		return "", missing("attributes")
	}
	return requireString(r.Attributes.Address, "attributes.address")
}

// BasePriceUSD returns the pool's base token USD price.
func BasePriceUSD(r Resource) (decimal.Decimal, error) {
	if r.Attributes == nil {
		return decimal.Decimal{}, missing("attributes")
	}
	raw, err := requireString(r.Attributes.BaseTokenPriceUSD, "attributes.base_token_price_usd")
	if err != nil {
		return decimal.Decimal{}, err
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse base_token_price_usd %q: %w", raw, err)
	}
	return price, nil
}

// ToPool converts a pool resource into a model.Pool.
func ToPool(r Resource) (model.Pool, error) {
	base, quote, err := TokenRefs(r)
	if err != nil {
		return model.Pool{}, err
	}
	address, err := Address(r)
	if err != nil {
		return model.Pool{}, err
	}
	price, err := BasePriceUSD(r)
	if err != nil {
		return model.Pool{}, err
	}
	return model.Pool{
		Address:       address,
		BaseTokenRef:  base,
		QuoteTokenRef: quote,
		PriceUSD:      price,
	}, nil
}

func requireString(value *string, field string) (string, error) {
	if value == nil {
		return "", missing(field)
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return "", missing(field)
	}
	return trimmed, nil
}

// TokenIndex resolves token references against a response's included list.
type TokenIndex map[model.TokenRef]model.Token

// NewTokenIndex builds the index once per response. Entries without an
// address or symbol are left out so that lookups for them fail.
func NewTokenIndex(included []Resource) TokenIndex {
	index := make(TokenIndex, len(included))
	for _, r := range included {
		if r.ID == "" || r.Attributes == nil {
			continue
		}
		address, err := requireString(r.Attributes.Address, "attributes.address")
		if err != nil {
			continue
		}
		symbol, err := requireString(r.Attributes.Symbol, "attributes.symbol")
		if err != nil {
			continue
		}
		ref := model.TokenRef{ID: r.ID, Type: r.Type}
		if _, ok := index[ref]; ok {
			continue
		}
		index[ref] = model.Token{Address: address, Symbol: symbol}
	}
	return index
}

// Lookup returns the token for ref.
func (idx TokenIndex) Lookup(ref model.TokenRef) (model.Token, error) {
	token, ok := idx[ref]
	if !ok {
		return model.Token{}, missing(fmt.Sprintf("included[%s/%s]", ref.Type, ref.ID))
	}
	return token, nil
}
