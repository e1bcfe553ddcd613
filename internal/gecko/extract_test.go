package gecko

import (
	"errors"
	"reflect"
	"testing"

	"spreadScope/internal/model"
)

func strPtr(s string) *string { return &s }

func tokenResource(id, address, symbol string) Resource {
	return Resource{
		ID:   id,
		Type: "token",
		Attributes: &Attributes{
			Address: strPtr(address),
			Symbol:  strPtr(symbol),
		},
	}
}

func TestTokenIndexOrderIndependent(t *testing.T) {
	a := tokenResource("eth_0xaaa", "0xaaa", "AAA")
	b := tokenResource("eth_0xbbb", "0xbbb", "BBB")
	c := tokenResource("eth_0xccc", "0xccc", "CCC")

	forward := NewTokenIndex([]Resource{a, b, c})
	reverse := NewTokenIndex([]Resource{c, b, a})

	if !reflect.DeepEqual(forward, reverse) {
		t.Fatalf("index depends on order: %+v != %+v", forward, reverse)
	}

	token, err := reverse.Lookup(model.TokenRef{ID: "eth_0xbbb", Type: "token"})
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if token.Symbol != "BBB" || token.Address != "0xbbb" {
		t.Fatalf("token mismatch: %+v", token)
	}
}

func TestTokenIndexLookupRequiresType(t *testing.T) {
	index := NewTokenIndex([]Resource{tokenResource("eth_0xaaa", "0xaaa", "AAA")})

	_, err := index.Lookup(model.TokenRef{ID: "eth_0xaaa", Type: "dex"})
	if !errors.Is(err, ErrMissingField) {
		t.Fatalf("expected missing field error, got %v", err)
	}
}

func TestTokenIndexSkipsIncompleteEntries(t *testing.T) {
	noSymbol := Resource{ID: "eth_0xaaa", Type: "token", Attributes: &Attributes{Address: strPtr("0xaaa")}}
	noAttrs := Resource{ID: "eth_0xbbb", Type: "token"}

	index := NewTokenIndex([]Resource{noSymbol, noAttrs})
	if len(index) != 0 {
		t.Fatalf("expected empty index, got %+v", index)
	}
}

func TestTokenRefsMissingRelationship(t *testing.T) {
	r := Resource{
		ID:   "eth_0xpool",
		Type: "pool",
		Relationships: map[string]Relationship{
			"base_token": {Data: &ResourceIdentifier{ID: "eth_0xaaa", Type: "token"}},
		},
	}

	_, _, err := TokenRefs(r)
	var mfe *MissingFieldError
	if !errors.As(err, &mfe) {
		t.Fatalf("expected MissingFieldError, got %v", err)
	}
	if mfe.Field != "relationships.quote_token" {
		t.Fatalf("field mismatch: %s", mfe.Field)
	}

	r.Relationships["quote_token"] = Relationship{}
	_, _, err = TokenRefs(r)
	if !errors.As(err, &mfe) || mfe.Field != "relationships.quote_token.data" {
		t.Fatalf("expected null data error, got %v", err)
	}
}

func TestBasePriceUSD(t *testing.T) {
	r := Resource{Attributes: &Attributes{BaseTokenPriceUSD: strPtr("0.000012345")}}
	price, err := BasePriceUSD(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if price.String() != "0.000012345" {
		t.Fatalf("price mismatch: %s", price)
	}

	r.Attributes.BaseTokenPriceUSD = nil
	if _, err := BasePriceUSD(r); !errors.Is(err, ErrMissingField) {
		t.Fatalf("expected missing field, got %v", err)
	}

	r.Attributes.BaseTokenPriceUSD = strPtr("not-a-number")
	if _, err := BasePriceUSD(r); err == nil || errors.Is(err, ErrMissingField) {
		t.Fatalf("expected parse error, got %v", err)
	}
}
