package model

// TokenRef identifies a token resource within one API response.
type TokenRef struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// IsZero reports whether the ref carries no identity.
func (r TokenRef) IsZero() bool {
	return r.ID == "" && r.Type == ""
}

// Token is resolved token detail.
type Token struct {
	Address string `json:"address"`
	Symbol  string `json:"symbol"`
}
