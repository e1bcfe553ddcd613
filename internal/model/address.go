package model

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// DisplayAddress renders EVM hex addresses in EIP-55 checksum form.
// Other address formats (e.g. base58) are returned trimmed but unchanged.
func DisplayAddress(address string) string {
	address = strings.TrimSpace(address)
	if common.IsHexAddress(address) {
		return common.HexToAddress(address).Hex()
	}
	return address
}

// ShortAddress returns the last n characters of the display address,
// prefixed with "..." when truncated.
func ShortAddress(address string, n int) string {
	display := DisplayAddress(address)
	if n <= 0 || len(display) <= n {
		return display
	}
	return "..." + display[len(display)-n:]
}
