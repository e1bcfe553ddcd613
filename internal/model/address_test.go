package model

import "testing"

func TestDisplayAddress(t *testing.T) {
	got := DisplayAddress(" 0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2 ")
	want := "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"
	if got != want {
		t.Fatalf("checksum mismatch: %s != %s", got, want)
	}

	solana := "So11111111111111111111111111111111111111112"
	if DisplayAddress(solana) != solana {
		t.Fatalf("non-hex address should pass through")
	}
}

func TestShortAddress(t *testing.T) {
	got := ShortAddress("0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2", 10)
	if got != "...083C756Cc2" {
		t.Fatalf("short address mismatch: %s", got)
	}
	if ShortAddress("abc", 10) != "abc" {
		t.Fatalf("short input should be unchanged")
	}
}
