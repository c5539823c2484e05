//go:build go1.18

package domain

import (
	"strings"
	"testing"
)

// FuzzParseAddress checks that parsing never panics on arbitrary input
// and that accepted addresses round-trip through String.
func FuzzParseAddress(f *testing.F) {
	f.Add("")
	f.Add("0x00000000000000000000000000000000000000a1")
	f.Add("0x0000000000000000000000000000000000000000")
	f.Add("0XABCDEF0000000000000000000000000000000001")
	f.Add("not-an-address")
	f.Add("0x00000000000000000000000000000000000000a1\x00suffix")

	f.Fuzz(func(t *testing.T, input string) {
		addr, err := ParseAddress(input)
		if err != nil {
			return
		}
		if addr.IsZero() {
			t.Error("zero address accepted")
		}
		roundTrip, err := ParseAddress(addr.String())
		if err != nil {
			t.Fatalf("valid address failed round-trip: %v", err)
		}
		if roundTrip != addr {
			t.Error("round-trip changed address value")
		}
		if !strings.EqualFold(strings.TrimSpace(input), addr.String()) {
			t.Errorf("normalized form %q does not match input %q", addr.String(), input)
		}
	})
}

// FuzzParseAmount checks that accepted amounts re-parse to the same value.
func FuzzParseAmount(f *testing.F) {
	f.Add("0")
	f.Add("1500000000000000000")
	f.Add("-1")
	f.Add("1e18")

	f.Fuzz(func(t *testing.T, input string) {
		a, err := ParseAmount(input)
		if err != nil {
			return
		}
		again, err := ParseAmount(a.String())
		if err != nil {
			t.Fatalf("valid amount failed round-trip: %v", err)
		}
		if again.Cmp(a) != 0 {
			t.Error("round-trip changed amount value")
		}
	})
}
