package domain

import (
	"math/big"
	"strings"

	"github.com/holiman/uint256"

	dErrors "flightsurety/pkg/domain-errors"
)

// weiPerEther is the number of base units in one currency unit.
const weiPerEther uint64 = 1_000_000_000_000_000_000

// Amount is a non-negative quantity of base units (wei).
// The zero value is zero.
type Amount struct {
	v uint256.Int
}

// NewAmount returns an amount of wei base units.
func NewAmount(wei uint64) Amount {
	var a Amount
	a.v.SetUint64(wei)
	return a
}

// Ether returns n whole currency units.
func Ether(n uint64) Amount {
	var a Amount
	a.v.Mul(uint256.NewInt(n), uint256.NewInt(weiPerEther))
	return a
}

// ParseAmount parses a base-10 wei amount.
//
// Errors: returns CodeInvalidInput when s is empty, negative, not decimal or
// does not fit 256 bits.
func ParseAmount(s string) (Amount, error) {
	var a Amount
	s = strings.TrimSpace(s)
	if s == "" {
		return a, dErrors.New(dErrors.CodeInvalidInput, "amount cannot be empty")
	}
	if err := a.v.SetFromDecimal(s); err != nil {
		return Amount{}, dErrors.New(dErrors.CodeInvalidInput, "amount must be a non-negative decimal integer")
	}
	return a, nil
}

func (a Amount) IsZero() bool {
	return a.v.IsZero()
}

// Cmp returns -1, 0 or +1.
func (a Amount) Cmp(b Amount) int {
	return a.v.Cmp(&b.v)
}

func (a Amount) LessThan(b Amount) bool {
	return a.v.Lt(&b.v)
}

func (a Amount) GreaterThan(b Amount) bool {
	return a.v.Gt(&b.v)
}

func (a Amount) Add(b Amount) Amount {
	var out Amount
	out.v.Add(&a.v, &b.v)
	return out
}

// Sub returns a-b, or zero and false when b exceeds a.
func (a Amount) Sub(b Amount) (Amount, bool) {
	if a.v.Lt(&b.v) {
		return Amount{}, false
	}
	var out Amount
	out.v.Sub(&a.v, &b.v)
	return out, true
}

// MulDiv returns a*num/den with a 512-bit intermediate, truncating.
func (a Amount) MulDiv(num, den uint64) Amount {
	var out Amount
	if den == 0 {
		return out
	}
	out.v.MulDivOverflow(&a.v, uint256.NewInt(num), uint256.NewInt(den))
	return out
}

// Float64 approximates the amount for metrics. Never use it for accounting.
func (a Amount) Float64() float64 {
	f, _ := new(big.Float).SetInt(a.v.ToBig()).Float64()
	return f
}

// String returns the base-10 wei representation.
func (a Amount) String() string {
	return a.v.Dec()
}

func (a Amount) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Amount) UnmarshalText(text []byte) error {
	parsed, err := ParseAmount(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
