package model

import "strconv"

// FeeTier is a Uniswap V3 fee amount in hundredths of a basis point.
type FeeTier uint32

const (
	FeeLowest FeeTier = 100
	FeeLow    FeeTier = 500
	FeeMedium FeeTier = 3000
	FeeHigh   FeeTier = 10000
)

// FeeTiers returns the canonical fee tiers in enumeration order. Discovery
// results keep this order.
func FeeTiers() []FeeTier {
	return []FeeTier{FeeLowest, FeeLow, FeeMedium, FeeHigh}
}

// Percent converts the tier into a fraction of one hundred, e.g. 3000 -> 0.3.
func (f FeeTier) Percent() float64 {
	return float64(f) / 10000
}

func (f FeeTier) String() string {
	return strconv.FormatFloat(f.Percent(), 'f', -1, 64) + "%"
}
