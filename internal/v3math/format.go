package v3math

import (
	"math/big"
	"strings"
)

// FormatSignificant renders a rational as a plain decimal string rounded to
// the given number of significant digits. No exponent notation, no trailing
// zeros after the decimal point.
func FormatSignificant(r *big.Rat, digits int) string {
	if r == nil || digits <= 0 || r.Sign() == 0 {
		return "0"
	}

	// decimal exponent: 2000 -> 3, 0.0005 -> -4
	abs := new(big.Rat).Abs(r)
	one := big.NewRat(1, 1)
	ten := big.NewRat(10, 1)
	probe := new(big.Rat).Set(abs)
	exp := 0
	for probe.Cmp(one) < 0 {
		probe.Mul(probe, ten)
		exp--
	}
	for probe.Cmp(ten) >= 0 {
		probe.Quo(probe, ten)
		exp++
	}

	decimals := digits - 1 - exp
	if decimals >= 0 {
		s := r.FloatString(decimals)
		if strings.Contains(s, ".") {
			s = strings.TrimRight(s, "0")
			s = strings.TrimSuffix(s, ".")
		}
		return s
	}

	// all significant digits sit left of the decimal point: round the
	// integer part to a power of ten
	scale := Pow10(-decimals)
	scaled := new(big.Rat).SetFrac(abs.Num(), new(big.Int).Mul(abs.Denom(), scale))
	rounded := ratRound(scaled)
	rounded.Mul(rounded, scale)
	if r.Sign() < 0 {
		rounded.Neg(rounded)
	}
	return rounded.String()
}

// ratRound rounds a non-negative rational to the nearest integer, halves
// away from zero.
func ratRound(r *big.Rat) *big.Int {
	rem := new(big.Int)
	q, _ := new(big.Int).QuoRem(r.Num(), r.Denom(), rem)
	rem.Lsh(rem, 1)
	if rem.Cmp(r.Denom()) >= 0 {
		q.Add(q, big.NewInt(1))
	}
	return q
}
