package v3math

import (
	"errors"
	"fmt"
	"math/big"
	"sync"
)

// Q96 is 2^96, the fixed-point scale of a pool sqrt price.
var Q96 = mustBig("79228162514264337593543950336")

// PoolState is the slice of concentrated-liquidity pool state needed for
// spot pricing: the Q64.96 sqrt price, the current tick and the in-range
// liquidity. Spot rates depend on the sqrt price alone; tick and liquidity
// are carried for validation and diagnostics.
type PoolState struct {
	SqrtPriceX96 *big.Int
	Tick         int32
	Liquidity    *big.Int
}

// Validate checks that the state lies in the valid protocol domain. An
// uninitialized pool reports a zero sqrt price and fails here.
func (s PoolState) Validate() error {
	if s.SqrtPriceX96 == nil || s.Liquidity == nil {
		return errors.New("missing pool state")
	}
	if s.SqrtPriceX96.Cmp(MinSqrtRatio) < 0 || s.SqrtPriceX96.Cmp(MaxSqrtRatio) >= 0 {
		return fmt.Errorf("sqrt price %s out of range", s.SqrtPriceX96.String())
	}
	if s.Tick < MinTick || s.Tick > MaxTick {
		return fmt.Errorf("tick %d out of range", s.Tick)
	}
	if s.Liquidity.Sign() < 0 {
		return fmt.Errorf("negative liquidity %s", s.Liquidity.String())
	}
	return nil
}

// Token1PerToken0 returns how much whole-unit token1 one whole token0 buys
// at the current sqrt price: (sqrtPriceX96 / 2^96)^2 adjusted by the
// decimals difference.
func (s PoolState) Token1PerToken0(decimals0, decimals1 uint8) *big.Rat {
	num := new(big.Int).Mul(s.SqrtPriceX96, s.SqrtPriceX96)
	den := new(big.Int).Mul(Q96, Q96)
	rate := new(big.Rat).SetFrac(num, den)
	return rate.Mul(rate, decimalsAdjust(decimals0, decimals1))
}

// Token0PerToken1 returns the inverse rate, or nil when the raw price is
// zero and no inverse exists.
func (s PoolState) Token0PerToken1(decimals0, decimals1 uint8) *big.Rat {
	rate := s.Token1PerToken0(decimals0, decimals1)
	if rate.Sign() == 0 {
		return nil
	}
	return rate.Inv(rate)
}

// decimalsAdjust is 10^decimals0 / 10^decimals1, the factor converting a
// raw-unit rate into a whole-unit rate.
func decimalsAdjust(decimals0, decimals1 uint8) *big.Rat {
	return new(big.Rat).SetFrac(Pow10(int(decimals0)), Pow10(int(decimals1)))
}

// NormalizeAmount converts a raw integer token amount into whole units,
// raw / 10^decimals.
func NormalizeAmount(raw *big.Int, decimals uint8) float64 {
	if raw == nil {
		return 0
	}
	value := new(big.Float).SetInt(raw)
	scale := new(big.Float).SetInt(Pow10(int(decimals)))
	out, _ := new(big.Float).Quo(value, scale).Float64()
	return out
}

var (
	pow10Mu    sync.Mutex
	pow10Cache = map[int]*big.Int{}
)

// Pow10 returns 10^n for n >= 0. The returned value is shared and must not
// be mutated.
func Pow10(n int) *big.Int {
	pow10Mu.Lock()
	defer pow10Mu.Unlock()
	if v, ok := pow10Cache[n]; ok {
		return v
	}
	v := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
	pow10Cache[n] = v
	return v
}

func mustBig(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("v3math: bad integer constant " + s)
	}
	return v
}
