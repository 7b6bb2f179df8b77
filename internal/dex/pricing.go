package dex

import (
	"context"
	"fmt"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/BilalMir135/uniswapv3-pool-data/internal/chain"
	"github.com/BilalMir135/uniswapv3-pool-data/internal/v3math"
)

// priceDigits is the significant-digit precision of rendered prices.
const priceDigits = 6

// PricingEngine derives spot prices and TVL for pools with loaded reserves.
type PricingEngine struct {
	caller Caller
	logger *zap.Logger
}

func NewPricingEngine(caller Caller, logger *zap.Logger) *PricingEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PricingEngine{caller: caller, logger: logger}
}

// Price reads liquidity and slot0 of every pool in one batched round trip,
// then fills price (target token per wrapped-native unit, as a decimal
// string), priceUSD and tvlUSD. The native USD price is fetched once by the
// caller and shared across pools. Any call failure, decode mismatch or
// out-of-domain pool state aborts the scan with a PricingDecodeError.
func (e *PricingEngine) Price(ctx context.Context, pair Pair, native Token, nativeUSD float64, pools []*Pool) error {
	if len(pools) == 0 {
		return nil
	}

	poolABI, err := V3PoolABI()
	if err != nil {
		return fmt.Errorf("parse pool abi: %w", err)
	}
	liquidityData, err := poolABI.Pack("liquidity")
	if err != nil {
		return fmt.Errorf("pack liquidity: %w", err)
	}
	slot0Data, err := poolABI.Pack("slot0")
	if err != nil {
		return fmt.Errorf("pack slot0: %w", err)
	}

	calls := make([]chain.Call, 0, 2*len(pools))
	for _, pool := range pools {
		calls = append(calls, chain.Call{To: pool.Address, Data: liquidityData})
		calls = append(calls, chain.Call{To: pool.Address, Data: slot0Data})
	}

	results, err := e.caller.BatchCallContract(ctx, calls)
	if err != nil {
		return fmt.Errorf("pool state batch: %w", err)
	}

	targetIsToken0 := pair.Token0.Address != native.Address

	for i, pool := range pools {
		liquidity, err := decodeLiquidity(poolABI, results[2*i])
		if err != nil {
			return &PricingDecodeError{Pool: pool.Address, Err: err}
		}
		sqrtPrice, tick, err := decodeSlot0(poolABI, results[2*i+1])
		if err != nil {
			return &PricingDecodeError{Pool: pool.Address, Err: err}
		}

		state := v3math.PoolState{SqrtPriceX96: sqrtPrice, Tick: tick, Liquidity: liquidity}
		if err := state.Validate(); err != nil {
			return &PricingDecodeError{Pool: pool.Address, Err: err}
		}
		e.checkTick(pool.Address, state)

		var rate *big.Rat
		if targetIsToken0 {
			rate = state.Token0PerToken1(pair.Token0.Decimals, pair.Token1.Decimals)
		} else {
			rate = state.Token1PerToken0(pair.Token0.Decimals, pair.Token1.Decimals)
		}
		if rate == nil {
			return &PricingDecodeError{Pool: pool.Address, Err: fmt.Errorf("sqrt price %s yields no rate", sqrtPrice.String())}
		}

		pool.Liquidity = liquidity
		pool.SqrtPriceX96 = sqrtPrice
		pool.Tick = tick
		pool.Price = v3math.FormatSignificant(rate, priceDigits)

		price, err := strconv.ParseFloat(pool.Price, 64)
		if err != nil {
			return &PricingDecodeError{Pool: pool.Address, Err: fmt.Errorf("parse price %q: %w", pool.Price, err)}
		}
		pool.PriceUSD = price * nativeUSD
		pool.TVLUSD = pool.PriceUSD*pool.TokenReserve + nativeUSD*pool.NativeReserve

		e.logger.Info("pool priced",
			zap.String("pool", pool.Address.Hex()),
			zap.String("fee", pool.Fee.String()),
			zap.String("price", pool.Price),
			zap.Float64("price_usd", pool.PriceUSD),
			zap.Float64("tvl_usd", pool.TVLUSD))
	}
	return nil
}

// checkTick flags pools whose reported tick disagrees with the tick implied
// by the sqrt price. Purely diagnostic.
func (e *PricingEngine) checkTick(pool common.Address, state v3math.PoolState) {
	implied, err := v3math.TickAtSqrtRatio(state.SqrtPriceX96)
	if err != nil {
		return
	}
	if diff := implied - state.Tick; diff > 1 || diff < -1 {
		e.logger.Warn("pool tick disagrees with sqrt price",
			zap.String("pool", pool.Hex()),
			zap.Int32("tick", state.Tick),
			zap.Int32("implied", implied))
	}
}

func decodeLiquidity(poolABI abi.ABI, result chain.Result) (*big.Int, error) {
	if result.Err != nil {
		return nil, fmt.Errorf("call liquidity: %w", result.Err)
	}
	values, err := poolABI.Unpack("liquidity", result.Data)
	if err != nil {
		return nil, fmt.Errorf("unpack liquidity: %w", err)
	}
	if len(values) != 1 {
		return nil, fmt.Errorf("unexpected liquidity shape: %d values", len(values))
	}
	return asBigInt(values[0])
}

func decodeSlot0(poolABI abi.ABI, result chain.Result) (*big.Int, int32, error) {
	if result.Err != nil {
		return nil, 0, fmt.Errorf("call slot0: %w", result.Err)
	}
	values, err := poolABI.Unpack("slot0", result.Data)
	if err != nil {
		return nil, 0, fmt.Errorf("unpack slot0: %w", err)
	}
	if len(values) != 7 {
		return nil, 0, fmt.Errorf("unexpected slot0 shape: %d fields", len(values))
	}
	sqrtPrice, err := asBigInt(values[0])
	if err != nil {
		return nil, 0, fmt.Errorf("sqrt price: %w", err)
	}
	tickInt, err := asBigInt(values[1])
	if err != nil {
		return nil, 0, fmt.Errorf("tick: %w", err)
	}
	tick, err := int24FromBig(tickInt)
	if err != nil {
		return nil, 0, fmt.Errorf("tick: %w", err)
	}
	return sqrtPrice, tick, nil
}
