package dex

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"go.uber.org/zap"

	"github.com/BilalMir135/uniswapv3-pool-data/internal/chain"
	"github.com/BilalMir135/uniswapv3-pool-data/internal/v3math"
)

// ReserveFetcher loads the token balances a pool contract holds.
type ReserveFetcher struct {
	caller Caller
	logger *zap.Logger
}

func NewReserveFetcher(caller Caller, logger *zap.Logger) *ReserveFetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReserveFetcher{caller: caller, logger: logger}
}

// Fetch reads both ERC20 balances of every pool in one batched round trip
// (two calls per pool, paired layout) and fills raw plus decimal-normalized
// reserves. Any failed or undecodable read aborts the scan with a
// ReserveReadError; reserves are never zero-filled.
func (f *ReserveFetcher) Fetch(ctx context.Context, native, target Token, pools []*Pool) error {
	if len(pools) == 0 {
		return nil
	}

	erc20ABI, err := erc20ABIStringInstance()
	if err != nil {
		return fmt.Errorf("parse erc20 string abi: %w", err)
	}

	calls := make([]chain.Call, 0, 2*len(pools))
	for _, pool := range pools {
		data, err := erc20ABI.Pack("balanceOf", pool.Address)
		if err != nil {
			return fmt.Errorf("pack balanceOf: %w", err)
		}
		calls = append(calls, chain.Call{To: native.Address, Data: data})
		calls = append(calls, chain.Call{To: target.Address, Data: data})
	}

	results, err := f.caller.BatchCallContract(ctx, calls)
	if err != nil {
		return fmt.Errorf("balance batch: %w", err)
	}

	for i, pool := range pools {
		nativeRaw, err := decodeBalance(erc20ABI, results[2*i])
		if err != nil {
			return &ReserveReadError{Pool: pool.Address, Token: native.Address, Err: err}
		}
		targetRaw, err := decodeBalance(erc20ABI, results[2*i+1])
		if err != nil {
			return &ReserveReadError{Pool: pool.Address, Token: target.Address, Err: err}
		}

		pool.RawNativeReserve = nativeRaw
		pool.RawTokenReserve = targetRaw
		pool.NativeReserve = v3math.NormalizeAmount(nativeRaw, native.Decimals)
		pool.TokenReserve = v3math.NormalizeAmount(targetRaw, target.Decimals)

		f.logger.Debug("pool reserves loaded",
			zap.String("pool", pool.Address.Hex()),
			zap.String("native_raw", nativeRaw.String()),
			zap.String("token_raw", targetRaw.String()))
	}
	return nil
}

func decodeBalance(erc20ABI abi.ABI, result chain.Result) (*big.Int, error) {
	if result.Err != nil {
		return nil, result.Err
	}
	values, err := erc20ABI.Unpack("balanceOf", result.Data)
	if err != nil {
		return nil, fmt.Errorf("unpack balanceOf: %w", err)
	}
	if len(values) != 1 {
		return nil, fmt.Errorf("unexpected balanceOf shape: %d values", len(values))
	}
	return asBigInt(values[0])
}
