package dex

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/BilalMir135/uniswapv3-pool-data/internal/chain"
	"github.com/BilalMir135/uniswapv3-pool-data/internal/model"
)

// Discovery finds V3 pools for a pair through the factory contract.
type Discovery struct {
	factory common.Address
	caller  Caller
	logger  *zap.Logger
}

func NewDiscovery(factory common.Address, caller Caller, logger *zap.Logger) *Discovery {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Discovery{factory: factory, caller: caller, logger: logger}
}

// FindPools queries getPool for every fee tier in one batched round trip.
// A zero address means no pool exists at that tier and is skipped silently.
// A failed tier lookup is logged and dropped without failing the scan.
// Result order follows the fee tier enumeration order.
func (d *Discovery) FindPools(ctx context.Context, pair Pair) ([]*Pool, error) {
	factoryABI, err := V3FactoryABI()
	if err != nil {
		return nil, fmt.Errorf("parse factory abi: %w", err)
	}

	tiers := model.FeeTiers()
	calls := make([]chain.Call, 0, len(tiers))
	for _, tier := range tiers {
		data, err := factoryABI.Pack("getPool",
			pair.Token0.Address,
			pair.Token1.Address,
			new(big.Int).SetUint64(uint64(tier)))
		if err != nil {
			return nil, fmt.Errorf("pack getPool: %w", err)
		}
		calls = append(calls, chain.Call{To: d.factory, Data: data})
	}

	results, err := d.caller.BatchCallContract(ctx, calls)
	if err != nil {
		return nil, fmt.Errorf("factory batch: %w", err)
	}

	pools := make([]*Pool, 0, len(tiers))
	for i, result := range results {
		tier := tiers[i]
		pool, err := decodePoolAddress(factoryABI, result)
		if err != nil {
			d.logger.Warn("fee tier lookup failed",
				zap.Uint32("fee", uint32(tier)),
				zap.Error(err))
			continue
		}
		if pool == (common.Address{}) {
			continue
		}
		pools = append(pools, &Pool{Address: pool, Fee: tier})
	}

	d.logger.Info("pool discovery finished",
		zap.String("token0", pair.Token0.Address.Hex()),
		zap.String("token1", pair.Token1.Address.Hex()),
		zap.Int("pools", len(pools)))
	return pools, nil
}

func decodePoolAddress(factoryABI abi.ABI, result chain.Result) (common.Address, error) {
	if result.Err != nil {
		return common.Address{}, fmt.Errorf("call getPool: %w", result.Err)
	}
	values, err := factoryABI.Unpack("getPool", result.Data)
	if err != nil {
		return common.Address{}, fmt.Errorf("unpack getPool: %w", err)
	}
	if len(values) != 1 {
		return common.Address{}, fmt.Errorf("unexpected getPool shape: %d values", len(values))
	}
	return asAddress(values[0])
}
