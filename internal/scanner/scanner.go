package scanner

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/BilalMir135/uniswapv3-pool-data/internal/config"
	"github.com/BilalMir135/uniswapv3-pool-data/internal/dex"
	"github.com/BilalMir135/uniswapv3-pool-data/internal/model"
)

// ChainIDReader reports the chain id of the connected node.
type ChainIDReader interface {
	GetChainID(ctx context.Context) (*big.Int, error)
}

// MetadataResolver loads ERC20 metadata for a token address.
type MetadataResolver interface {
	Resolve(ctx context.Context, token common.Address) (dex.Token, error)
}

// PoolFinder queries the factory for pools of an ordered pair.
type PoolFinder interface {
	FindPools(ctx context.Context, pair dex.Pair) ([]*dex.Pool, error)
}

// ReserveFetcher loads raw and normalized reserves into pools.
type ReserveFetcher interface {
	Fetch(ctx context.Context, native, target dex.Token, pools []*dex.Pool) error
}

// PricingEngine loads pool state and derives price, priceUSD and TVL.
type PricingEngine interface {
	Price(ctx context.Context, pair dex.Pair, native dex.Token, nativeUSD float64, pools []*dex.Pool) error
}

// PriceOracle quotes the chain's native asset in USD.
type PriceOracle interface {
	USDPrice(ctx context.Context, assetID string) (float64, error)
}

// Deps bundles the collaborators a Scanner drives.
type Deps struct {
	Reader   ChainIDReader
	Tokens   MetadataResolver
	Pools    PoolFinder
	Reserves ReserveFetcher
	Pricing  PricingEngine
	Oracle   PriceOracle
}

// Scanner runs the full discovery and pricing sequence for one token
// against the chain's wrapped native currency.
type Scanner struct {
	cfg    config.Chain
	deps   Deps
	logger *zap.Logger
}

// NewScanner builds a Scanner with its dependencies.
func NewScanner(cfg config.Chain, deps Deps, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{cfg: cfg, deps: deps, logger: logger}
}

// Scan discovers and prices every pool pairing token with the wrapped
// native currency. The native USD quote is fetched once per scan, and only
// when at least one pool exists. Each scan is an independent request; no
// state carries over between calls.
func (s *Scanner) Scan(ctx context.Context, token common.Address) (*model.Scan, error) {
	if s.deps.Reader == nil {
		return nil, fmt.Errorf("chain reader is nil")
	}
	if s.deps.Tokens == nil {
		return nil, fmt.Errorf("metadata resolver is nil")
	}
	if s.deps.Pools == nil {
		return nil, fmt.Errorf("pool finder is nil")
	}
	if s.deps.Reserves == nil {
		return nil, fmt.Errorf("reserve fetcher is nil")
	}
	if s.deps.Pricing == nil {
		return nil, fmt.Errorf("pricing engine is nil")
	}
	if s.deps.Oracle == nil {
		return nil, fmt.Errorf("price oracle is nil")
	}
	if token == (common.Address{}) {
		return nil, fmt.Errorf("token address is zero")
	}
	if token == s.cfg.WrappedNative.Address {
		return nil, fmt.Errorf("token %s is the wrapped native token, nothing to pair it against", token.Hex())
	}

	chainID, err := s.deps.Reader.GetChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("get chain id: %w", err)
	}
	if !chainID.IsUint64() || chainID.Uint64() != s.cfg.ChainID {
		return nil, fmt.Errorf("connected node reports chain id %s, configuration for %s expects %d",
			chainID, s.cfg.Name, s.cfg.ChainID)
	}

	s.logger.Info("scan start",
		zap.String("chain", s.cfg.Name),
		zap.String("token", token.Hex()),
	)

	target, err := s.deps.Tokens.Resolve(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("resolve token metadata: %w", err)
	}

	native := dex.Token{
		Address:  s.cfg.WrappedNative.Address,
		Symbol:   s.cfg.WrappedNative.Symbol,
		Name:     s.cfg.WrappedNative.Name,
		Decimals: s.cfg.WrappedNative.Decimals,
	}
	pair := dex.NewPair(target, native)

	pools, err := s.deps.Pools.FindPools(ctx, pair)
	if err != nil {
		return nil, fmt.Errorf("discover pools: %w", err)
	}

	if err := s.deps.Reserves.Fetch(ctx, native, target, pools); err != nil {
		return nil, fmt.Errorf("fetch reserves: %w", err)
	}

	var nativeUSD float64
	if len(pools) > 0 {
		nativeUSD, err = s.deps.Oracle.USDPrice(ctx, s.cfg.OracleAssetID)
		if err != nil {
			return nil, fmt.Errorf("native usd price: %w", err)
		}
		if err := s.deps.Pricing.Price(ctx, pair, native, nativeUSD, pools); err != nil {
			return nil, fmt.Errorf("price pools: %w", err)
		}
	}

	scan := buildScan(s.cfg, target, native, nativeUSD, pools)
	s.logger.Info("scan complete",
		zap.String("token", scan.Token.Symbol),
		zap.Int("pools", len(scan.Pools)),
		zap.Float64("native_usd", nativeUSD),
	)
	return scan, nil
}

func buildScan(cfg config.Chain, target, native dex.Token, nativeUSD float64, pools []*dex.Pool) *model.Scan {
	out := make([]model.Pool, 0, len(pools))
	for _, pool := range pools {
		out = append(out, poolToModel(pool))
	}
	return &model.Scan{
		Chain:         cfg.Name,
		ChainID:       cfg.ChainID,
		Token:         tokenToModel(target),
		WrappedNative: tokenToModel(native),
		NativeUSD:     nativeUSD,
		Pools:         out,
		ScannedAt:     time.Now().Unix(),
	}
}

func tokenToModel(t dex.Token) model.Token {
	return model.Token{
		Address:  t.Address.Hex(),
		Decimals: t.Decimals,
		Symbol:   t.Symbol,
		Name:     t.Name,
	}
}

func poolToModel(p *dex.Pool) model.Pool {
	out := model.Pool{
		Address:       p.Address.Hex(),
		Fee:           p.Fee,
		FeePercent:    p.Fee.String(),
		NativeReserve: p.NativeReserve,
		TokenReserve:  p.TokenReserve,
		Tick:          p.Tick,
		Price:         p.Price,
		PriceUSD:      p.PriceUSD,
		TVLUSD:        p.TVLUSD,
	}
	if p.RawNativeReserve != nil {
		out.RawNativeReserve = p.RawNativeReserve.String()
	}
	if p.RawTokenReserve != nil {
		out.RawTokenReserve = p.RawTokenReserve.String()
	}
	if p.Liquidity != nil {
		out.Liquidity = p.Liquidity.String()
	}
	if p.SqrtPriceX96 != nil {
		out.SqrtPriceX96 = p.SqrtPriceX96.String()
	}
	return out
}
