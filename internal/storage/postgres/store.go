package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BilalMir135/uniswapv3-pool-data/internal/model"
)

// Store provides Postgres persistence for scan results.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// SaveScan writes the scan header and its pools in one batch round trip.
// Scan headers are keyed by (chain_id, token_address, scanned_at); pools are
// upserted on (chain_id, token_address, pool_address) so each pool row holds
// the latest observation.
func (s *Store) SaveScan(ctx context.Context, scan model.Scan) error {
	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO scans (
			chain_id, chain, token_address, token_symbol, token_name, token_decimals,
			wrapped_native_address, native_usd, pool_count, scanned_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, to_timestamp($10), now())
		ON CONFLICT (chain_id, token_address, scanned_at)
		DO UPDATE SET
			native_usd = EXCLUDED.native_usd,
			pool_count = EXCLUDED.pool_count
	`,
		int64(scan.ChainID),
		scan.Chain,
		scan.Token.Address,
		scan.Token.Symbol,
		scan.Token.Name,
		int16(scan.Token.Decimals),
		scan.WrappedNative.Address,
		scan.NativeUSD,
		len(scan.Pools),
		scan.ScannedAt,
	)

	for _, pool := range scan.Pools {
		batch.Queue(`
			INSERT INTO scan_pools (
				chain_id, token_address, pool_address, fee, fee_percent,
				raw_native_reserve, raw_token_reserve, native_reserve, token_reserve,
				liquidity, sqrt_price_x96, tick, price, price_usd, tvl_usd,
				scanned_at, created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,to_timestamp($16),now(),now())
			ON CONFLICT (chain_id, token_address, pool_address)
			DO UPDATE SET
				fee = EXCLUDED.fee,
				fee_percent = EXCLUDED.fee_percent,
				raw_native_reserve = EXCLUDED.raw_native_reserve,
				raw_token_reserve = EXCLUDED.raw_token_reserve,
				native_reserve = EXCLUDED.native_reserve,
				token_reserve = EXCLUDED.token_reserve,
				liquidity = EXCLUDED.liquidity,
				sqrt_price_x96 = EXCLUDED.sqrt_price_x96,
				tick = EXCLUDED.tick,
				price = EXCLUDED.price,
				price_usd = EXCLUDED.price_usd,
				tvl_usd = EXCLUDED.tvl_usd,
				scanned_at = EXCLUDED.scanned_at,
				updated_at = now()
		`,
			int64(scan.ChainID),
			scan.Token.Address,
			pool.Address,
			uint32(pool.Fee),
			pool.FeePercent,
			pool.RawNativeReserve,
			pool.RawTokenReserve,
			pool.NativeReserve,
			pool.TokenReserve,
			pool.Liquidity,
			pool.SqrtPriceX96,
			pool.Tick,
			pool.Price,
			pool.PriceUSD,
			pool.TVLUSD,
			scan.ScannedAt,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("save scan: %w", err)
		}
	}
	return nil
}
