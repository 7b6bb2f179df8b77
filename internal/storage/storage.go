package storage

import (
	"context"

	"github.com/BilalMir135/uniswapv3-pool-data/internal/model"
)

// Storage defines a sink for completed scans.
type Storage interface {
	SaveScan(ctx context.Context, scan model.Scan) error
}
