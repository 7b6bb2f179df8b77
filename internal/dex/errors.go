package dex

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// MetadataError means ERC20 metadata for the scan target could not be
// resolved. A scan cannot continue without it.
type MetadataError struct {
	Token common.Address
	Err   error
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("token metadata unavailable for %s: %v", e.Token.Hex(), e.Err)
}

func (e *MetadataError) Unwrap() error { return e.Err }

// ReserveReadError means a balance read failed for a discovered pool.
// Reserves are never zero-filled; the scan fails instead.
type ReserveReadError struct {
	Pool  common.Address
	Token common.Address
	Err   error
}

func (e *ReserveReadError) Error() string {
	return fmt.Sprintf("reserve read failed for pool %s token %s: %v", e.Pool.Hex(), e.Token.Hex(), e.Err)
}

func (e *ReserveReadError) Unwrap() error { return e.Err }

// PricingDecodeError means pool state could not be read or decoded into the
// shape pricing needs. Pricing stops for the whole scan.
type PricingDecodeError struct {
	Pool common.Address
	Err  error
}

func (e *PricingDecodeError) Error() string {
	return fmt.Sprintf("pricing decode failed for pool %s: %v", e.Pool.Hex(), e.Err)
}

func (e *PricingDecodeError) Unwrap() error { return e.Err }
