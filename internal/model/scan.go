package model

// Scan is the full result of scanning one token on one chain.
type Scan struct {
	Chain         string  `json:"chain"`
	ChainID       uint64  `json:"chain_id"`
	Token         Token   `json:"token"`
	WrappedNative Token   `json:"wrapped_native"`
	NativeUSD     float64 `json:"native_usd"`
	Pools         []Pool  `json:"pools"`
	ScannedAt     int64   `json:"scanned_at"`
}

// HasPools reports whether the scan found at least one pool.
func (s Scan) HasPools() bool {
	return len(s.Pools) > 0
}
