package model

// Pool is one discovered and priced Uniswap V3 pool. Wide on-chain integers
// (reserves, liquidity, sqrtPriceX96) are rendered as decimal strings so no
// precision is lost in JSON output.
type Pool struct {
	Address          string  `json:"address"`
	Fee              FeeTier `json:"fee"`
	FeePercent       string  `json:"fee_percent"`
	RawNativeReserve string  `json:"raw_native_reserve"`
	RawTokenReserve  string  `json:"raw_token_reserve"`
	NativeReserve    float64 `json:"native_reserve"`
	TokenReserve     float64 `json:"token_reserve"`
	Liquidity        string  `json:"liquidity"`
	SqrtPriceX96     string  `json:"sqrt_price_x96"`
	Tick             int32   `json:"tick"`
	Price            string  `json:"price"`
	PriceUSD         float64 `json:"price_usd"`
	TVLUSD           float64 `json:"tvl_usd"`
}
