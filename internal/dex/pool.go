package dex

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/BilalMir135/uniswapv3-pool-data/internal/model"
)

// Pool carries one pool through the scan stages. Fields are additive:
// discovery fills Address and Fee, the reserve stage fills the reserve
// fields, pricing fills the rest. A Pool never leaves a scan half-priced.
type Pool struct {
	Address common.Address
	Fee     model.FeeTier

	RawNativeReserve *big.Int
	RawTokenReserve  *big.Int
	NativeReserve    float64
	TokenReserve     float64

	Liquidity    *big.Int
	SqrtPriceX96 *big.Int
	Tick         int32
	Price        string
	PriceUSD     float64
	TVLUSD       float64
}
