package dex

import (
	"bytes"
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/BilalMir135/uniswapv3-pool-data/internal/chain"
)

// Caller dispatches batched read-only contract calls. *chain.Client
// satisfies it; tests substitute fakes.
type Caller interface {
	BatchCallContract(ctx context.Context, calls []chain.Call) ([]chain.Result, error)
}

// Token is a resolved ERC20 token taking part in a pair.
type Token struct {
	Address  common.Address
	Symbol   string
	Name     string
	Decimals uint8
}

// Pair holds a token pair in canonical ordering: Token0 is the token with
// the numerically lower address. Factory lookups and price orientation both
// rely on this single ordering decision.
type Pair struct {
	Token0 Token
	Token1 Token
}

// NewPair orders two tokens canonically. The result does not depend on
// argument order.
func NewPair(a, b Token) Pair {
	if bytes.Compare(a.Address.Bytes(), b.Address.Bytes()) > 0 {
		a, b = b, a
	}
	return Pair{Token0: a, Token1: b}
}
