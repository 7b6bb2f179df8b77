package dex

import (
	"context"
	"encoding/hex"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/BilalMir135/uniswapv3-pool-data/internal/chain"
)

// fakeCaller answers batched calls from a canned response table keyed by
// target address and calldata. Calls without a stub revert, like a node
// would report for an unknown method.
type fakeCaller struct {
	responses map[string]chain.Result
	batches   [][]chain.Call
	batchErr  error
}

func newFakeCaller() *fakeCaller {
	return &fakeCaller{responses: make(map[string]chain.Result)}
}

func callKey(to common.Address, data []byte) string {
	return to.Hex() + ":" + hex.EncodeToString(data)
}

func (f *fakeCaller) stub(to common.Address, data, out []byte) {
	f.responses[callKey(to, data)] = chain.Result{Data: out}
}

func (f *fakeCaller) stubErr(to common.Address, data []byte, err error) {
	f.responses[callKey(to, data)] = chain.Result{Err: err}
}

func (f *fakeCaller) BatchCallContract(_ context.Context, calls []chain.Call) ([]chain.Result, error) {
	f.batches = append(f.batches, calls)
	if f.batchErr != nil {
		return nil, f.batchErr
	}
	results := make([]chain.Result, len(calls))
	for i, call := range calls {
		result, ok := f.responses[callKey(call.To, call.Data)]
		if !ok {
			results[i] = chain.Result{Err: errors.New("execution reverted")}
			continue
		}
		results[i] = result
	}
	return results, nil
}

func mustABI(t *testing.T, get func() (abi.ABI, error)) abi.ABI {
	t.Helper()
	parsed, err := get()
	if err != nil {
		t.Fatalf("parse abi: %v", err)
	}
	return parsed
}

func mustPackCall(t *testing.T, parsed abi.ABI, method string, args ...interface{}) []byte {
	t.Helper()
	data, err := parsed.Pack(method, args...)
	if err != nil {
		t.Fatalf("pack %s: %v", method, err)
	}
	return data
}

func mustPackOutputs(t *testing.T, parsed abi.ABI, method string, values ...interface{}) []byte {
	t.Helper()
	data, err := parsed.Methods[method].Outputs.Pack(values...)
	if err != nil {
		t.Fatalf("pack %s outputs: %v", method, err)
	}
	return data
}

// encodePriceSqrt builds the sqrt price a pool holding the given raw
// reserves would report: sqrt(reserve1/reserve0) * 2^96.
func encodePriceSqrt(reserve1, reserve0 *big.Int) *big.Int {
	num := new(big.Int).Mul(reserve1, new(big.Int).Lsh(big.NewInt(1), 192))
	ratio := new(big.Int).Div(num, reserve0)
	return new(big.Int).Sqrt(ratio)
}

func mustBigFromString(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		t.Fatalf("bad integer literal %q", s)
	}
	return v
}
