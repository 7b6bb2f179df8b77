package dex

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/BilalMir135/uniswapv3-pool-data/internal/chain"
)

// TokenResolver loads ERC20 metadata for scan targets.
type TokenResolver struct {
	caller Caller
	logger *zap.Logger
}

func NewTokenResolver(caller Caller, logger *zap.Logger) *TokenResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TokenResolver{caller: caller, logger: logger}
}

// Resolve loads name, symbol and decimals for the token in one batched
// round trip. Tokens exposing bytes32 name/symbol are decoded through the
// fallback ABI from the same response bytes, so no extra round trip is
// needed. All three fields are required: any revert or undecodable field
// fails the scan with a MetadataError.
func (r *TokenResolver) Resolve(ctx context.Context, token common.Address) (Token, error) {
	stringABI, err := erc20ABIStringInstance()
	if err != nil {
		return Token{}, fmt.Errorf("parse erc20 string abi: %w", err)
	}
	bytes32ABI, err := erc20ABIBytes32Instance()
	if err != nil {
		return Token{}, fmt.Errorf("parse erc20 bytes32 abi: %w", err)
	}

	methods := []string{"name", "symbol", "decimals"}
	calls := make([]chain.Call, 0, len(methods))
	for _, method := range methods {
		data, err := stringABI.Pack(method)
		if err != nil {
			return Token{}, fmt.Errorf("pack %s: %w", method, err)
		}
		calls = append(calls, chain.Call{To: token, Data: data})
	}

	results, err := r.caller.BatchCallContract(ctx, calls)
	if err != nil {
		return Token{}, &MetadataError{Token: token, Err: err}
	}
	for i, result := range results {
		if result.Err != nil {
			return Token{}, &MetadataError{Token: token, Err: fmt.Errorf("call %s: %w", methods[i], result.Err)}
		}
	}

	name, err := decodeTokenString(stringABI, bytes32ABI, "name", results[0].Data)
	if err != nil {
		return Token{}, &MetadataError{Token: token, Err: err}
	}
	symbol, err := decodeTokenString(stringABI, bytes32ABI, "symbol", results[1].Data)
	if err != nil {
		return Token{}, &MetadataError{Token: token, Err: err}
	}

	values, err := stringABI.Unpack("decimals", results[2].Data)
	if err != nil {
		return Token{}, &MetadataError{Token: token, Err: fmt.Errorf("unpack decimals: %w", err)}
	}
	if len(values) != 1 {
		return Token{}, &MetadataError{Token: token, Err: fmt.Errorf("unexpected decimals shape: %d values", len(values))}
	}
	decimals, err := asUint8(values[0])
	if err != nil {
		return Token{}, &MetadataError{Token: token, Err: fmt.Errorf("decimals: %w", err)}
	}

	r.logger.Debug("token metadata resolved",
		zap.String("token", token.Hex()),
		zap.String("symbol", symbol),
		zap.Uint8("decimals", decimals))

	return Token{Address: token, Symbol: symbol, Name: name, Decimals: decimals}, nil
}

// decodeTokenString decodes a string-typed ERC20 return value, retrying the
// same bytes against the bytes32 ABI for non-standard tokens.
func decodeTokenString(stringABI, bytes32ABI abi.ABI, method string, data []byte) (string, error) {
	if values, err := stringABI.Unpack(method, data); err == nil && len(values) == 1 {
		if s, ok := values[0].(string); ok {
			return s, nil
		}
	}
	values, err := bytes32ABI.Unpack(method, data)
	if err != nil {
		return "", fmt.Errorf("unpack %s: %w", method, err)
	}
	if len(values) != 1 {
		return "", fmt.Errorf("unexpected %s shape: %d values", method, len(values))
	}
	s, ok := bytes32ToString(values[0])
	if !ok {
		return "", fmt.Errorf("unpack %s: unsupported type %T", method, values[0])
	}
	return s, nil
}
