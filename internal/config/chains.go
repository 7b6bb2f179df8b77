package config

import (
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/common"
)

// NativeToken describes the wrapped form of a chain's native currency.
type NativeToken struct {
	Address  common.Address
	Symbol   string
	Name     string
	Decimals uint8
}

// Chain is the static per-chain configuration a scan needs: where to find
// the V3 factory, what the wrapped native token is, and which asset id the
// price feed quotes the native currency under.
type Chain struct {
	Name          string
	ChainID       uint64
	RPCURL        string
	Factory       common.Address
	WrappedNative NativeToken
	OracleAssetID string
}

// Validate reports the first missing or malformed field. A chain that does
// not validate is a configuration error surfaced at startup.
func (c Chain) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("chain name is empty")
	}
	if c.ChainID == 0 {
		return fmt.Errorf("chain %s: chain id is zero", c.Name)
	}
	if c.RPCURL == "" {
		return fmt.Errorf("chain %s: rpc url is empty", c.Name)
	}
	if c.Factory == (common.Address{}) {
		return fmt.Errorf("chain %s: factory address is zero", c.Name)
	}
	if c.WrappedNative.Address == (common.Address{}) {
		return fmt.Errorf("chain %s: wrapped native address is zero", c.Name)
	}
	if c.WrappedNative.Symbol == "" {
		return fmt.Errorf("chain %s: wrapped native symbol is empty", c.Name)
	}
	if c.WrappedNative.Decimals == 0 {
		return fmt.Errorf("chain %s: wrapped native decimals is zero", c.Name)
	}
	if c.OracleAssetID == "" {
		return fmt.Errorf("chain %s: oracle asset id is empty", c.Name)
	}
	return nil
}

// BuiltinChains returns the chains shipped with the binary, keyed by name.
// Config files may add further chains or shadow these entries.
func BuiltinChains() map[string]Chain {
	return map[string]Chain{
		"ethereum": {
			Name:    "ethereum",
			ChainID: 1,
			RPCURL:  "https://ethereum-rpc.publicnode.com",
			Factory: common.HexToAddress("0x1F98431c8aD98523631AE4a59f267346ea31F748"),
			WrappedNative: NativeToken{
				Address:  common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"),
				Symbol:   "WETH",
				Name:     "Wrapped Ether",
				Decimals: 18,
			},
			OracleAssetID: "ethereum",
		},
		"bsc": {
			Name:    "bsc",
			ChainID: 56,
			RPCURL:  "https://bsc-rpc.publicnode.com",
			Factory: common.HexToAddress("0xdB1d10011AD0Ff90774D0C6Bb92e5C5c8b4461F7"),
			WrappedNative: NativeToken{
				Address:  common.HexToAddress("0xbb4CdB9CBd36B01bD1cBaEBF2De08d9173bc095c"),
				Symbol:   "WBNB",
				Name:     "Wrapped BNB",
				Decimals: 18,
			},
			OracleAssetID: "binancecoin",
		},
		"polygon": {
			Name:    "polygon",
			ChainID: 137,
			RPCURL:  "https://polygon-bor-rpc.publicnode.com",
			Factory: common.HexToAddress("0x1F98431c8aD98523631AE4a59f267346ea31F748"),
			WrappedNative: NativeToken{
				Address:  common.HexToAddress("0x0d500B1d8E8eF31E21C99d1Db9A6444d3ADf1270"),
				Symbol:   "WMATIC",
				Name:     "Wrapped Matic",
				Decimals: 18,
			},
			OracleAssetID: "matic-network",
		},
		"arbitrum": {
			Name:    "arbitrum",
			ChainID: 42161,
			RPCURL:  "https://arbitrum-one-rpc.publicnode.com",
			Factory: common.HexToAddress("0x1F98431c8aD98523631AE4a59f267346ea31F748"),
			WrappedNative: NativeToken{
				Address:  common.HexToAddress("0x82aF49447D8a07e3bd95BD0d56f35241523fBab1"),
				Symbol:   "WETH",
				Name:     "Wrapped Ether",
				Decimals: 18,
			},
			OracleAssetID: "ethereum",
		},
	}
}

// ChainNames returns the configured chain names in lexical order.
func ChainNames(chains map[string]Chain) []string {
	names := make([]string, 0, len(chains))
	for name := range chains {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
