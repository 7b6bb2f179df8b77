package config

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds configuration values loaded from flags, env, or config file.
type Config struct {
	Chain     string
	RPCURL    string
	Out       string
	PGDSN     string
	OracleURL string
	LogLevel  string
	Chains    map[string]Chain
}

// chainFile is the config-file shape of a chain entry under the "chains" key.
type chainFile struct {
	ChainID       uint64 `mapstructure:"chain-id"`
	RPC           string `mapstructure:"rpc"`
	Factory       string `mapstructure:"factory"`
	AssetID       string `mapstructure:"asset-id"`
	WrappedNative struct {
		Address  string `mapstructure:"address"`
		Symbol   string `mapstructure:"symbol"`
		Name     string `mapstructure:"name"`
		Decimals uint8  `mapstructure:"decimals"`
	} `mapstructure:"wrapped-native"`
}

// Load merges config file, environment variables, and flags into Config.
// Chains defined in the config file are overlaid on the built-in registry.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("POOLSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("chain", "ethereum")
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		Chain:     v.GetString("chain"),
		RPCURL:    v.GetString("rpc"),
		Out:       v.GetString("out"),
		PGDSN:     v.GetString("pg-dsn"),
		OracleURL: v.GetString("oracle-url"),
		LogLevel:  v.GetString("log-level"),
		Chains:    BuiltinChains(),
	}

	if v.IsSet("chains") {
		var entries map[string]chainFile
		if err := v.UnmarshalKey("chains", &entries); err != nil {
			return Config{}, fmt.Errorf("parse chains: %w", err)
		}
		for name, entry := range entries {
			chain, err := chainFromFile(name, entry)
			if err != nil {
				return Config{}, err
			}
			cfg.Chains[name] = chain
		}
	}

	return cfg, nil
}

// ResolveChain looks up the selected chain, applies the RPC override, and
// validates the result.
func (c Config) ResolveChain() (Chain, error) {
	chain, ok := c.Chains[c.Chain]
	if !ok {
		return Chain{}, fmt.Errorf("unknown chain %q, configured chains: %s",
			c.Chain, strings.Join(ChainNames(c.Chains), ", "))
	}
	if c.RPCURL != "" {
		chain.RPCURL = c.RPCURL
	}
	if err := chain.Validate(); err != nil {
		return Chain{}, err
	}
	return chain, nil
}

func chainFromFile(name string, entry chainFile) (Chain, error) {
	factory, err := parseAddress(entry.Factory)
	if err != nil {
		return Chain{}, fmt.Errorf("chain %s: factory: %w", name, err)
	}
	wrapped, err := parseAddress(entry.WrappedNative.Address)
	if err != nil {
		return Chain{}, fmt.Errorf("chain %s: wrapped-native address: %w", name, err)
	}
	chain := Chain{
		Name:    name,
		ChainID: entry.ChainID,
		RPCURL:  entry.RPC,
		Factory: factory,
		WrappedNative: NativeToken{
			Address:  wrapped,
			Symbol:   entry.WrappedNative.Symbol,
			Name:     entry.WrappedNative.Name,
			Decimals: entry.WrappedNative.Decimals,
		},
		OracleAssetID: entry.AssetID,
	}
	if err := chain.Validate(); err != nil {
		return Chain{}, err
	}
	return chain, nil
}

func parseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid address %q", s)
	}
	return common.HexToAddress(s), nil
}
