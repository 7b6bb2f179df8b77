package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BilalMir135/uniswapv3-pool-data/internal/config"
)

func runChains(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, nil)
	if err != nil {
		return err
	}

	for _, name := range config.ChainNames(cfg.Chains) {
		c := cfg.Chains[name]
		fmt.Printf("%-10s chain-id=%-6d wrapped-native=%s (%s) asset-id=%s\n",
			name, c.ChainID, c.WrappedNative.Symbol, c.WrappedNative.Address.Hex(), c.OracleAssetID)
		fmt.Printf("%-10s factory=%s rpc=%s\n", "", c.Factory.Hex(), c.RPCURL)
	}

	return nil
}
