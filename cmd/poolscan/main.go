package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "poolscan",
		Short:        "Uniswap V3 pool discovery and pricing",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	scanCmd := &cobra.Command{
		Use:   "scan <token-address>",
		Short: "Discover and price V3 pools pairing a token with the wrapped native currency",
		Args:  cobra.ExactArgs(1),
		RunE:  runScan,
	}

	scanCmd.Flags().String("chain", "ethereum", "chain to scan (see `poolscan chains`)")
	scanCmd.Flags().String("rpc", "", "RPC URL override for the selected chain")
	scanCmd.Flags().String("out", "", "optional JSONL file to append the scan to")
	scanCmd.Flags().String("pg-dsn", "", "optional Postgres DSN to persist the scan to")
	scanCmd.Flags().String("oracle-url", "", "price feed API root (default CoinGecko)")
	scanCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(scanCmd)

	chainsCmd := &cobra.Command{
		Use:   "chains",
		Short: "List configured chains",
		RunE:  runChains,
	}

	root.AddCommand(chainsCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
