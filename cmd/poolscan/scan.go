package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BilalMir135/uniswapv3-pool-data/internal/chain"
	"github.com/BilalMir135/uniswapv3-pool-data/internal/config"
	"github.com/BilalMir135/uniswapv3-pool-data/internal/dex"
	"github.com/BilalMir135/uniswapv3-pool-data/internal/model"
	"github.com/BilalMir135/uniswapv3-pool-data/internal/oracle"
	"github.com/BilalMir135/uniswapv3-pool-data/internal/scanner"
	"github.com/BilalMir135/uniswapv3-pool-data/internal/storage"
	"github.com/BilalMir135/uniswapv3-pool-data/internal/storage/postgres"
)

func runScan(cmd *cobra.Command, args []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if !common.IsHexAddress(args[0]) {
		return fmt.Errorf("invalid token address %q", args[0])
	}
	token := common.HexToAddress(args[0])

	chainCfg, err := cfg.ResolveChain()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	chainClient, err := chain.NewClient(ctx, chainCfg.RPCURL)
	if err != nil {
		return fmt.Errorf("connect rpc: %w", err)
	}
	defer chainClient.Close()

	s := scanner.NewScanner(chainCfg, scanner.Deps{
		Reader:   chainClient,
		Tokens:   dex.NewTokenResolver(chainClient, logger),
		Pools:    dex.NewDiscovery(chainCfg.Factory, chainClient, logger),
		Reserves: dex.NewReserveFetcher(chainClient, logger),
		Pricing:  dex.NewPricingEngine(chainClient, logger),
		Oracle:   oracle.NewClient(cfg.OracleURL, logger),
	}, logger)

	logger.Info("scan",
		zap.String("chain", chainCfg.Name),
		zap.String("rpc", chainCfg.RPCURL),
		zap.String("token", token.Hex()),
	)

	scan, err := s.Scan(ctx, token)
	if err != nil {
		return err
	}

	if err := writeScan(os.Stdout, scan); err != nil {
		return fmt.Errorf("write scan: %w", err)
	}

	if cfg.Out != "" {
		if err := storage.NewJsonlStorage(cfg.Out).SaveScan(ctx, *scan); err != nil {
			return fmt.Errorf("save scan to jsonl: %w", err)
		}
	}

	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()
		if err := store.SaveScan(ctx, *scan); err != nil {
			return fmt.Errorf("save scan to postgres: %w", err)
		}
	}

	return nil
}

func writeScan(w io.Writer, scan *model.Scan) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(scan)
}
