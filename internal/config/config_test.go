package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/pflag"
)

func TestBuiltinChainsValidate(t *testing.T) {
	chains := BuiltinChains()
	if len(chains) == 0 {
		t.Fatal("no builtin chains")
	}
	for name, chain := range chains {
		if err := chain.Validate(); err != nil {
			t.Errorf("builtin chain %s does not validate: %v", name, err)
		}
		if chain.Name != name {
			t.Errorf("chain %s has mismatched name %q", name, chain.Name)
		}
	}

	eth := chains["ethereum"]
	if eth.Factory != common.HexToAddress("0x1F98431c8aD98523631AE4a59f267346ea31F748") {
		t.Errorf("ethereum factory = %s", eth.Factory.Hex())
	}
	if eth.OracleAssetID != "ethereum" {
		t.Errorf("ethereum asset id = %q", eth.OracleAssetID)
	}
	if chains["bsc"].OracleAssetID != "binancecoin" {
		t.Errorf("bsc asset id = %q", chains["bsc"].OracleAssetID)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Chain != "ethereum" {
		t.Errorf("chain = %q, want ethereum", cfg.Chain)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("log level = %q, want info", cfg.LogLevel)
	}
	if _, ok := cfg.Chains["ethereum"]; !ok {
		t.Error("builtin ethereum chain missing")
	}
}

func TestLoadFlags(t *testing.T) {
	fs := pflag.NewFlagSet("scan", pflag.ContinueOnError)
	fs.String("chain", "ethereum", "")
	fs.String("rpc", "", "")
	fs.String("log-level", "info", "")
	if err := fs.Parse([]string{"--chain", "polygon", "--rpc", "http://localhost:8545"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := Load("", fs)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	chain, err := cfg.ResolveChain()
	if err != nil {
		t.Fatalf("ResolveChain: %v", err)
	}
	if chain.Name != "polygon" {
		t.Errorf("chain = %q, want polygon", chain.Name)
	}
	if chain.RPCURL != "http://localhost:8545" {
		t.Errorf("rpc url = %q, want override", chain.RPCURL)
	}
	if chain.ChainID != 137 {
		t.Errorf("chain id = %d, want 137", chain.ChainID)
	}
}

func TestLoadConfigFile(t *testing.T) {
	content := `chain: base
out: ./pools.jsonl
chains:
  base:
    chain-id: 8453
    rpc: https://base-rpc.publicnode.com
    factory: "0x33128a8fC17869897dcE68Ed026d694621f6FDfD"
    asset-id: ethereum
    wrapped-native:
      address: "0x4200000000000000000000000000000000000006"
      symbol: WETH
      name: Wrapped Ether
      decimals: 18
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Chain != "base" {
		t.Errorf("chain = %q, want base", cfg.Chain)
	}
	if cfg.Out != "./pools.jsonl" {
		t.Errorf("out = %q", cfg.Out)
	}
	if _, ok := cfg.Chains["ethereum"]; !ok {
		t.Error("builtin ethereum chain missing after overlay")
	}

	chain, err := cfg.ResolveChain()
	if err != nil {
		t.Fatalf("ResolveChain: %v", err)
	}
	if chain.ChainID != 8453 {
		t.Errorf("chain id = %d, want 8453", chain.ChainID)
	}
	if chain.Factory != common.HexToAddress("0x33128a8fC17869897dcE68Ed026d694621f6FDfD") {
		t.Errorf("factory = %s", chain.Factory.Hex())
	}
	if chain.WrappedNative.Symbol != "WETH" || chain.WrappedNative.Decimals != 18 {
		t.Errorf("wrapped native = %+v", chain.WrappedNative)
	}
}

func TestLoadConfigFileBadChain(t *testing.T) {
	content := `chains:
  broken:
    chain-id: 99
    rpc: http://localhost:8545
    factory: "not-an-address"
    asset-id: test
    wrapped-native:
      address: "0x4200000000000000000000000000000000000006"
      symbol: WTEST
      name: Wrapped Test
      decimals: 18
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path, nil); err == nil || !strings.Contains(err.Error(), "factory") {
		t.Fatalf("Load error = %v, want factory address error", err)
	}
}

func TestResolveChainUnknown(t *testing.T) {
	cfg := Config{Chain: "solana", Chains: BuiltinChains()}
	if _, err := cfg.ResolveChain(); err == nil || !strings.Contains(err.Error(), "solana") {
		t.Fatalf("ResolveChain error = %v, want unknown chain error", err)
	}
}

func TestChainValidate(t *testing.T) {
	valid := BuiltinChains()["ethereum"]

	broken := valid
	broken.Factory = common.Address{}
	if err := broken.Validate(); err == nil {
		t.Error("zero factory accepted")
	}

	broken = valid
	broken.OracleAssetID = ""
	if err := broken.Validate(); err == nil {
		t.Error("empty asset id accepted")
	}

	broken = valid
	broken.WrappedNative.Decimals = 0
	if err := broken.Validate(); err == nil {
		t.Error("zero decimals accepted")
	}
}
