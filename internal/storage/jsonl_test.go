package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/BilalMir135/uniswapv3-pool-data/internal/model"
)

func TestJsonlSaveScan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "scans.jsonl")
	sink := NewJsonlStorage(path)

	first := model.Scan{
		Chain:   "ethereum",
		ChainID: 1,
		Token:   model.Token{Address: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", Symbol: "USDC", Decimals: 6},
		Pools: []model.Pool{{
			Address:          "0x88e6A0c2dDD26FEEb64F039a2c41296FcB3f5640",
			Fee:              model.FeeLow,
			RawNativeReserve: "500000000000000000",
			Price:            "2000",
		}},
		NativeUSD: 3500,
		ScannedAt: 1700000000,
	}
	second := model.Scan{Chain: "ethereum", ChainID: 1, ScannedAt: 1700000060}

	if err := sink.SaveScan(context.Background(), first); err != nil {
		t.Fatalf("SaveScan: %v", err)
	}
	if err := sink.SaveScan(context.Background(), second); err != nil {
		t.Fatalf("SaveScan: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer file.Close()

	var lines []model.Scan
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var s model.Scan
		if err := json.Unmarshal(scanner.Bytes(), &s); err != nil {
			t.Fatalf("unmarshal line: %v", err)
		}
		lines = append(lines, s)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("read output: %v", err)
	}

	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if lines[0].Token.Symbol != "USDC" || len(lines[0].Pools) != 1 {
		t.Errorf("first scan = %+v", lines[0])
	}
	if lines[0].Pools[0].RawNativeReserve != "500000000000000000" {
		t.Errorf("raw native reserve = %q", lines[0].Pools[0].RawNativeReserve)
	}
	if lines[1].ScannedAt != 1700000060 {
		t.Errorf("second scan = %+v", lines[1])
	}
}
