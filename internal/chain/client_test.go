package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

type rpcRequest struct {
	ID     json.RawMessage   `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  interface{}     `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

func TestBatchCallContractOrderAndPartialFailure(t *testing.T) {
	target := common.HexToAddress("0x00000000000000000000000000000000000000aa")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var reqs []rpcRequest
		if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
			t.Errorf("decode batch: %v", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		resps := make([]rpcResponse, 0, len(reqs))
		for _, req := range reqs {
			if req.Method != "eth_call" {
				t.Errorf("unexpected method %q", req.Method)
			}
			var arg struct {
				To   string `json:"to"`
				Data string `json:"data"`
			}
			if err := json.Unmarshal(req.Params[0], &arg); err != nil {
				t.Errorf("decode call arg: %v", err)
			}
			resp := rpcResponse{JSONRPC: "2.0", ID: req.ID}
			if arg.Data == "0x02" {
				resp.Error = &rpcError{Code: 3, Message: "execution reverted"}
			} else {
				resp.Result = arg.Data + "ff"
			}
			resps = append(resps, resp)
		}

		// reply in reverse order to prove results are matched by id,
		// not by arrival order
		for i, j := 0, len(resps)-1; i < j; i, j = i+1, j-1 {
			resps[i], resps[j] = resps[j], resps[i]
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resps); err != nil {
			t.Errorf("encode batch: %v", err)
		}
	}))
	defer server.Close()

	ctx := context.Background()
	client, err := NewClient(ctx, server.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.Close()

	calls := []Call{
		{To: target, Data: []byte{0x01}},
		{To: target, Data: []byte{0x02}},
		{To: target, Data: []byte{0x03}},
	}
	results, err := client.BatchCallContract(ctx, calls)
	if err != nil {
		t.Fatalf("BatchCallContract: %v", err)
	}
	if len(results) != len(calls) {
		t.Fatalf("got %d results, want %d", len(results), len(calls))
	}
	if results[0].Err != nil || results[2].Err != nil {
		t.Fatalf("unexpected per-call errors: %v, %v", results[0].Err, results[2].Err)
	}
	if results[1].Err == nil || !strings.Contains(results[1].Err.Error(), "reverted") {
		t.Fatalf("call 1 error = %v, want revert", results[1].Err)
	}
	if want := []byte{0x01, 0xff}; !bytes.Equal(results[0].Data, want) {
		t.Fatalf("call 0 data = %x, want %x", results[0].Data, want)
	}
	if want := []byte{0x03, 0xff}; !bytes.Equal(results[2].Data, want) {
		t.Fatalf("call 2 data = %x, want %x", results[2].Data, want)
	}
}

func TestBatchCallContractEmpty(t *testing.T) {
	// an empty batch must not touch the network at all
	client := &Client{}
	results, err := client.BatchCallContract(context.Background(), nil)
	if err != nil {
		t.Fatalf("BatchCallContract: %v", err)
	}
	if results != nil {
		t.Fatalf("results = %v, want nil", results)
	}
}
