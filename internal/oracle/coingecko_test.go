package oracle

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestUSDPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/simple/price" {
			t.Errorf("path = %q, want /simple/price", r.URL.Path)
		}
		q := r.URL.Query()
		if got := q.Get("ids"); got != "ethereum" {
			t.Errorf("ids = %q, want ethereum", got)
		}
		if got := q.Get("vs_currencies"); got != "usd" {
			t.Errorf("vs_currencies = %q, want usd", got)
		}
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(`{"ethereum":{"usd":3500.25}}`)); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	price, err := client.USDPrice(context.Background(), "ethereum")
	if err != nil {
		t.Fatalf("USDPrice: %v", err)
	}
	if price != 3500.25 {
		t.Fatalf("price = %v, want 3500.25", price)
	}
}

func TestUSDPriceFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "too many requests", http.StatusTooManyRequests)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"ethereum":`))
			},
		},
		{
			name: "asset missing",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{}`))
			},
		},
		{
			name: "usd quote missing",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"ethereum":{"eur":3200}}`))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := NewClient(srv.URL, nil)
			_, err := client.USDPrice(context.Background(), "ethereum")
			var unavailable *UnavailableError
			if !errors.As(err, &unavailable) {
				t.Fatalf("USDPrice error = %v, want UnavailableError", err)
			}
			if unavailable.AssetID != "ethereum" {
				t.Fatalf("asset id = %q, want ethereum", unavailable.AssetID)
			}
		})
	}
}

func TestNewClientDefaultBaseURL(t *testing.T) {
	client := NewClient("", nil)
	if client.baseURL != DefaultBaseURL {
		t.Fatalf("base url = %q, want %q", client.baseURL, DefaultBaseURL)
	}
}
