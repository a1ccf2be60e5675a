package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"solana_portfolio/internal/entity"

	"go.uber.org/zap"
)

const sampleAssetsResponse = `{
  "jsonrpc": "2.0",
  "id": "portfolio-owner",
  "result": {
    "total": 3,
    "limit": 1000,
    "page": 1,
    "items": [
      {
        "interface": "FungibleToken",
        "id": "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
        "content": {"metadata": {"name": "USD Coin", "symbol": "USDC"}},
        "token_info": {
          "symbol": "USDC",
          "balance": 1500000,
          "decimals": 6,
          "price_info": {"price_per_token": 1.0, "total_price": 1.5, "currency": "USDC"}
        }
      },
      {"interface": "V1_NFT", "id": "nft1"},
      {"interface": "FungibleToken", "id": "unpriced", "token_info": {"symbol": "MEME", "balance": 5, "decimals": 0}}
    ]
  }
}`

func newTestHeliusServer(t *testing.T, status int, body string, check func(req entity.RPCRequest, params entity.AssetsByOwnerParams)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		raw, _ := io.ReadAll(r.Body)
		var req struct {
			entity.RPCRequest
			Params entity.AssetsByOwnerParams `json:"params"`
		}
		if err := json.Unmarshal(raw, &req); err != nil {
			t.Errorf("request is not valid JSON: %v", err)
		}
		if check != nil {
			check(req.RPCRequest, req.Params)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
}

func TestHeliusClient_GetAssetsByOwner(t *testing.T) {
	srv := newTestHeliusServer(t, http.StatusOK, sampleAssetsResponse, func(req entity.RPCRequest, params entity.AssetsByOwnerParams) {
		if req.JSONRPC != "2.0" || req.Method != "getAssetsByOwner" {
			t.Errorf("unexpected envelope %+v", req)
		}
		if params.OwnerAddress != "owner" || params.Page != 1 || params.Limit != 1000 || !params.DisplayOptions.ShowFungible {
			t.Errorf("unexpected params %+v", params)
		}
	})
	defer srv.Close()

	c := NewHeliusClient(nil, srv.URL, 5*time.Second, nil, zap.NewNop(), 0)
	list, err := c.GetAssetsByOwner(context.Background(), "owner")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if list.Total != 3 || list.Limit != 1000 || len(list.Items) != 3 {
		t.Fatalf("unexpected list %+v", list)
	}
	usdc := list.Items[0]
	if !usdc.Eligible() || usdc.DisplaySymbol() != "USDC" || usdc.TokenInfo.PriceInfo.TotalPrice != 1.5 {
		t.Errorf("unexpected first item %+v", usdc)
	}
	if list.Items[1].Eligible() || list.Items[2].Eligible() {
		t.Errorf("NFT and unpriced items must not be eligible")
	}
}

func TestHeliusClient_ReportsRPCError(t *testing.T) {
	srv := newTestHeliusServer(t, http.StatusOK, `{"jsonrpc":"2.0","id":"x","error":{"code":-32602,"message":"invalid owner"}}`, nil)
	defer srv.Close()

	c := NewHeliusClient(nil, srv.URL, 5*time.Second, nil, zap.NewNop(), 10)
	_, err := c.GetAssetsByOwner(context.Background(), "owner")
	if err == nil || !strings.Contains(err.Error(), "invalid owner") {
		t.Fatalf("expected RPC error message, got %v", err)
	}
}

func TestHeliusClient_ReportsHTTPStatus(t *testing.T) {
	srv := newTestHeliusServer(t, http.StatusUnauthorized, `{"error":"bad key"}`, nil)
	defer srv.Close()

	c := NewHeliusClient(nil, srv.URL, 5*time.Second, nil, zap.NewNop(), 10)
	_, err := c.GetAssetsByOwner(context.Background(), "owner")
	if err == nil || !strings.Contains(err.Error(), "401") {
		t.Fatalf("expected status in error, got %v", err)
	}
}

func TestHeliusClient_RejectsMissingResult(t *testing.T) {
	srv := newTestHeliusServer(t, http.StatusOK, `{"jsonrpc":"2.0","id":"x"}`, nil)
	defer srv.Close()

	c := NewHeliusClient(nil, srv.URL, 5*time.Second, nil, zap.NewNop(), 10)
	if _, err := c.GetAssetsByOwner(context.Background(), "owner"); err == nil {
		t.Fatal("expected an error for a response without result")
	}
}

func TestHeliusClient_HonoursCancelledContext(t *testing.T) {
	c := NewHeliusClient(nil, "http://127.0.0.1:1", time.Second, nil, zap.NewNop(), 10)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.GetAssetsByOwner(ctx, "owner"); err == nil {
		t.Fatal("expected an error for a cancelled context")
	}
}
