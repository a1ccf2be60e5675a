package client

import (
	"context"
	stdjson "encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"solana_portfolio/internal/domain/entity"
	wire "solana_portfolio/internal/entity"
	"solana_portfolio/internal/pkg/logger"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

type rpcCall struct {
	ID     stdjson.RawMessage   `json:"id"`
	Method string               `json:"method"`
	Params []stdjson.RawMessage `json:"params"`
}

// newTestRPCServer answers JSON-RPC calls with the result returned by handle,
// echoing the request id.
func newTestRPCServer(t *testing.T, handle func(call rpcCall) string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var call rpcCall
		if err := stdjson.Unmarshal(raw, &call); err != nil {
			t.Errorf("bad request body %s: %v", raw, err)
		}
		id := string(call.ID)
		if id == "" {
			id = "1"
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"result":%s}`, id, handle(call))
	}))
}

func stakeAccountJSON(pubkey, stake string) string {
	info := `{"meta":{"authorized":{"staker":"x","withdrawer":"y"}}}`
	typ := "initialized"
	if stake != "" {
		typ = "delegated"
		info = fmt.Sprintf(`{"meta":{},"stake":{"delegation":{"voter":"Vote111111111111111111111111111111111111111","stake":%q}}}`, stake)
	}
	return fmt.Sprintf(`{
		"pubkey": %q,
		"account": {
			"data": {"program": "stake", "parsed": {"type": %q, "info": %s}, "space": 200},
			"executable": false,
			"lamports": 1002282880,
			"owner": "Stake11111111111111111111111111111111111111",
			"rentEpoch": 361,
			"space": 200
		}
	}`, pubkey, typ, info)
}

func TestSolanaClient_GetBalance(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	srv := newTestRPCServer(t, func(call rpcCall) string {
		if call.Method != "getBalance" {
			t.Errorf("unexpected method %s", call.Method)
		}
		var addr string
		stdjson.Unmarshal(call.Params[0], &addr)
		if addr != owner.String() {
			t.Errorf("unexpected address %s", addr)
		}
		return `{"context":{"slot":1},"value":2500000000}`
	})
	defer srv.Close()

	c := NewSolanaClient(nil, rpc.New(srv.URL), nil, 5*time.Second, logger.NewNop())
	got, err := c.GetBalance(context.Background(), owner.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 2_500_000_000 {
		t.Errorf("expected 2500000000 lamports, got %d", got)
	}
}

func TestSolanaClient_GetStakeFiltersByWithdrawer(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	delegated := solana.NewWallet().PublicKey().String()
	undelegated := solana.NewWallet().PublicKey().String()

	srv := newTestRPCServer(t, func(call rpcCall) string {
		if call.Method != "getProgramAccounts" {
			t.Errorf("unexpected method %s", call.Method)
		}
		var program string
		stdjson.Unmarshal(call.Params[0], &program)
		if program != solana.StakeProgramID.String() {
			t.Errorf("unexpected program %s", program)
		}
		var opts struct {
			Encoding string `json:"encoding"`
			Filters  []struct {
				DataSize uint64 `json:"dataSize"`
				Memcmp   *struct {
					Offset uint64 `json:"offset"`
					Bytes  string `json:"bytes"`
				} `json:"memcmp"`
			} `json:"filters"`
		}
		stdjson.Unmarshal(call.Params[1], &opts)
		if opts.Encoding != "jsonParsed" {
			t.Errorf("expected jsonParsed encoding, got %q", opts.Encoding)
		}
		var sawMemcmp bool
		for _, f := range opts.Filters {
			if f.Memcmp != nil {
				sawMemcmp = true
				if f.Memcmp.Offset != 44 || f.Memcmp.Bytes != owner.String() {
					t.Errorf("unexpected memcmp filter %+v", *f.Memcmp)
				}
			}
		}
		if !sawMemcmp {
			t.Error("missing withdrawer filter")
		}
		return "[" + stakeAccountJSON(delegated, "1500000000") + "," + stakeAccountJSON(undelegated, "") + "]"
	})
	defer srv.Close()

	c := NewSolanaClient(nil, rpc.New(srv.URL), nil, 5*time.Second, logger.NewNop())
	got, err := c.GetStake(context.Background(), owner.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected only the delegated account, got %+v", got)
	}
	if got[0].Pubkey != delegated || got[0].DelegatedLamports != "1500000000" {
		t.Errorf("unexpected entry %+v", got[0])
	}
}

func TestSolanaClient_RejectsInvalidAddress(t *testing.T) {
	c := NewSolanaClient(nil, rpc.New("http://127.0.0.1:1"), nil, time.Second, logger.NewNop())
	if _, err := c.GetBalance(context.Background(), "not-base58!"); err == nil {
		t.Error("expected an error for GetBalance")
	}
	if _, err := c.GetStake(context.Background(), "not-base58!"); err == nil {
		t.Error("expected an error for GetStake")
	}
}

type fakeDAS struct {
	list *wire.AssetList
	err  error
}

func (f fakeDAS) GetAssetsByOwner(context.Context, string) (*wire.AssetList, error) {
	return f.list, f.err
}

func TestSolanaClient_GetTokensKeepsEligibleItems(t *testing.T) {
	priced := &wire.PriceInfo{TotalPrice: 42, Currency: "USDC"}
	das := fakeDAS{list: &wire.AssetList{
		Total: 1200,
		Limit: 1000,
		Page:  1,
		Items: []wire.DASAsset{
			{Interface: wire.InterfaceFungibleToken, ID: "mint1", TokenInfo: &wire.TokenInfo{Symbol: "FOO", PriceInfo: priced}},
			{Interface: wire.InterfaceFungibleAsset, ID: "mint2", Content: &wire.Content{Metadata: wire.Metadata{Symbol: "META"}}, TokenInfo: &wire.TokenInfo{PriceInfo: priced}},
			{Interface: wire.InterfaceFungibleToken, ID: "mint3", TokenInfo: &wire.TokenInfo{Symbol: "NOPRICE"}},
			{Interface: "V1_NFT", ID: "nft", TokenInfo: &wire.TokenInfo{Symbol: "NFT", PriceInfo: priced}},
			{Interface: wire.InterfaceFungibleToken, ID: "", TokenInfo: &wire.TokenInfo{Symbol: "NOID", PriceInfo: priced}},
		},
	}}
	c := NewSolanaClient(das, nil, nil, time.Second, logger.NewNop())

	page, err := c.GetTokens(context.Background(), "owner")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []entity.TokenHolding{
		{ID: "mint1", Interface: wire.InterfaceFungibleToken, Symbol: "FOO", TotalPriceUSD: 42},
		{ID: "mint2", Interface: wire.InterfaceFungibleAsset, Symbol: "META", TotalPriceUSD: 42},
	}
	if len(page.Items) != len(want) {
		t.Fatalf("expected %d items, got %+v", len(want), page.Items)
	}
	for i := range want {
		if page.Items[i] != want[i] {
			t.Errorf("item %d: expected %+v, got %+v", i, want[i], page.Items[i])
		}
	}
	if !page.Truncated() || page.Address != "owner" {
		t.Errorf("expected a truncated page for owner, got %+v", page)
	}
}

func TestSolanaClient_GetTokensPropagatesErrors(t *testing.T) {
	cause := errors.New("unauthorized")
	c := NewSolanaClient(fakeDAS{err: cause}, nil, nil, time.Second, logger.NewNop())
	if _, err := c.GetTokens(context.Background(), "owner"); !errors.Is(err, cause) {
		t.Fatalf("expected %v, got %v", cause, err)
	}
}
