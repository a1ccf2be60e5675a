package entity

import (
	"strings"

	"github.com/gagliardetto/solana-go"
)

// Credentials are the API keys passed through to the remote providers.
type Credentials struct {
	RPCAPIKey   string `json:"rpc_api_key" form:"rpc_api_key"`
	PriceAPIKey string `json:"price_api_key" form:"price_api_key"`
}

// Submission is one fetch-aggregate-render request.
type Submission struct {
	Addresses       []string    `json:"addresses"`
	IncludeUnstaked bool        `json:"include_unstaked"`
	IncludeStaked   bool        `json:"include_staked"`
	Credentials     Credentials `json:"credentials"`
}

// IncludesSOL reports whether any native SOL class is requested.
func (s Submission) IncludesSOL() bool {
	return s.IncludeUnstaked || s.IncludeStaked
}

// Normalized returns a copy with addresses trimmed, blanks dropped and duplicates
// removed, keeping the first occurrence.
func (s Submission) Normalized() Submission {
	seen := make(map[string]struct{}, len(s.Addresses))
	addrs := make([]string, 0, len(s.Addresses))
	for _, a := range s.Addresses {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		if _, dup := seen[a]; dup {
			continue
		}
		seen[a] = struct{}{}
		addrs = append(addrs, a)
	}
	s.Addresses = addrs
	s.Credentials.RPCAPIKey = strings.TrimSpace(s.Credentials.RPCAPIKey)
	s.Credentials.PriceAPIKey = strings.TrimSpace(s.Credentials.PriceAPIKey)
	return s
}

// Validate checks a normalized submission and returns ValidationErrors, or nil.
func (s Submission) Validate() error {
	var errs ValidationErrors
	if len(s.Addresses) == 0 {
		errs = append(errs, MsgNoAddresses)
	}
	if s.Credentials.RPCAPIKey == "" {
		errs = append(errs, MsgNoRPCAPIKey)
	}
	if s.IncludesSOL() && s.Credentials.PriceAPIKey == "" {
		errs = append(errs, MsgNoPriceAPIKey)
	}
	for _, a := range s.Addresses {
		if _, err := solana.PublicKeyFromBase58(a); err != nil {
			errs = append(errs, "invalid address: "+a)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
