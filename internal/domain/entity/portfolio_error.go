package entity

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFetchFailure matches every FetchError via errors.Is.
var ErrFetchFailure = errors.New("fetch failure")

// FetchError is a failed remote call. It aborts the whole submission.
type FetchError struct {
	Kind    string // "tokens", "native", "staked" or "price"
	Address string
	Err     error
}

func (e *FetchError) Error() string {
	if e.Address == "" {
		return fmt.Sprintf("fetch %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("fetch %s for %s: %v", e.Kind, e.Address, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrFetchFailure) true for any FetchError.
func (e *FetchError) Is(target error) bool { return target == ErrFetchFailure }

// Validation messages shown to the user.
const (
	MsgNoAddresses   = "no addresses supplied"
	MsgNoRPCAPIKey   = "no RPC API key supplied"
	MsgNoPriceAPIKey = "no price API key supplied while SOL inclusion is enabled"
)

// ValidationErrors lists every rule a submission violated.
type ValidationErrors []string

func (v ValidationErrors) Error() string {
	return "invalid submission: " + strings.Join(v, "; ")
}

// Warning is a non-fatal condition reported alongside a result.
type Warning struct {
	Address string `json:"address,omitempty"`
	Message string `json:"message"`
}
