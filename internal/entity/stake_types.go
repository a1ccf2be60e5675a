package entity

// ParsedStakeAccount is the jsonParsed form of a stake program account.
type ParsedStakeAccount struct {
	Program string          `json:"program"`
	Parsed  ParsedStakeData `json:"parsed"`
}

// ParsedStakeData is the "parsed" member; Type is "initialized" or "delegated".
type ParsedStakeData struct {
	Type string          `json:"type"`
	Info ParsedStakeInfo `json:"info"`
}

// ParsedStakeInfo carries the stake section, nil for undelegated accounts.
type ParsedStakeInfo struct {
	Stake *StakeSection `json:"stake"`
}

// StakeSection wraps the delegation record.
type StakeSection struct {
	Delegation Delegation `json:"delegation"`
}

// Delegation is the delegated amount and its validator. Stake is a lamport
// amount encoded as a decimal string.
type Delegation struct {
	Voter string `json:"voter"`
	Stake string `json:"stake"`
}
