package minting

import (
	"encoding/json"

	"github.com/fkhayef/popbarter/internal/popcap"
)

// AuthURLResponse carries the Finverse consent URL
type AuthURLResponse struct {
	URL string `json:"url"`
}

// FinverseCapResponse is the result of the Finverse callback
type FinverseCapResponse struct {
	PopTokenCap int64             `json:"popTokenCap"`
	Account     json.RawMessage   `json:"account" swaggertype:"object"`
	Derivation  popcap.Derivation `json:"derivation"`
}

// BrankasCapRequest is the body of POST /minting/brankas.
// Username is optional; when set the cap is recorded on that profile.
type BrankasCapRequest struct {
	StatementRequest
	Username string `json:"username,omitempty"`
}

// BrankasCapResponse is the result of a statement-derived cap
type BrankasCapResponse struct {
	PopTokenCap   int64             `json:"popTokenCap"`
	AccountNumber string            `json:"account_number"`
	Derivation    popcap.Derivation `json:"derivation"`
}
