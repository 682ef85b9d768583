package processing

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// TokenEstimator estimates the token count of composed prompts. The estimate
// feeds the prompt size metric and log fields only; it never rejects a
// request, and the cl100k_base encoding is an approximation for models the
// generation service hosts.
type TokenEstimator struct {
	encoding *tiktoken.Tiktoken
}

// NewTokenEstimator creates a token estimator backed by the cl100k_base
// encoding.
func NewTokenEstimator() (*TokenEstimator, error) {
	encoding, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("failed to load cl100k_base encoding: %w", err)
	}
	return &TokenEstimator{encoding: encoding}, nil
}

// Estimate returns the approximate number of tokens in text.
func (e *TokenEstimator) Estimate(text string) int {
	return len(e.encoding.Encode(text, nil, nil))
}
