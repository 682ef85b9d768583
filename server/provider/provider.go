// Package provider integrates the hosted text generation service. The
// service is treated as a black box that produces a finite ordered sequence
// of text fragments, or fails with a provider-specific error.
package provider

import (
	"context"
)

// GenerationRequest carries the parameters of a single generation call.
type GenerationRequest struct {
	// Model identifies the model version at the generation service
	Model string

	// Prompt is the fully composed prompt text
	Prompt string

	// MaxLength bounds the generated output length
	MaxLength int
}

// Generator produces a stream of text fragments for a prompt.
//
// Stream returns a fragment channel and an error channel. Implementations
// close the fragment channel when the stream ends, then deliver at most one
// error on the error channel before closing it. A non-nil error means the
// stream terminated abnormally and the fragments received so far are
// incomplete. The initial error return reports failures that occur before
// any streaming begins, such as a rejected request.
//
// Fragment ordering matters: callers concatenate fragments in emission order
// with no separator, and fragment boundaries may fall mid-sentence or even
// mid-word.
type Generator interface {
	Stream(ctx context.Context, req GenerationRequest) (<-chan string, <-chan error, error)
}
