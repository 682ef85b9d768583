package mocks

import (
	"context"

	"github.com/stanzahq/stanza/server/provider"
)

// MockGenerator implements a mock text generation stream for testing.
// It provides a flexible way to simulate generator behavior without making
// actual API calls.
//
// Key features:
//  1. Fixed fragment sequences through Fragments
//  2. Simulated stream failures through StreamErr and RequestErr
//  3. Full control through an optional StreamFunc override
//
// Example usage:
//
//	gen := mocks.NewMockGenerator("The sky is blue.", " The grass is gr")
type MockGenerator struct {
	// Fragments is the sequence emitted by Stream, in order
	Fragments []string

	// RequestErr, if set, is returned immediately from Stream
	RequestErr error

	// StreamErr, if set, is delivered on the error channel after all
	// fragments have been emitted
	StreamErr error

	// StreamFunc, if set, overrides the default behavior entirely
	StreamFunc func(ctx context.Context, req provider.GenerationRequest) (<-chan string, <-chan error, error)

	// LastRequest records the most recent request for assertions
	LastRequest provider.GenerationRequest
}

// Verify at compile time that MockGenerator implements provider.Generator
var _ provider.Generator = (*MockGenerator)(nil)

// NewMockGenerator creates a MockGenerator that emits the given fragments.
func NewMockGenerator(fragments ...string) *MockGenerator {
	return &MockGenerator{Fragments: fragments}
}

// Stream implements provider.Generator.
func (m *MockGenerator) Stream(ctx context.Context, req provider.GenerationRequest) (<-chan string, <-chan error, error) {
	m.LastRequest = req

	if m.StreamFunc != nil {
		return m.StreamFunc(ctx, req)
	}
	if m.RequestErr != nil {
		return nil, nil, m.RequestErr
	}

	fragments := make(chan string, len(m.Fragments))
	errc := make(chan error, 1)

	go func() {
		defer close(errc)
		defer close(fragments)

		for _, f := range m.Fragments {
			select {
			case fragments <- f:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
		if m.StreamErr != nil {
			errc <- m.StreamErr
		}
	}()

	return fragments, errc, nil
}
