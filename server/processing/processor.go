package processing

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/stanzahq/stanza/config"
	"github.com/stanzahq/stanza/server/metrics"
	"github.com/stanzahq/stanza/server/provider"
)

// Processor handles the end-to-end prediction pipeline: it composes the
// prompt, invokes the generation service, drains the full fragment stream,
// and trims the concatenated output to complete sentences.
//
// The stream is always fully buffered before trimming. The trimmer needs the
// trailing fragment to decide what to discard, so no partial response is ever
// written; a rolling "commit complete sentences early" mode would change the
// wire contract and is intentionally not offered.
type Processor struct {
	generator    provider.Generator
	metrics      *metrics.Metrics
	estimator    *TokenEstimator
	logger       *zap.Logger
	maxLength    int
	defaultModel string
}

// NewProcessor creates a processor around the given generator, taking the
// generation bounds and default model from cfg. The token estimator is
// best-effort: if the encoding cannot be loaded the processor still works,
// it just skips the prompt size observations.
func NewProcessor(generator provider.Generator, m *metrics.Metrics, logger *zap.Logger, cfg config.GenerationConfig) (*Processor, error) {
	if generator == nil {
		return nil, fmt.Errorf("generator is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	estimator, err := NewTokenEstimator()
	if err != nil {
		logger.Warn("Token estimator unavailable, prompt sizes will not be recorded", zap.Error(err))
		estimator = nil
	}

	return &Processor{
		generator:    generator,
		metrics:      m,
		estimator:    estimator,
		logger:       logger,
		maxLength:    cfg.MaxLength,
		defaultModel: cfg.DefaultModel,
	}, nil
}

// ProcessPredict runs one prediction request through the pipeline and
// returns the trimmed response. The only failure mode is the generation
// call itself; prompt composition and sentence trimming are total.
func (p *Processor) ProcessPredict(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, fmt.Errorf("request cannot be nil")
	}

	prompt := ComposePrompt(req.Instruction, req.Input)

	// A request without a model falls back to the configured default
	model := req.Model
	if model == "" {
		model = p.defaultModel
	}

	logger := p.logger.With(
		zap.String("model", model),
		zap.Int("prompt_length", len(prompt)),
	)

	if p.estimator != nil {
		tokens := p.estimator.Estimate(prompt)
		logger = logger.With(zap.Int("prompt_tokens", tokens))
		if p.metrics != nil {
			p.metrics.PromptTokens.WithLabelValues(model).Observe(float64(tokens))
		}
	}

	start := time.Now()

	fragments, errc, err := p.generator.Stream(ctx, provider.GenerationRequest{
		Model:     model,
		Prompt:    prompt,
		MaxLength: p.maxLength,
	})
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	// Drain the entire stream before trimming; fragment order is emission
	// order and must be preserved
	var collected []string
	for fragment := range fragments {
		collected = append(collected, fragment)
	}
	if err := <-errc; err != nil {
		return nil, fmt.Errorf("generation stream failed: %w", err)
	}

	duration := time.Since(start)
	if p.metrics != nil {
		p.metrics.GenerationFragments.WithLabelValues(model).Add(float64(len(collected)))
		p.metrics.GenerationDuration.WithLabelValues(model).Observe(duration.Seconds())
	}

	response := TrimToSentences(collected)

	logger.Debug("Generation complete",
		zap.Int("fragments", len(collected)),
		zap.Duration("duration", duration),
		zap.Int("response_length", len(response)),
	)

	return &Response{Response: response}, nil
}
