// Package handlers provides HTTP handlers for the stanza server.
// It implements the prediction endpoint on top of the processing pipeline.
//
// The package follows these design principles:
//  1. Consistent error handling using the errors package
//  2. Structured logging with request IDs
//  3. Separation between request parsing and processing
package handlers

import (
	"encoding/json"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/stanzahq/stanza/errors"
	"github.com/stanzahq/stanza/server/middleware"
	"github.com/stanzahq/stanza/server/processing"
)

// PredictHandler handles prediction requests. Parameters arrive as query
// strings; absent parameters default to empty strings rather than failing,
// so a degenerate all-empty prompt is still submitted to the generation
// service.
//
// The processor can be swapped at runtime when the configuration is
// reloaded; in-flight requests keep the processor they started with.
type PredictHandler struct {
	mu        sync.RWMutex
	processor *processing.Processor
	logger    *zap.Logger
}

// NewPredictHandler creates a new prediction handler with the given
// processor and logger. It requires both parameters to be non-nil.
func NewPredictHandler(processor *processing.Processor, logger *zap.Logger) *PredictHandler {
	return &PredictHandler{
		processor: processor,
		logger:    logger,
	}
}

// Update swaps the processor, typically after a configuration reload.
func (h *PredictHandler) Update(processor *processing.Processor) {
	h.mu.Lock()
	h.processor = processor
	h.mu.Unlock()
}

func (h *PredictHandler) currentProcessor() *processing.Processor {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.processor
}

// ServeHTTP implements http.Handler.
// It handles prediction requests by:
//  1. Validating the HTTP method
//  2. Reading the query parameters with empty-string defaults
//  3. Running the processing pipeline
//  4. Returning the trimmed response as JSON
func (h *PredictHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var requestID string
	if id := r.Context().Value(middleware.RequestIDKey); id != nil {
		requestID = id.(string)
	}

	if r.Method != http.MethodGet {
		errors.WriteError(w, errors.NewValidationError(
			requestID,
			"Method not allowed",
			map[string]interface{}{
				"method":          r.Method,
				"allowed_methods": []string{"GET"},
			},
		))
		return
	}

	query := r.URL.Query()
	req := &processing.Request{
		Input:       query.Get("input"),
		Instruction: query.Get("instruction"),
		Model:       query.Get("model"),
	}

	logger := h.logger.With(
		zap.String("request_id", requestID),
		zap.String("path", r.URL.Path),
		zap.String("remote_addr", r.RemoteAddr),
		zap.String("model", req.Model),
	)

	logger.Info("Processing prediction request",
		zap.Int("input_length", len(req.Input)),
		zap.Int("instruction_length", len(req.Instruction)),
	)

	resp, err := h.currentProcessor().ProcessPredict(r.Context(), req)
	if err != nil {
		logger.Error("Generation failed", zap.Error(err))
		errors.WriteError(w, errors.NewProviderError(
			requestID,
			"Failed to generate prediction",
			err,
		))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
	}
}
