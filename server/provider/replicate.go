package provider

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/stanzahq/stanza/config"
	"go.uber.org/zap"
)

// Verify at compile time that ReplicateClient implements Generator
var _ Generator = (*ReplicateClient)(nil)

// ReplicateClient implements Generator against the Replicate HTTP API.
// A generation call is two round trips: creating a prediction with
// streaming enabled, then reading its server-sent event stream until the
// done event. Each output event carries one text fragment.
type ReplicateClient struct {
	endpoint string
	apiToken string
	client   *http.Client
	logger   *zap.Logger
}

// predictionRequest is the body of POST /v1/predictions.
type predictionRequest struct {
	Version string          `json:"version"`
	Input   predictionInput `json:"input"`
	Stream  bool            `json:"stream"`
}

type predictionInput struct {
	Prompt    string `json:"prompt"`
	MaxLength int    `json:"max_length"`
}

// predictionResponse is the subset of the prediction resource we need.
type predictionResponse struct {
	ID   string `json:"id"`
	URLs struct {
		Stream string `json:"stream"`
	} `json:"urls"`
	Status string `json:"status"`
	Error  string `json:"error"`
}

// NewReplicateClient creates a client for the configured generation service.
func NewReplicateClient(cfg config.GenerationConfig, logger *zap.Logger) *ReplicateClient {
	return &ReplicateClient{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		apiToken: cfg.APIToken,
		// No overall client timeout: the SSE read is long-lived and bounded
		// by the request context instead
		client: &http.Client{},
		logger: logger,
	}
}

// Stream implements Generator. It creates a streaming prediction and drains
// its SSE endpoint in a goroutine, emitting one fragment per output event.
func (c *ReplicateClient) Stream(ctx context.Context, req GenerationRequest) (<-chan string, <-chan error, error) {
	streamURL, err := c.createPrediction(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	fragments := make(chan string, 16)
	errc := make(chan error, 1)

	go func() {
		defer close(errc)
		defer close(fragments)

		if err := c.readStream(ctx, streamURL, fragments); err != nil {
			errc <- err
		}
	}()

	return fragments, errc, nil
}

// createPrediction starts a prediction with streaming enabled and returns
// the SSE endpoint URL.
func (c *ReplicateClient) createPrediction(ctx context.Context, req GenerationRequest) (string, error) {
	body, err := json.Marshal(predictionRequest{
		Version: req.Model,
		Input: predictionInput{
			Prompt:    req.Prompt,
			MaxLength: req.MaxLength,
		},
		Stream: true,
	})
	if err != nil {
		return "", fmt.Errorf("marshal prediction request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/v1/predictions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create prediction request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Token "+c.apiToken)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("Prediction request rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("model", req.Model),
			zap.ByteString("body", snippet),
		)
		return "", fmt.Errorf("%w: status %d", ErrRequestFailed, resp.StatusCode)
	}

	var prediction predictionResponse
	if err := json.NewDecoder(resp.Body).Decode(&prediction); err != nil {
		return "", fmt.Errorf("decode prediction response: %w", err)
	}
	if prediction.Error != "" {
		return "", fmt.Errorf("%w: %s", ErrRequestFailed, prediction.Error)
	}
	if prediction.URLs.Stream == "" {
		return "", ErrNoStreamURL
	}

	c.logger.Debug("Prediction created",
		zap.String("prediction_id", prediction.ID),
		zap.String("model", req.Model),
	)

	return prediction.URLs.Stream, nil
}

// readStream reads the prediction's SSE endpoint and forwards output event
// payloads as fragments until the done event, an error event, or EOF.
func (c *ReplicateClient) readStream(ctx context.Context, streamURL string, fragments chan<- string) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, streamURL, nil)
	if err != nil {
		return fmt.Errorf("create stream request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Token "+c.apiToken)
	httpReq.Header.Set("Accept", "text/event-stream")
	httpReq.Header.Set("Cache-Control", "no-store")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStreamFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrStreamFailed, resp.StatusCode)
	}

	var (
		event string
		data  []string
	)

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()

		// A blank line terminates one event
		if line == "" {
			switch event {
			case "output":
				select {
				case fragments <- strings.Join(data, "\n"):
				case <-ctx.Done():
					return ctx.Err()
				}
			case "error":
				return fmt.Errorf("%w: %s", ErrStreamFailed, strings.Join(data, "\n"))
			case "done":
				return nil
			}
			event = ""
			data = nil
			continue
		}

		if strings.HasPrefix(line, "event:") {
			event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
			continue
		}
		if strings.HasPrefix(line, "data:") {
			payload := strings.TrimPrefix(line, "data:")
			// A single leading space is part of the SSE framing, not the data
			payload = strings.TrimPrefix(payload, " ")
			data = append(data, payload)
			continue
		}
		// Comment lines and unknown fields are ignored
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStreamFailed, err)
	}

	// EOF without a done event: the server closed the stream early
	return nil
}
