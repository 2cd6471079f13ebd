package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ontoloom/ontoloom/internal/util"
	"github.com/ontoloom/ontoloom/pkg/annotate"
	"github.com/ontoloom/ontoloom/pkg/logger"
	"github.com/ontoloom/ontoloom/pkg/segment"
)

const defaultMaxTries = 3

// Client calls an HTTP token-classification service exposing the
// inference-endpoint contract: POST {"inputs": text} returning a JSON
// array of {word, entity_group, score} records. It implements
// annotate.Annotator.
type Client struct {
	name       string
	url        string
	apiKey     string
	maxTries   int
	httpClient *http.Client

	// Detections past the model's input window are silently truncated by
	// most serving stacks; when Encoder and MaxTokens are set the client
	// logs a warning for oversized chunks.
	encoder   string
	maxTokens int
}

// NewClientParams configures a remote annotator client.
type NewClientParams struct {
	Name      string
	URL       string
	ApiKey    string
	MaxTries  int
	Timeout   time.Duration
	Encoder   string
	MaxTokens int
}

// NewClient creates a remote annotator client for the given endpoint.
func NewClient(params NewClientParams) *Client {
	maxTries := params.MaxTries
	if maxTries <= 0 {
		maxTries = defaultMaxTries
	}

	timeout := params.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		name:     params.Name,
		url:      params.URL,
		apiKey:   params.ApiKey,
		maxTries: maxTries,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		encoder:   params.Encoder,
		maxTokens: params.MaxTokens,
	}
}

type inferenceRequest struct {
	Inputs string `json:"inputs"`
}

// Annotate sends the chunk to the remote service and decodes the raw
// detections. Transient failures are retried.
func (c *Client) Annotate(ctx context.Context, text string) ([]annotate.Raw, error) {
	c.warnOnOversizedChunk(text)

	body, err := json.Marshal(inferenceRequest{Inputs: text})
	if err != nil {
		return nil, err
	}

	return util.RetryWithContext(ctx, c.maxTries, func(ctx context.Context) ([]annotate.Raw, error) {
		return c.annotateOnce(ctx, body)
	})
}

func (c *Client) annotateOnce(ctx context.Context, body []byte) ([]annotate.Raw, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("annotator %s: %w", c.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("annotator %s: unexpected status %d: %s", c.name, resp.StatusCode, bytes.TrimSpace(payload))
	}

	var raw []annotate.Raw
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("annotator %s: decode response: %w", c.name, err)
	}

	return raw, nil
}

func (c *Client) warnOnOversizedChunk(text string) {
	if c.encoder == "" || c.maxTokens <= 0 {
		return
	}

	tokens, err := segment.TokenCount(c.encoder, text)
	if err != nil {
		return
	}
	if tokens > c.maxTokens {
		logger.Warn(
			"[Annotate] Chunk exceeds model input window, tail detections may be lost",
			"annotator", c.name,
			"tokens", tokens,
			"maxTokens", c.maxTokens,
		)
	}
}
