package keyphrase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ontoloom/ontoloom/internal/util"
)

const defaultMaxTries = 3

// Client calls an HTTP keyphrase extraction service: POST
// {"inputs": text, "max_phrases": n, "max_words": m} returning a JSON
// array of {text, score} records. It implements Extractor.
type Client struct {
	url        string
	apiKey     string
	maxPhrases int
	maxWords   int
	maxTries   int
	httpClient *http.Client
}

// NewClientParams configures a keyphrase extraction client. MaxPhrases
// and MaxWords bound the backend's output per call.
type NewClientParams struct {
	URL        string
	ApiKey     string
	MaxPhrases int
	MaxWords   int
	MaxTries   int
	Timeout    time.Duration
}

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
		url:        params.URL,
		apiKey:     params.ApiKey,
		maxPhrases: params.MaxPhrases,
		maxWords:   params.MaxWords,
		maxTries:   maxTries,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type extractRequest struct {
	Inputs     string `json:"inputs"`
	MaxPhrases int    `json:"max_phrases,omitempty"`
	MaxWords   int    `json:"max_words,omitempty"`
}

// Extract sends the text to the remote service and decodes the scored
// phrases. Transient failures are retried.
func (c *Client) Extract(ctx context.Context, text string) ([]Keyphrase, error) {
	body, err := json.Marshal(extractRequest{
		Inputs:     text,
		MaxPhrases: c.maxPhrases,
		MaxWords:   c.maxWords,
	})
	if err != nil {
		return nil, err
	}

	return util.RetryWithContext(ctx, c.maxTries, func(ctx context.Context) ([]Keyphrase, error) {
		return c.extractOnce(ctx, body)
	})
}

func (c *Client) extractOnce(ctx context.Context, body []byte) ([]Keyphrase, error) {
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
		return nil, fmt.Errorf("keyphrase extractor: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("keyphrase extractor: unexpected status %d: %s", resp.StatusCode, bytes.TrimSpace(payload))
	}

	var phrases []Keyphrase
	if err := json.NewDecoder(resp.Body).Decode(&phrases); err != nil {
		return nil, fmt.Errorf("keyphrase extractor: decode response: %w", err)
	}

	return phrases, nil
}
