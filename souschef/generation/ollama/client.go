// Package ollama implements the generation backend port over Ollama's
// HTTP API.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	ports "github.com/hearthware/souschef/souschef/assistant/ports"
)

// Client talks to an Ollama daemon. Generate never surfaces transport
// faults to callers; every failure mode collapses into ("", false) so the
// orchestrator can substitute its fallback text.
type Client struct {
	baseURL       string
	model         string
	http          *http.Client
	healthTimeout time.Duration
	logger        zerolog.Logger
}

// NewClient creates a client for the daemon at baseURL.
func NewClient(baseURL, model string, requestTimeout, healthTimeout time.Duration, logger zerolog.Logger) *Client {
	if requestTimeout <= 0 {
		requestTimeout = 60 * time.Second
	}
	if healthTimeout <= 0 {
		healthTimeout = 3 * time.Second
	}
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		model:         model,
		http:          &http.Client{Timeout: requestTimeout},
		healthTimeout: healthTimeout,
		logger:        logger.With().Str("component", "ollama").Logger(),
	}
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	System  string          `json:"system,omitempty"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature   float32  `json:"temperature"`
	TopP          float32  `json:"top_p"`
	NumPredict    int      `json:"num_predict"`
	NumCtx        int      `json:"num_ctx"`
	RepeatPenalty float32  `json:"repeat_penalty"`
	Stop          []string `json:"stop,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// HealthCheck probes the daemon's tags endpoint with a short timeout.
func (c *Client) HealthCheck(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode == http.StatusOK
}

// Generate runs one bounded completion. The second return value is false
// on timeout, non-success status, or transport failure.
func (c *Client) Generate(ctx context.Context, prompt ports.Prompt, opts ports.Sampling) (string, bool) {
	payload := generateRequest{
		Model:  c.model,
		Prompt: prompt.User,
		System: prompt.System,
		Stream: false,
		Options: generateOptions{
			Temperature:   opts.Temperature,
			TopP:          opts.TopP,
			NumPredict:    opts.NumPredict,
			NumCtx:        opts.NumCtx,
			RepeatPenalty: opts.RepeatPenalty,
			Stop:          opts.Stop,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		c.logger.Error().Err(err).Msg("marshal generate request")
		return "", false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		c.logger.Error().Err(err).Msg("build generate request")
		return "", false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Msg("generate call failed")
		return "", false
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warn().Err(err).Msg("read generate response")
		return "", false
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().Int("status", resp.StatusCode).Msg("generate returned non-success status")
		return "", false
	}

	var result generateResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		c.logger.Warn().Err(err).Msg("unmarshal generate response")
		return "", false
	}

	return strings.TrimSpace(result.Response), true
}

// WarmUp issues one tiny generation so the model is resident before the
// first real request. Failure is only logged.
func (c *Client) WarmUp(ctx context.Context) {
	start := time.Now()
	_, ok := c.Generate(ctx, ports.Prompt{User: "Hello"}, ports.Sampling{
		Temperature: 0.1,
		TopP:        0.8,
		NumPredict:  8,
		NumCtx:      512,
	})
	if !ok {
		c.logger.Warn().Dur("elapsed", time.Since(start)).Msg("warm-up call failed")
		return
	}
	c.logger.Info().Dur("elapsed", time.Since(start)).Msg("warm-up complete")
}

var _ ports.Generator = (*Client)(nil)
