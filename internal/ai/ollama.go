package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"
)

// OllamaConfig holds connection settings for a local Ollama instance.
type OllamaConfig struct {
	Endpoint   string
	Model      string
	Timeout    time.Duration
	MaxRetries int
}

func DefaultOllamaConfig() OllamaConfig {
	return OllamaConfig{
		Endpoint:   "http://localhost:11434",
		Model:      "llama3.2",
		Timeout:    30 * time.Second,
		MaxRetries: 1,
	}
}

// Ollama summarizes via the Ollama HTTP API.
type Ollama struct {
	cfg    OllamaConfig
	http   *http.Client
	logger *slog.Logger
}

func NewOllama(cfg OllamaConfig, logger *slog.Logger) *Ollama {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultOllamaConfig().Endpoint
	}
	if cfg.Model == "" {
		cfg.Model = DefaultOllamaConfig().Model
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultOllamaConfig().Timeout
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Ollama{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		logger: logger,
	}
}

// ollamaRequest is the JSON body sent to POST /api/generate.
type ollamaRequest struct {
	Model  string `json:"model"`
	System string `json:"system,omitempty"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
	Format string `json:"format,omitempty"`
}

type ollamaResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
}

func (o *Ollama) Summarize(ctx context.Context, req Request) (*Summary, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, o.cfg.Timeout)
	defer cancel()

	body := ollamaRequest{
		Model:  o.cfg.Model,
		System: buildSystemPrompt(),
		Prompt: buildUserPrompt(req),
		Stream: false,
		Format: "json",
	}

	var lastErr error
	for attempt := 0; attempt <= o.cfg.MaxRetries; attempt++ {
		resp, err := o.doRequest(ctx, body)
		if err == nil {
			o.logger.Debug("ollama summarize response",
				"model", resp.Model,
				"elapsed", time.Since(start),
				"attempt", attempt+1,
			)
			return parseSummary(resp.Response)
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		o.logger.Debug("ollama request failed, retrying", "attempt", attempt+1, "error", err)
	}

	if ctx.Err() != nil {
		return nil, ErrTimeout
	}
	if isConnectionError(lastErr) {
		return nil, ErrUnavailable
	}
	return nil, fmt.Errorf("ollama request: %w", lastErr)
}

func (o *Ollama) doRequest(ctx context.Context, body ollamaRequest) (*ollamaResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := o.cfg.Endpoint + "/api/generate"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := o.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama returned status %d: %s", httpResp.StatusCode, string(respBody))
	}

	var resp ollamaResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &resp, nil
}

// Available checks whether the Ollama server is reachable.
func (o *Ollama) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.cfg.Endpoint+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := o.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}
