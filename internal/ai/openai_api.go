package ai

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAI summarizes via the OpenAI chat completions API.
type OpenAI struct {
	client openai.Client
	model  string
	logger *slog.Logger
}

func NewOpenAI(apiKey, model string, logger *slog.Logger) *OpenAI {
	if model == "" {
		model = string(openai.ChatModelGPT4oMini)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &OpenAI{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
		logger: logger,
	}
}

func (o *OpenAI) Summarize(ctx context.Context, req Request) (*Summary, error) {
	start := time.Now()
	userPrompt := buildUserPrompt(req)

	o.logger.Debug("openai summarize request",
		"model", o.model,
		"period_start", req.Start,
		"period_end", req.End,
		"days", len(req.Days),
		"prompt_len", len(userPrompt),
	)

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(buildSystemPrompt()),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("openai request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, ErrEmptySummary
	}

	o.logger.Debug("openai summarize response",
		"model", resp.Model,
		"elapsed", time.Since(start),
	)
	return parseSummary(resp.Choices[0].Message.Content)
}
