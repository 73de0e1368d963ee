package openai

import (
	"context"
	"fmt"
	"log/slog"

	ai "github.com/bitop-dev/go-ai"
	internalopenai "github.com/bitop-dev/go-ai/internal/openai"
	"github.com/bitop-dev/go-ai/internal/retry"
	goopenai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

const DefaultChatModel = "gpt-3.5-turbo"

// ChatCompletionAPI is the part of *goopenai.Client the chat adapter uses.
type ChatCompletionAPI interface {
	CreateChatCompletion(ctx context.Context, req goopenai.ChatCompletionRequest) (goopenai.ChatCompletionResponse, error)
}

type ChatClient struct {
	api        ChatCompletionAPI
	model      string
	policy     retry.Policy
	limiter    *rate.Limiter
	logger     *slog.Logger
	includeRaw bool
}

var _ ai.ChatClient = (*ChatClient)(nil)

func NewChatClient(api ChatCompletionAPI, model string, opts ...Option) (*ChatClient, error) {
	if isNil(api) {
		return nil, fmt.Errorf("%w: chat completion api must not be nil", ai.ErrInvalidArgument)
	}
	if model == "" {
		return nil, fmt.Errorf("%w: model must not be empty", ai.ErrInvalidArgument)
	}

	o := newOptions(opts)
	return &ChatClient{
		api:        api,
		model:      model,
		policy:     o.policy(),
		limiter:    o.limiter,
		logger:     o.logger,
		includeRaw: o.includeRaw,
	}, nil
}

func (c *ChatClient) Model() string { return c.model }

func (c *ChatClient) Call(ctx context.Context, prompt ai.Prompt) (*ai.ChatResponse, error) {
	if len(prompt.Messages) == 0 {
		return nil, fmt.Errorf("%w: prompt has no messages", ai.ErrInvalidArgument)
	}
	req := internalopenai.NewChatCompletionRequest(c.model, prompt)

	return retry.Do(ctx, c.policy, func(ctx context.Context) (*ai.ChatResponse, error) {
		if err := waitLimiter(ctx, c.limiter); err != nil {
			return nil, err
		}
		resp, err := c.api.CreateChatCompletion(ctx, req)
		if err != nil {
			return nil, internalopenai.MapError(err)
		}
		if len(resp.Choices) == 0 {
			c.logger.Warn("no choices returned for prompt",
				"model", req.Model,
				"messages", len(prompt.Messages))
		}
		return internalopenai.FromChatCompletion(resp, c.includeRaw), nil
	})
}
