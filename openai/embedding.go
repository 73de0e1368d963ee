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

const DefaultEmbeddingModel = "text-embedding-ada-002"

// EmbeddingsAPI is the part of *goopenai.Client the embedding adapter uses.
type EmbeddingsAPI interface {
	CreateEmbeddings(ctx context.Context, conv goopenai.EmbeddingRequestConverter) (goopenai.EmbeddingResponse, error)
}

// EmbeddingClient calls the OpenAI embeddings endpoint under a retry policy
// and maps the result into ai.EmbeddingResponse. It is immutable after
// construction and safe for concurrent use.
type EmbeddingClient struct {
	api      EmbeddingsAPI
	model    string
	mode     ai.MetadataMode
	policy   retry.Policy
	limiter  *rate.Limiter
	logger   *slog.Logger
	defaults EmbeddingOptions
}

var _ ai.EmbeddingClient = (*EmbeddingClient)(nil)

func NewEmbeddingClient(api EmbeddingsAPI, model string, mode ai.MetadataMode, opts ...Option) (*EmbeddingClient, error) {
	if isNil(api) {
		return nil, fmt.Errorf("%w: embeddings api must not be nil", ai.ErrInvalidArgument)
	}
	if model == "" {
		return nil, fmt.Errorf("%w: model must not be empty", ai.ErrInvalidArgument)
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: metadata mode %q is not valid", ai.ErrInvalidArgument, mode)
	}

	o := newOptions(opts)
	return &EmbeddingClient{
		api:      api,
		model:    model,
		mode:     mode,
		policy:   o.policy(),
		limiter:  o.limiter,
		logger:   o.logger,
		defaults: o.embedding,
	}, nil
}

func (c *EmbeddingClient) Model() string { return c.model }

func (c *EmbeddingClient) MetadataMode() ai.MetadataMode { return c.mode }

// Call embeds every instruction of req in a single provider request. A
// response without data is logged and returned as an empty result.
func (c *EmbeddingClient) Call(ctx context.Context, req ai.EmbeddingRequest) (*ai.EmbeddingResponse, error) {
	if len(req.Instructions) == 0 {
		return nil, fmt.Errorf("%w: instructions are required", ai.ErrInvalidArgument)
	}
	params, err := c.params(req.ProviderOptions)
	if err != nil {
		return nil, err
	}
	apiReq := internalopenai.NewEmbeddingRequest(req.Instructions, params)

	return retry.Do(ctx, c.policy, func(ctx context.Context) (*ai.EmbeddingResponse, error) {
		if err := waitLimiter(ctx, c.limiter); err != nil {
			return nil, err
		}
		resp, err := c.api.CreateEmbeddings(ctx, apiReq)
		if err != nil {
			return nil, internalopenai.MapError(err)
		}
		if internalopenai.IsEmptyEmbeddingResponse(resp) {
			c.logger.Warn("no embeddings returned for request",
				"model", c.model,
				"instructions", len(req.Instructions))
			return &ai.EmbeddingResponse{Embeddings: []ai.Embedding{}}, nil
		}
		return internalopenai.FromEmbeddingResponse(resp), nil
	})
}

func (c *EmbeddingClient) Embed(ctx context.Context, text string) ([]float32, error) {
	return ai.EmbedText(ctx, c, text)
}

func (c *EmbeddingClient) EmbedAll(ctx context.Context, texts []string) ([][]float32, error) {
	return ai.EmbedTexts(ctx, c, texts)
}

// EmbedDocument embeds the document content formatted with the client's
// metadata mode.
func (c *EmbeddingClient) EmbedDocument(ctx context.Context, doc *ai.Document) ([]float32, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: document must not be nil", ai.ErrInvalidArgument)
	}
	return c.Embed(ctx, doc.FormattedContent(c.mode))
}

// Dimensions returns the configured output size when one was set with
// WithEmbeddingOptions, otherwise the model's native size.
func (c *EmbeddingClient) Dimensions(ctx context.Context) (int, error) {
	if c.defaults.Dimensions > 0 {
		return c.defaults.Dimensions, nil
	}
	return ai.EmbeddingDimensions(ctx, c, c.model)
}

func (c *EmbeddingClient) params(providerOptions map[string]any) (internalopenai.EmbeddingParams, error) {
	opts := c.defaults
	if raw, ok := providerOptions[ProviderName]; ok && raw != nil {
		var req EmbeddingOptions
		switch o := raw.(type) {
		case EmbeddingOptions:
			req = o
		case *EmbeddingOptions:
			if o != nil {
				req = *o
			}
		default:
			return internalopenai.EmbeddingParams{}, fmt.Errorf("%w: openai provider options must be EmbeddingOptions, got %T", ai.ErrInvalidArgument, raw)
		}
		opts = opts.merge(req)
	}

	p := internalopenai.EmbeddingParams{
		Model:          c.model,
		Dimensions:     opts.Dimensions,
		EncodingFormat: opts.EncodingFormat,
		User:           opts.User,
	}
	if p.EncodingFormat == "" {
		p.EncodingFormat = string(goopenai.EmbeddingEncodingFormatFloat)
	}
	return p, nil
}
