package ai

import (
	"context"
	"fmt"

	"github.com/bitop-dev/go-ai/internal/embeddings"
)

// KnownEmbeddingDimensions lists vector sizes that can be answered without a
// remote call.
var KnownEmbeddingDimensions = map[string]int{
	"text-embedding-ada-002": 1536,
	"text-embedding-3-small": 1536,
	"text-embedding-3-large": 3072,
}

const dimensionsSampleText = "Test String"

func EmbedText(ctx context.Context, c EmbeddingCaller, text string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: input is required", ErrInvalidArgument)
	}
	resp, err := c.Call(ctx, NewEmbeddingRequest(text))
	if err != nil {
		return nil, err
	}
	e, ok := resp.Result()
	if !ok {
		return nil, fmt.Errorf("no embedding returned")
	}
	return e.Vector, nil
}

func EmbedTexts(ctx context.Context, c EmbeddingCaller, texts []string) ([][]float32, error) {
	resp, err := EmbedForResponse(ctx, c, texts)
	if err != nil {
		return nil, err
	}
	if len(resp.Embeddings) == 0 {
		return nil, nil
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embedding response count mismatch: got %d want %d", len(resp.Embeddings), len(texts))
	}
	return resp.Vectors(), nil
}

func EmbedForResponse(ctx context.Context, c EmbeddingCaller, texts []string) (*EmbeddingResponse, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("%w: input is required", ErrInvalidArgument)
	}
	return c.Call(ctx, NewEmbeddingRequest(texts...))
}

// EmbeddingDimensions returns the vector size of model. Models missing from
// KnownEmbeddingDimensions are measured by embedding a short sample text.
func EmbeddingDimensions(ctx context.Context, c EmbeddingCaller, model string) (int, error) {
	if n, ok := KnownEmbeddingDimensions[model]; ok {
		return n, nil
	}
	vec, err := EmbedText(ctx, c, dimensionsSampleText)
	if err != nil {
		return 0, fmt.Errorf("measure dimensions for %q: %w", model, err)
	}
	return len(vec), nil
}

// EmbedParallel embeds texts with up to maxParallel concurrent calls to c.
// Embeddings keep the input order and usage is summed across calls. A
// maxParallel of 1 or less makes a single call.
func EmbedParallel(ctx context.Context, c EmbeddingCaller, texts []string, maxParallel int) (*EmbeddingResponse, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("%w: input is required", ErrInvalidArgument)
	}
	out, err := embeddings.Parallel(ctx, texts, maxParallel, func(ctx context.Context, inputs []string) (embeddings.Result, error) {
		resp, err := c.Call(ctx, NewEmbeddingRequest(inputs...))
		if err != nil {
			return embeddings.Result{}, err
		}
		return embeddings.Result{
			Vectors:          resp.Vectors(),
			Model:            resp.Metadata.Model,
			PromptTokens:     resp.Metadata.PromptTokens,
			CompletionTokens: resp.Metadata.CompletionTokens,
			TotalTokens:      resp.Metadata.TotalTokens,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	resp := &EmbeddingResponse{
		Embeddings: make([]Embedding, len(out.Vectors)),
		Metadata: EmbeddingResponseMetadata{
			Model:            out.Model,
			PromptTokens:     out.PromptTokens,
			CompletionTokens: out.CompletionTokens,
			TotalTokens:      out.TotalTokens,
		},
	}
	for i, v := range out.Vectors {
		resp.Embeddings[i] = Embedding{Vector: v, Index: i}
	}
	return resp, nil
}
