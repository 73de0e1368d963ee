package openai

import (
	ai "github.com/bitop-dev/go-ai"
	goopenai "github.com/sashabaranov/go-openai"
)

// EmbeddingParams carries everything besides the inputs that goes into an
// embeddings request.
type EmbeddingParams struct {
	Model          string
	Dimensions     int
	EncodingFormat string
	User           string
}

func NewEmbeddingRequest(instructions []string, p EmbeddingParams) goopenai.EmbeddingRequestStrings {
	return goopenai.EmbeddingRequestStrings{
		Input:          append([]string(nil), instructions...),
		Model:          goopenai.EmbeddingModel(p.Model),
		User:           p.User,
		EncodingFormat: goopenai.EmbeddingEncodingFormat(p.EncodingFormat),
		Dimensions:     p.Dimensions,
	}
}

// IsEmptyEmbeddingResponse reports a response without embedding data.
func IsEmptyEmbeddingResponse(resp goopenai.EmbeddingResponse) bool {
	return len(resp.Data) == 0
}

// FromEmbeddingResponse copies usage and every (vector, index) entry, in
// provider order.
func FromEmbeddingResponse(resp goopenai.EmbeddingResponse) *ai.EmbeddingResponse {
	embeddings := make([]ai.Embedding, 0, len(resp.Data))
	for _, d := range resp.Data {
		embeddings = append(embeddings, ai.Embedding{Vector: d.Embedding, Index: d.Index})
	}
	return &ai.EmbeddingResponse{
		Embeddings: embeddings,
		Metadata: ai.EmbeddingResponseMetadata{
			Model:            string(resp.Model),
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}
}
