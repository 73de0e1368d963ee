package ai

// Embedding is one vector tagged with the position of its input in the batch.
type Embedding struct {
	Vector []float32
	Index  int
}

type EmbeddingRequest struct {
	Instructions []string

	// ProviderOptions is keyed by provider name, e.g.
	// map[string]any{"openai": openai.EmbeddingOptions{...}}.
	ProviderOptions map[string]any
}

func NewEmbeddingRequest(instructions ...string) EmbeddingRequest {
	return EmbeddingRequest{Instructions: append([]string(nil), instructions...)}
}

type EmbeddingResponseMetadata struct {
	Model            string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Map renders the metadata with the key names used by the embedding wire
// contract.
func (m EmbeddingResponseMetadata) Map() map[string]any {
	return map[string]any{
		"model":             m.Model,
		"prompt-tokens":     m.PromptTokens,
		"completion-tokens": m.CompletionTokens,
		"total-tokens":      m.TotalTokens,
	}
}

type EmbeddingResponse struct {
	Embeddings []Embedding
	Metadata   EmbeddingResponseMetadata
}

// Result returns the first embedding.
func (r *EmbeddingResponse) Result() (Embedding, bool) {
	if r == nil || len(r.Embeddings) == 0 {
		return Embedding{}, false
	}
	return r.Embeddings[0], true
}

func (r *EmbeddingResponse) Vectors() [][]float32 {
	if r == nil {
		return nil
	}
	out := make([][]float32, len(r.Embeddings))
	for i, e := range r.Embeddings {
		out[i] = e.Vector
	}
	return out
}
