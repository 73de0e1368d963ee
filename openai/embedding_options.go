package openai

// EmbeddingOptions provides OpenAI-specific options for the embeddings endpoint.
// Use it via ai.EmbeddingRequest ProviderOptions: map[string]any{"openai": openai.EmbeddingOptions{...}}.
type EmbeddingOptions struct {
	Dimensions     int    `json:"dimensions,omitempty"`
	EncodingFormat string `json:"encoding_format,omitempty"` // "float" (default) or "base64"
	User           string `json:"user,omitempty"`
}

// merge returns o with every non-zero field of override applied.
func (o EmbeddingOptions) merge(override EmbeddingOptions) EmbeddingOptions {
	if override.Dimensions > 0 {
		o.Dimensions = override.Dimensions
	}
	if override.EncodingFormat != "" {
		o.EncodingFormat = override.EncodingFormat
	}
	if override.User != "" {
		o.User = override.User
	}
	return o
}
