package ai

// Generation is one candidate output of a chat model.
type Generation struct {
	Text     string
	Role     Role
	Metadata ChoiceMetadata
}

// ChatResponse is the provider-neutral result of a chat call. It is immutable:
// every optional part is supplied at construction, and accessors return
// copies of the generation list.
type ChatResponse struct {
	generations []Generation

	metadata    GenerationMetadata
	hasMetadata bool

	promptMetadata PromptMetadata
	hasPrompt      bool

	raw    any
	hasRaw bool
}

type ChatResponseOption func(*ChatResponse)

func WithGenerationMetadata(md GenerationMetadata) ChatResponseOption {
	return func(r *ChatResponse) {
		r.metadata = md
		r.hasMetadata = true
	}
}

func WithPromptMetadata(pm PromptMetadata) ChatResponseOption {
	return func(r *ChatResponse) {
		r.promptMetadata = append(PromptMetadata{}, pm...)
		r.hasPrompt = true
	}
}

// WithRawResponse attaches the provider's own response value. Callers type
// assert it back to the provider type.
func WithRawResponse(raw any) ChatResponseOption {
	return func(r *ChatResponse) {
		r.raw = raw
		r.hasRaw = true
	}
}

func NewChatResponse(generations []Generation, opts ...ChatResponseOption) *ChatResponse {
	r := &ChatResponse{generations: append([]Generation(nil), generations...)}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *ChatResponse) Generations() []Generation {
	return append([]Generation(nil), r.generations...)
}

// Generation returns the first generation. It panics when the response has
// no generations; check len(Generations()) when that is possible.
func (r *ChatResponse) Generation() Generation {
	return r.generations[0]
}

// GenerationMetadata reports false when the response was built without
// metadata. The returned value is then the zero GenerationMetadata.
func (r *ChatResponse) GenerationMetadata() (GenerationMetadata, bool) {
	return r.metadata, r.hasMetadata
}

// PromptMetadata returns the attached prompt metadata, or an empty list.
func (r *ChatResponse) PromptMetadata() PromptMetadata {
	if !r.hasPrompt {
		return PromptMetadata{}
	}
	return append(PromptMetadata{}, r.promptMetadata...)
}

func (r *ChatResponse) LookupPromptMetadata() (PromptMetadata, bool) {
	return r.PromptMetadata(), r.hasPrompt
}

func (r *ChatResponse) RawResponse() (any, bool) {
	return r.raw, r.hasRaw
}
