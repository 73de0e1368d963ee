package ai

import "context"

// ChatClient sends a prompt to a chat model and returns its generations.
type ChatClient interface {
	Call(ctx context.Context, prompt Prompt) (*ChatResponse, error)
}

// EmbeddingCaller is the minimal embedding contract: one request, one response.
// The helpers in this package build the rest of EmbeddingClient on top of it.
type EmbeddingCaller interface {
	Call(ctx context.Context, req EmbeddingRequest) (*EmbeddingResponse, error)
}

// EmbeddingClient turns text and documents into vectors.
type EmbeddingClient interface {
	EmbeddingCaller

	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedAll(ctx context.Context, texts []string) ([][]float32, error)
	EmbedDocument(ctx context.Context, doc *Document) ([]float32, error)
	Dimensions(ctx context.Context) (int, error)
}

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

type Message struct {
	Role    Role
	Content string
	Name    string
}

func System(text string) Message { return Message{Role: RoleSystem, Content: text} }

func User(text string) Message { return Message{Role: RoleUser, Content: text} }

func Assistant(text string) Message { return Message{Role: RoleAssistant, Content: text} }

// ChatOptions overrides the chat client defaults for a single prompt. Nil
// pointers leave the provider default in place.
type ChatOptions struct {
	Model string

	MaxTokens   *int
	Temperature *float32
	TopP        *float32
	N           *int
	Stop        []string
	User        string
}

type Prompt struct {
	Messages []Message
	Options  *ChatOptions
}

func NewPrompt(messages ...Message) Prompt {
	return Prompt{Messages: append([]Message(nil), messages...)}
}

// WithOptions returns a copy of the prompt carrying opts.
func (p Prompt) WithOptions(opts ChatOptions) Prompt {
	p.Messages = append([]Message(nil), p.Messages...)
	p.Options = &opts
	return p
}

type FinishReason string

const (
	FinishStop          FinishReason = "stop"
	FinishLength        FinishReason = "length"
	FinishToolCalls     FinishReason = "tool_calls"
	FinishContentFilter FinishReason = "content_filter"
	FinishUnknown       FinishReason = "unknown"
)

type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Total returns TotalTokens, or the sum of prompt and completion tokens when
// the provider did not report a total.
func (u Usage) Total() int {
	if u.TotalTokens > 0 {
		return u.TotalTokens
	}
	return u.PromptTokens + u.CompletionTokens
}
