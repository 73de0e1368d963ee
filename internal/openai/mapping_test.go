package openai

import (
	"net/http"
	"testing"
	"time"

	ai "github.com/bitop-dev/go-ai"
	goopenai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmbeddingRequest(t *testing.T) {
	in := []string{"a", "b"}
	req := NewEmbeddingRequest(in, EmbeddingParams{Model: "text-embedding-3-small", Dimensions: 256, EncodingFormat: "float", User: "u1"})

	assert.Equal(t, []string{"a", "b"}, req.Input)
	assert.Equal(t, goopenai.EmbeddingModel("text-embedding-3-small"), req.Model)
	assert.Equal(t, 256, req.Dimensions)
	assert.Equal(t, goopenai.EmbeddingEncodingFormatFloat, req.EncodingFormat)
	assert.Equal(t, "u1", req.User)

	in[0] = "changed"
	assert.Equal(t, "a", req.Input[0])
}

func TestFromEmbeddingResponse(t *testing.T) {
	resp := goopenai.EmbeddingResponse{
		Model: "text-embedding-ada-002",
		Data: []goopenai.Embedding{
			{Embedding: []float32{0.1, 0.2}, Index: 0},
			{Embedding: []float32{0.3, 0.4}, Index: 1},
		},
		Usage: goopenai.Usage{PromptTokens: 7, TotalTokens: 7},
	}
	assert.False(t, IsEmptyEmbeddingResponse(resp))

	out := FromEmbeddingResponse(resp)
	require.Len(t, out.Embeddings, 2)
	assert.Equal(t, ai.Embedding{Vector: []float32{0.3, 0.4}, Index: 1}, out.Embeddings[1])
	assert.Equal(t, "text-embedding-ada-002", out.Metadata.Model)
	assert.Equal(t, 7, out.Metadata.PromptTokens)
	assert.Equal(t, 7, out.Metadata.TotalTokens)

	assert.True(t, IsEmptyEmbeddingResponse(goopenai.EmbeddingResponse{}))
}

func TestNewChatCompletionRequest(t *testing.T) {
	temp := float32(0.2)
	maxTokens := 64
	prompt := ai.NewPrompt(ai.System("be brief"), ai.User("hi")).WithOptions(ai.ChatOptions{
		Model:       "gpt-4o",
		Temperature: &temp,
		MaxTokens:   &maxTokens,
		Stop:        []string{"END"},
	})

	req := NewChatCompletionRequest("gpt-3.5-turbo", prompt)
	assert.Equal(t, "gpt-4o", req.Model)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, goopenai.ChatMessageRoleSystem, req.Messages[0].Role)
	assert.Equal(t, "hi", req.Messages[1].Content)
	assert.Equal(t, float32(0.2), req.Temperature)
	assert.Equal(t, 64, req.MaxTokens)
	assert.Equal(t, []string{"END"}, req.Stop)

	plain := NewChatCompletionRequest("gpt-3.5-turbo", ai.NewPrompt(ai.User("hi")))
	assert.Equal(t, "gpt-3.5-turbo", plain.Model)
	assert.Zero(t, plain.Temperature)
}

func TestFromChatCompletion(t *testing.T) {
	resp := goopenai.ChatCompletionResponse{
		ID:    "chatcmpl-1",
		Model: "gpt-3.5-turbo-0125",
		Choices: []goopenai.ChatCompletionChoice{
			{Index: 0, Message: goopenai.ChatCompletionMessage{Role: "assistant", Content: "hello"}, FinishReason: goopenai.FinishReasonStop},
			{Index: 1, Message: goopenai.ChatCompletionMessage{Role: "assistant", Content: "hel"}, FinishReason: goopenai.FinishReasonLength},
		},
		Usage: goopenai.Usage{PromptTokens: 3, CompletionTokens: 2, TotalTokens: 5},
	}

	out := FromChatCompletion(resp, false)
	gens := out.Generations()
	require.Len(t, gens, 2)
	assert.Equal(t, "hello", out.Generation().Text)
	assert.Equal(t, ai.RoleAssistant, gens[0].Role)
	assert.Equal(t, ai.FinishStop, gens[0].Metadata.FinishReason)
	assert.Equal(t, ai.FinishLength, gens[1].Metadata.FinishReason)
	assert.Nil(t, gens[0].Metadata.ContentFilter)

	md, ok := out.GenerationMetadata()
	require.True(t, ok)
	assert.Equal(t, "chatcmpl-1", md.ID)
	assert.Equal(t, "gpt-3.5-turbo-0125", md.Model)
	assert.Equal(t, 5, md.Usage.Total())
	assert.Nil(t, md.RateLimit)

	_, ok = out.LookupPromptMetadata()
	assert.False(t, ok)
	_, ok = out.RawResponse()
	assert.False(t, ok)

	withRaw := FromChatCompletion(resp, true)
	raw, ok := withRaw.RawResponse()
	require.True(t, ok)
	assert.Equal(t, "chatcmpl-1", raw.(goopenai.ChatCompletionResponse).ID)
}

func TestFromChatCompletion_PromptFilterResults(t *testing.T) {
	resp := goopenai.ChatCompletionResponse{
		Choices: []goopenai.ChatCompletionChoice{{Message: goopenai.ChatCompletionMessage{Content: "x"}}},
		PromptFilterResults: []goopenai.PromptFilterResult{
			{Index: 0},
			{Index: 2},
		},
	}
	out := FromChatCompletion(resp, false)
	pm, ok := out.LookupPromptMetadata()
	require.True(t, ok)
	require.Len(t, pm, 2)
	_, found := pm.FindByPromptIndex(2)
	assert.True(t, found)
	assert.Equal(t, ai.FinishReason(""), out.Generation().Metadata.FinishReason)
}

func TestFinishReason(t *testing.T) {
	assert.Equal(t, ai.FinishToolCalls, finishReason(goopenai.FinishReasonToolCalls))
	assert.Equal(t, ai.FinishToolCalls, finishReason(goopenai.FinishReasonFunctionCall))
	assert.Equal(t, ai.FinishContentFilter, finishReason(goopenai.FinishReasonContentFilter))
	assert.Equal(t, ai.FinishUnknown, finishReason("something_new"))
}

func TestRateLimitFromHeaders(t *testing.T) {
	assert.Nil(t, RateLimitFromHeaders(nil))
	assert.Nil(t, RateLimitFromHeaders(http.Header{"Content-Type": []string{"application/json"}}))

	h := http.Header{}
	h.Set("x-ratelimit-limit-requests", "3500")
	h.Set("x-ratelimit-remaining-requests", "3499")
	h.Set("x-ratelimit-reset-requests", "17ms")
	h.Set("x-ratelimit-limit-tokens", "90000")
	h.Set("x-ratelimit-remaining-tokens", "89990")
	h.Set("x-ratelimit-reset-tokens", "6m0s")

	rl := RateLimitFromHeaders(h)
	require.NotNil(t, rl)
	assert.Equal(t, ai.RateLimit{
		RequestsLimit:     3500,
		RequestsRemaining: 3499,
		RequestsReset:     17 * time.Millisecond,
		TokensLimit:       90000,
		TokensRemaining:   89990,
		TokensReset:       6 * time.Minute,
	}, *rl)

	partial := http.Header{}
	partial.Set("x-ratelimit-remaining-tokens", "not-a-number")
	rl = RateLimitFromHeaders(partial)
	require.NotNil(t, rl)
	assert.Zero(t, rl.TokensRemaining)
}
