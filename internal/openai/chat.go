package openai

import (
	"reflect"

	ai "github.com/bitop-dev/go-ai"
	goopenai "github.com/sashabaranov/go-openai"
)

func NewChatCompletionRequest(model string, prompt ai.Prompt) goopenai.ChatCompletionRequest {
	msgs := make([]goopenai.ChatCompletionMessage, 0, len(prompt.Messages))
	for _, m := range prompt.Messages {
		msgs = append(msgs, goopenai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
			Name:    m.Name,
		})
	}

	req := goopenai.ChatCompletionRequest{
		Model:    model,
		Messages: msgs,
	}
	o := prompt.Options
	if o == nil {
		return req
	}
	if o.Model != "" {
		req.Model = o.Model
	}
	if o.MaxTokens != nil {
		req.MaxTokens = *o.MaxTokens
	}
	if o.Temperature != nil {
		req.Temperature = *o.Temperature
	}
	if o.TopP != nil {
		req.TopP = *o.TopP
	}
	if o.N != nil {
		req.N = *o.N
	}
	if len(o.Stop) > 0 {
		req.Stop = append([]string(nil), o.Stop...)
	}
	req.User = o.User
	return req
}

// FromChatCompletion maps choices to generations and usage, id, model and
// rate limit headers to generation metadata. Prompt metadata is attached only
// when the provider returned prompt filter results.
func FromChatCompletion(resp goopenai.ChatCompletionResponse, includeRaw bool) *ai.ChatResponse {
	gens := make([]ai.Generation, 0, len(resp.Choices))
	for _, c := range resp.Choices {
		gen := ai.Generation{
			Text: c.Message.Content,
			Role: ai.Role(c.Message.Role),
			Metadata: ai.ChoiceMetadata{
				FinishReason: finishReason(c.FinishReason),
			},
		}
		if !reflect.ValueOf(c.ContentFilterResults).IsZero() {
			gen.Metadata.ContentFilter = c.ContentFilterResults
		}
		gens = append(gens, gen)
	}

	opts := []ai.ChatResponseOption{
		ai.WithGenerationMetadata(ai.GenerationMetadata{
			ID:    resp.ID,
			Model: resp.Model,
			Usage: ai.Usage{
				PromptTokens:     resp.Usage.PromptTokens,
				CompletionTokens: resp.Usage.CompletionTokens,
				TotalTokens:      resp.Usage.TotalTokens,
			},
			RateLimit: RateLimitFromHeaders(resp.Header()),
		}),
	}
	if len(resp.PromptFilterResults) > 0 {
		pm := make(ai.PromptMetadata, 0, len(resp.PromptFilterResults))
		for _, r := range resp.PromptFilterResults {
			pm = append(pm, ai.PromptFilterMetadata{PromptIndex: r.Index, ContentFilter: r.ContentFilterResults})
		}
		opts = append(opts, ai.WithPromptMetadata(pm))
	}
	if includeRaw {
		opts = append(opts, ai.WithRawResponse(resp))
	}
	return ai.NewChatResponse(gens, opts...)
}

func finishReason(r goopenai.FinishReason) ai.FinishReason {
	switch r {
	case goopenai.FinishReasonStop:
		return ai.FinishStop
	case goopenai.FinishReasonLength:
		return ai.FinishLength
	case goopenai.FinishReasonToolCalls, goopenai.FinishReasonFunctionCall:
		return ai.FinishToolCalls
	case goopenai.FinishReasonContentFilter:
		return ai.FinishContentFilter
	case "":
		return ""
	}
	return ai.FinishUnknown
}
