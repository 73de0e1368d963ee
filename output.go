package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bitop-dev/go-ai/internal/schema"
)

type Schema struct {
	JSON json.RawMessage
}

func JSONSchema(raw json.RawMessage) Schema {
	return Schema{JSON: raw}
}

// ParseObject decodes the generation text into T. The text may be wrapped in
// a markdown code fence. When schema is non-empty the JSON is validated
// against it before decoding.
func ParseObject[T any](gen Generation, s Schema) (T, error) {
	var out T
	raw := json.RawMessage(extractJSON(gen.Text))
	if len(raw) == 0 {
		return out, fmt.Errorf("generation has no content")
	}
	if err := schema.Validate(s.JSON, raw); err != nil {
		return out, fmt.Errorf("validate generation: %w", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode generation: %w", err)
	}
	return out, nil
}

func extractJSON(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		// drop the language tag, e.g. ```json
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
