package llm

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/picko-ai/picko/ai"
)

// decodeObject cuts the first JSON object out of a model answer and decodes it into v.
// When no object can be cut out, or the object fails to decode, the repaired text is tried once.
func decodeObject(raw string, v any) error {
	text := stripCodeFences(raw)

	object, ok := extractJSONObject(text)
	if !ok {
		// A key missing its opening quote unbalances the quotes and hides the closing brace.
		repaired, ok := extractJSONObject(repairJSON(text))
		if !ok {
			return ai.ErrNoJSON
		}
		if err := json.Unmarshal([]byte(repaired), v); err != nil {
			return fmt.Errorf("%w: %w", ai.ErrMalformedResponse, err)
		}
		return nil
	}

	err := json.Unmarshal([]byte(object), v)
	if err == nil {
		return nil
	}

	repaired := repairJSON(object)
	if repaired != object {
		if json.Unmarshal([]byte(repaired), v) == nil {
			return nil
		}
	}
	return fmt.Errorf("%w: %w", ai.ErrMalformedResponse, err)
}
