package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/picko-ai/picko/ai"
)

// KeywordExtractor implements ai.KeywordExtractor with a single prompt.
type KeywordExtractor struct {
	caller *caller
	logger *slog.Logger
}

var _ ai.KeywordExtractor = (*KeywordExtractor)(nil)

type keywordResponse struct {
	Keywords []string `json:"keywords"`
}

// ExtractKeywords asks the model for keywords and returns them in the order given.
// Blank entries are dropped; an answer with no keywords left is an error.
func (e *KeywordExtractor) ExtractKeywords(ctx context.Context, task string) ([]string, error) {
	raw, err := e.caller.generate(ctx, "keywords", buildKeywordPrompt(task))
	if err != nil {
		return nil, err
	}
	e.logger.Debug("keyword response", "response", truncate(raw, 200))

	var result keywordResponse
	if err := decodeObject(raw, &result); err != nil {
		e.logger.Warn("error parsing keyword response", "response", truncate(raw, 200), "err", err)
		return nil, err
	}

	keywords := make([]string, 0, len(result.Keywords))
	for _, k := range result.Keywords {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	if len(keywords) == 0 {
		return nil, fmt.Errorf("%w: no keywords", ai.ErrMalformedResponse)
	}

	e.logger.Debug("extracted keywords", "count", len(keywords))
	return keywords, nil
}

// truncate shortens s to at most n runes for logging.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
