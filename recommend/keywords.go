package recommend

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/picko-ai/picko/ai"
	"github.com/picko-ai/picko/metrics"
)

// extractKeywords asks the model for keywords and falls back to fallbackKeywords.
// The second result reports whether the model may still be used for this request.
func (r *Recommender) extractKeywords(ctx context.Context, task string, monitor Monitor) ([]string, bool) {
	defer observe(StageKeywords, time.Now())

	if r.extractor == nil {
		keywords := fallbackKeywords(task)
		monitor.AfterKeywords(keywords, false)
		return keywords, false
	}

	keywords, err := r.extractor.ExtractKeywords(ctx, task)
	if err == nil && len(keywords) > 0 {
		r.logger.Debug("extracted keywords", "keywords", keywords)
		monitor.AfterKeywords(keywords, true)
		return keywords, true
	}
	if err == nil {
		err = errNoKeywords
	}

	r.logger.Warn("keyword extraction failed, splitting task instead", "err", err)
	metrics.RecordFallback(string(StageKeywords))
	monitor.Fallback(StageKeywords, err)

	keywords = fallbackKeywords(task)
	monitor.AfterKeywords(keywords, false)
	return keywords, !errors.Is(err, ai.ErrUnavailable)
}

// fallbackKeywords splits task on whitespace and keeps words longer than one character.
// When no word survives, the whole task is the only keyword.
func fallbackKeywords(task string) []string {
	words := strings.Fields(task)
	keywords := make([]string, 0, len(words))
	for _, w := range words {
		if utf8.RuneCountInString(w) > 1 {
			keywords = append(keywords, w)
		}
	}
	if len(keywords) == 0 {
		return []string{task}
	}
	return keywords
}

func observe(stage Stage, start time.Time) {
	metrics.RecordStage(string(stage), time.Since(start))
}
