package recommend

import (
	"context"
	"time"

	"github.com/picko-ai/picko/core"
	"github.com/picko-ai/picko/metrics"
)

// terminalFallback runs one direct search with the raw task text.
// It is the last resort of a request and cannot fail: any error or panic yields no tools.
func (r *Recommender) terminalFallback(ctx context.Context, task string, monitor Monitor, cause error) (results []*core.Tool, outcome Outcome) {
	defer observe(StageTerminal, time.Now())
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("direct search panicked", "panic", p)
			results, outcome = []*core.Tool{}, OutcomeEmpty
		}
	}()

	r.logger.Error("recommendation pipeline failed, trying direct search", "task", task, "err", cause)
	metrics.RecordFallback(string(StageTerminal))
	monitor.Fallback(StageTerminal, cause)

	tools, err := r.tools.SearchTools(ctx, task, r.config.SearchFields, r.config.ResultLimit)
	if err != nil {
		r.logger.Error("direct search failed", "err", err)
		return []*core.Tool{}, OutcomeEmpty
	}
	if len(tools) == 0 {
		return []*core.Tool{}, OutcomeEmpty
	}
	return head(tools, r.config.ResultLimit), OutcomeFallback
}
