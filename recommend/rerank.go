package recommend

import (
	"context"
	"time"

	"github.com/picko-ai/picko/core"
)

// rerank asks the model to pick from listing and resolves its picks.
// tool_number n resolves to listing[n-1]; numbers outside the listing and
// repeated picks are dropped. The result keeps the model's order and is capped
// at Config.ResultLimit and may be empty. An error means the caller should use
// listing order.
func (r *Recommender) rerank(ctx context.Context, task string, listing []*core.Tool) ([]*core.Tool, error) {
	defer observe(StageRerank, time.Now())

	picks, err := r.ranker.RankTools(ctx, task, listing)
	if err != nil {
		return nil, err
	}

	results := make([]*core.Tool, 0, min(len(picks), r.config.ResultLimit))
	seen := make(map[int]bool, len(picks))
	for _, pick := range picks {
		if pick.ToolNumber < 1 || pick.ToolNumber > len(listing) {
			r.logger.Debug("dropping out-of-range pick", "tool_number", pick.ToolNumber, "listed", len(listing))
			continue
		}
		if seen[pick.ToolNumber] {
			continue
		}
		tool := listing[pick.ToolNumber-1]
		if tool == nil {
			continue
		}
		seen[pick.ToolNumber] = true
		results = append(results, tool)
		if len(results) == r.config.ResultLimit {
			break
		}
	}

	r.logger.Debug("re-ranked candidates", "listed", len(listing), "picks", len(picks), "kept", len(results))
	return results, nil
}
