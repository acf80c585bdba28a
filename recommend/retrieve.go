package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/picko-ai/picko/core"
	"github.com/picko-ai/picko/metrics"
	"github.com/picko-ai/picko/storage"
)

// retrieve queries the store once per keyword and merges the pages.
// A failing keyword query is skipped; a lost store aborts with an error
// wrapping storage.ErrStoreUnavailable.
func (r *Recommender) retrieve(ctx context.Context, keywords []string) ([]*core.Tool, error) {
	defer observe(StageRetrieve, time.Now())

	var candidates candidateSet
	for _, keyword := range head(keywords, r.config.KeywordLimit) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page, err := r.tools.SearchTools(ctx, keyword, r.config.SearchFields, r.config.PerKeywordLimit)
		if err != nil {
			metrics.RecordStoreError("search")
			if errors.Is(err, storage.ErrStoreUnavailable) {
				return nil, fmt.Errorf("retrieve candidates: %w", err)
			}
			r.logger.Warn("keyword query failed", "keyword", keyword, "err", err)
			continue
		}
		candidates.add(page...)
	}

	r.logger.Debug("retrieved candidates", "keywords", len(keywords), "candidates", candidates.len())
	return candidates.list(), nil
}

// broaden scans the catalog without a filter. Failures yield no candidates.
func (r *Recommender) broaden(ctx context.Context, monitor Monitor) []*core.Tool {
	defer observe(StageBroaden, time.Now())

	tools, err := r.tools.ListTools(ctx, r.config.BroadenLimit)
	if err != nil {
		r.logger.Error("broadened search failed", "err", err)
		metrics.RecordStoreError("list")
		metrics.RecordFallback(string(StageBroaden))
		monitor.Fallback(StageBroaden, err)
		return []*core.Tool{}
	}
	if len(tools) == 0 {
		r.logger.Warn("tool catalog is empty")
	}
	return tools
}

// candidateSet deduplicates tools by ID.
// A repeated ID replaces the stored tool but keeps its first position.
type candidateSet struct {
	index map[core.ID]int
	tools []*core.Tool
}

func (s *candidateSet) add(tools ...*core.Tool) {
	if s.index == nil {
		s.index = make(map[core.ID]int)
	}
	for _, tool := range tools {
		if tool == nil {
			continue
		}
		if i, ok := s.index[tool.Id]; ok {
			s.tools[i] = tool
			continue
		}
		s.index[tool.Id] = len(s.tools)
		s.tools = append(s.tools, tool)
	}
}

func (s *candidateSet) len() int {
	return len(s.tools)
}

func (s *candidateSet) list() []*core.Tool {
	if s.tools == nil {
		return []*core.Tool{}
	}
	return s.tools
}
