package recommend

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/picko-ai/picko/ai"
	"github.com/picko-ai/picko/core"
	"github.com/stretchr/testify/require"
)

// fakeSource is an in-memory ToolSource with injectable failures.
type fakeSource struct {
	mu          sync.Mutex
	tools       []*core.Tool
	searchErr   map[string]error // by query
	searchPanic bool
	listErr     error
	searches    []string
	limits      []int
	lists       int
}

func newFakeSource(tools ...*core.Tool) *fakeSource {
	return &fakeSource{tools: tools, searchErr: map[string]error{}}
}

func (s *fakeSource) SearchTools(ctx context.Context, query string, fields []core.SearchField, limit int) ([]*core.Tool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searches = append(s.searches, query)
	s.limits = append(s.limits, limit)

	if s.searchPanic {
		panic("search exploded")
	}
	if err, ok := s.searchErr[query]; ok {
		return nil, err
	}
	if err, ok := s.searchErr["*"]; ok {
		return nil, err
	}

	needle := strings.ToLower(query)
	results := []*core.Tool{}
	for _, tool := range s.tools {
		if len(results) == limit {
			break
		}
		for _, f := range fields {
			if strings.Contains(strings.ToLower(tool.Value(f)), needle) {
				results = append(results, tool)
				break
			}
		}
	}
	return results, nil
}

func (s *fakeSource) ListTools(ctx context.Context, limit int) ([]*core.Tool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists++

	if s.listErr != nil {
		return nil, s.listErr
	}
	return head(s.tools, limit), nil
}

func (s *fakeSource) searchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.searches)
}

// candidates builds n tools c0..c{n-1} that all match category.
func candidates(n int, category string) []*core.Tool {
	tools := make([]*core.Tool, n)
	for i := range tools {
		name := fmt.Sprintf("c%d", i)
		tools[i] = &core.Tool{Id: core.ID(name), Name: name, Category: category}
	}
	return tools
}

func names(tools []*core.Tool) []string {
	out := make([]string, len(tools))
	for i, t := range tools {
		out[i] = t.Name
	}
	return out
}

func newTestRecommender(t *testing.T, source ToolSource, provider ai.AIProvider, opts ...Option) *Recommender {
	t.Helper()
	r, err := NewRecommender(source, provider, opts...)
	require.NoError(t, err)
	t.Cleanup(r.Release)
	return r
}

// recordingMonitor keeps the sequence of callbacks.
type recordingMonitor struct {
	mu        sync.Mutex
	events    []string
	keywords  []string
	fromModel bool
	fallbacks []Stage
	finished  []*core.Tool
}

func (m *recordingMonitor) record(e string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
}

func (m *recordingMonitor) Start(string) { m.record("start") }
func (m *recordingMonitor) AfterKeywords(k []string, fromModel bool) {
	m.keywords, m.fromModel = k, fromModel
	m.record("keywords")
}
func (m *recordingMonitor) AfterRetrieval([]*core.Tool) { m.record("retrieval") }
func (m *recordingMonitor) AfterBroaden([]*core.Tool)   { m.record("broaden") }
func (m *recordingMonitor) AfterRerank([]*core.Tool)    { m.record("rerank") }
func (m *recordingMonitor) Fallback(stage Stage, _ error) {
	m.fallbacks = append(m.fallbacks, stage)
	m.record("fallback:" + string(stage))
}
func (m *recordingMonitor) Finish(results []*core.Tool) {
	m.finished = results
	m.record("finish")
}
