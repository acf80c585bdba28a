package llm

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/picko-ai/picko/ai"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

type fakeReply struct {
	text string
	err  error
}

// fakeModel replays canned replies in order; the last reply repeats.
type fakeModel struct {
	mu      sync.Mutex
	replies []fakeReply
	prompts []string
	opts    []llms.CallOptions
}

func newFakeModel(replies ...fakeReply) *fakeModel {
	return &fakeModel{replies: replies}
}

func (m *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var prompt string
	for _, msg := range messages {
		for _, part := range msg.Parts {
			if text, ok := part.(llms.TextContent); ok {
				prompt += text.Text
			}
		}
	}
	m.prompts = append(m.prompts, prompt)

	var opts llms.CallOptions
	for _, opt := range options {
		opt(&opts)
	}
	m.opts = append(m.opts, opts)

	idx := len(m.prompts) - 1
	if idx >= len(m.replies) {
		idx = len(m.replies) - 1
	}
	reply := m.replies[idx]
	if reply.err != nil {
		return nil, reply.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: reply.text}},
	}, nil
}

func (m *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

func (m *fakeModel) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

func (m *fakeModel) lastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}

func testConfig() *ai.Config {
	return ai.NewConfig(
		ai.WithRetry(2, time.Millisecond),
		ai.WithBreaker(5, time.Minute),
	)
}

func newTestProvider(t *testing.T, model *fakeModel, cfg *ai.Config) ai.AIProvider {
	t.Helper()
	provider, err := NewProviderWithModel(model, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { provider.Close() })
	return provider
}

// emptyModel answers every request with zero choices.
type emptyModel struct{}

func (emptyModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	return &llms.ContentResponse{}, nil
}

func (m emptyModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return "", nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
