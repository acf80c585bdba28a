package recommend

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/picko-ai/picko/ai"
	"github.com/picko-ai/picko/core"
	"github.com/picko-ai/picko/metrics"
)

// ToolSource is the read side of the tool store used by the pipeline.
// storage.ToolRepository satisfies it.
type ToolSource interface {
	SearchTools(ctx context.Context, query string, fields []core.SearchField, limit int) ([]*core.Tool, error)
	ListTools(ctx context.Context, limit int) ([]*core.Tool, error)
}

// Outcome labels how a request was answered.
type Outcome string

const (
	OutcomeReranked    Outcome = "reranked"
	OutcomePassthrough Outcome = "passthrough"
	OutcomeTruncated   Outcome = "truncated"
	OutcomeFallback    Outcome = "fallback"
	OutcomeEmpty       Outcome = "empty"
)

// Recommender runs the recommendation pipeline.
// It is safe for concurrent use; requests share no mutable state.
type Recommender struct {
	tools     ToolSource
	extractor ai.KeywordExtractor
	ranker    ai.Ranker
	config    Config
	monitor   Monitor
	pool      *ants.Pool
	logger    *slog.Logger
}

// Option configures a Recommender.
type Option func(*Recommender) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recommender) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithConfig replaces every limit at once.
func WithConfig(cfg Config) Option {
	return func(r *Recommender) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		r.config = cfg
		return nil
	}
}

// WithKeywordLimit sets how many keywords are queried.
func WithKeywordLimit(n int) Option {
	return func(r *Recommender) error {
		r.config.KeywordLimit = n
		return nil
	}
}

// WithPerKeywordLimit sets the result cap of each keyword query.
func WithPerKeywordLimit(n int) Option {
	return func(r *Recommender) error {
		r.config.PerKeywordLimit = n
		return nil
	}
}

// WithBroadenLimit sets the cap of the unfiltered scan.
func WithBroadenLimit(n int) Option {
	return func(r *Recommender) error {
		r.config.BroadenLimit = n
		return nil
	}
}

// WithRerankLimit sets how many candidates are shown to the model.
func WithRerankLimit(n int) Option {
	return func(r *Recommender) error {
		r.config.RerankLimit = n
		return nil
	}
}

// WithResultLimit sets the maximum length of a recommendation.
func WithResultLimit(n int) Option {
	return func(r *Recommender) error {
		r.config.ResultLimit = n
		return nil
	}
}

// WithSearchFields sets the fields keywords are matched against.
func WithSearchFields(fields ...core.SearchField) Option {
	return func(r *Recommender) error {
		r.config.SearchFields = fields
		return nil
	}
}

// WithPoolSize sets how many tasks RecommendBatch runs concurrently.
func WithPoolSize(size int) Option {
	return func(r *Recommender) error {
		r.config.PoolSize = size
		return nil
	}
}

// WithMonitor sets the monitor used by Recommend and RecommendBatch.
func WithMonitor(monitor Monitor) Option {
	return func(r *Recommender) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		r.monitor = monitor
		return nil
	}
}

// NewRecommender creates a recommender over tools.
// provider may be nil, in which case no model is consulted.
func NewRecommender(tools ToolSource, provider ai.AIProvider, opts ...Option) (*Recommender, error) {
	if tools == nil {
		return nil, ErrToolSourceRequired
	}

	r := &Recommender{
		tools:   tools,
		config:  DefaultConfig(),
		monitor: &noopMonitor{},
		logger:  slog.Default(),
	}
	if provider != nil {
		r.extractor = provider.KeywordExtractor()
		r.ranker = provider.Ranker()
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	if err := r.config.Validate(); err != nil {
		return nil, err
	}

	pool, err := ants.NewPool(r.config.PoolSize)
	if err != nil {
		return nil, err
	}
	r.pool = pool

	return r, nil
}

// Release stops the batch worker pool.
func (r *Recommender) Release() {
	if r.pool != nil {
		r.pool.Release()
	}
}

// Config returns the limits in effect.
func (r *Recommender) Config() Config {
	return r.config
}

// Recommend returns at most Config.ResultLimit tools for task.
// It never fails; when nothing can be found the result is empty.
func (r *Recommender) Recommend(ctx context.Context, task string) []*core.Tool {
	return r.RecommendWithMonitor(ctx, task, nil)
}

// RecommendWithMonitor is Recommend with stage callbacks sent to monitor.
// A nil monitor uses the one configured with WithMonitor.
func (r *Recommender) RecommendWithMonitor(ctx context.Context, task string, monitor Monitor) (results []*core.Tool) {
	if monitor == nil {
		monitor = r.monitor
	}
	start := time.Now()
	outcome := OutcomeEmpty

	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("recommendation pipeline panicked", "task", task, "panic", p)
			results, outcome = r.terminalFallback(ctx, task, monitor, fmt.Errorf("%w: %v", ErrPipelinePanic, p))
		}
		if results == nil {
			results = []*core.Tool{}
		}
		metrics.RecordRecommendation(string(outcome), time.Since(start))
		r.finish(monitor, results)
	}()

	monitor.Start(task)

	var err error
	results, outcome, err = r.run(ctx, task, monitor)
	if err != nil {
		results, outcome = r.terminalFallback(ctx, task, monitor, err)
	}
	return results
}

// run executes the stages. A returned error sends the request to the terminal fallback.
func (r *Recommender) run(ctx context.Context, task string, monitor Monitor) ([]*core.Tool, Outcome, error) {
	keywords, modelAvailable := r.extractKeywords(ctx, task, monitor)

	candidates, err := r.retrieve(ctx, keywords)
	if err != nil {
		return nil, OutcomeEmpty, err
	}
	monitor.AfterRetrieval(candidates)

	if len(candidates) == 0 {
		r.logger.Info("no keyword matches, broadening search", "task", task)
		candidates = r.broaden(ctx, monitor)
		monitor.AfterBroaden(candidates)
		if len(candidates) == 0 {
			return []*core.Tool{}, OutcomeEmpty, nil
		}
	}
	metrics.RecordCandidates(len(candidates))

	if len(candidates) <= r.config.ResultLimit {
		return candidates, OutcomePassthrough, nil
	}

	if !modelAvailable || r.ranker == nil {
		return head(candidates, r.config.ResultLimit), OutcomeTruncated, nil
	}

	picks, err := r.rerank(ctx, task, head(candidates, r.config.RerankLimit))
	if err != nil {
		r.logger.Warn("re-ranking failed, using candidate order", "err", err)
		metrics.RecordFallback(string(StageRerank))
		monitor.Fallback(StageRerank, err)
		return head(candidates, r.config.ResultLimit), OutcomeTruncated, nil
	}
	monitor.AfterRerank(picks)
	return picks, OutcomeReranked, nil
}

// finish reports the result without letting a faulty monitor escape the pipeline.
func (r *Recommender) finish(monitor Monitor, results []*core.Tool) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("monitor panicked", "panic", p)
		}
	}()
	monitor.Finish(results)
}

// RecommendBatch recommends for every task concurrently on the worker pool.
// results[i] answers tasks[i].
func (r *Recommender) RecommendBatch(ctx context.Context, tasks []string) [][]*core.Tool {
	results := make([][]*core.Tool, len(tasks))
	var wg sync.WaitGroup

	for i, task := range tasks {
		wg.Add(1)
		job := func() {
			defer wg.Done()
			results[i] = r.Recommend(ctx, task)
		}
		if err := r.pool.Submit(job); err != nil {
			r.logger.Warn("worker pool rejected task, running inline", "err", err)
			job()
		}
	}

	wg.Wait()
	return results
}

func head[T any](s []T, n int) []T {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
