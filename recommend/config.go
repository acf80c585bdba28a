package recommend

import (
	"fmt"
	"runtime"

	"github.com/picko-ai/picko/core"
)

// Config holds the limits of the pipeline.
type Config struct {
	// KeywordLimit is how many keywords are queried, in order.
	// Default: 8
	KeywordLimit int

	// PerKeywordLimit caps the results of each keyword query.
	// Default: 50
	PerKeywordLimit int

	// BroadenLimit caps the unfiltered scan used when no keyword matched.
	// Default: 200
	BroadenLimit int

	// RerankLimit is how many candidates are shown to the model.
	// Default: 100
	RerankLimit int

	// ResultLimit is the maximum length of a recommendation.
	// Default: 10
	ResultLimit int

	// SearchFields are the tool fields keywords are matched against.
	// Default: core.DefaultSearchFields
	SearchFields []core.SearchField

	// PoolSize is the number of tasks RecommendBatch runs concurrently.
	// Default: runtime.NumCPU(), at least 4
	PoolSize int
}

// DefaultConfig returns the standard pipeline limits.
func DefaultConfig() Config {
	return Config{
		KeywordLimit:    8,
		PerKeywordLimit: 50,
		BroadenLimit:    200,
		RerankLimit:     100,
		ResultLimit:     10,
		SearchFields:    core.DefaultSearchFields,
		PoolSize:        max(runtime.NumCPU(), 4),
	}
}

// Validate checks that every limit is positive and fields are given.
func (c Config) Validate() error {
	limits := []struct {
		name  string
		value int
	}{
		{"KeywordLimit", c.KeywordLimit},
		{"PerKeywordLimit", c.PerKeywordLimit},
		{"BroadenLimit", c.BroadenLimit},
		{"RerankLimit", c.RerankLimit},
		{"ResultLimit", c.ResultLimit},
		{"PoolSize", c.PoolSize},
	}
	for _, l := range limits {
		if l.value < 1 {
			return fmt.Errorf("%w: %s must be at least 1, got %d", ErrInvalidConfig, l.name, l.value)
		}
	}
	if len(c.SearchFields) == 0 {
		return fmt.Errorf("%w: SearchFields cannot be empty", ErrInvalidConfig)
	}
	return nil
}
