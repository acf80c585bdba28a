// Copyright 2025 The Picko Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package picko wires the tool store, the generative model, the recommendation
// pipeline and the feedback recorder into a single handle.
package picko

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/picko-ai/picko/ai"
	"github.com/picko-ai/picko/ai/llm"
	"github.com/picko-ai/picko/config"
	"github.com/picko-ai/picko/feedback"
	"github.com/picko-ai/picko/recommend"
	"github.com/picko-ai/picko/storage"
	"github.com/picko-ai/picko/storage/badger"
	"github.com/picko-ai/picko/storage/sqlite"
)

// Database owns the opened store and model provider.
type Database struct {
	tools        storage.ToolRepository
	interactions storage.InteractionRepository
	provider     ai.AIProvider
	closers      []func() error
	limits       *recommend.Config
	logger       *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	backend  string
	inMemory bool
	aiConfig *ai.Config
	provider ai.AIProvider
	noAI     bool
	limits   *recommend.Config
	logger   *slog.Logger
}

// WithBackend selects config.BackendBadger (default) or config.BackendSQLite.
func WithBackend(backend string) DatabaseOption {
	return func(o *databaseOptions) {
		o.backend = backend
	}
}

// WithInMemory keeps the store in memory; the path is ignored.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

// WithAIConfig sets the model configuration. Default is ai.DefaultConfig().
func WithAIConfig(cfg *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		o.aiConfig = cfg
	}
}

// WithProvider uses an already constructed provider. The Database closes it.
func WithProvider(provider ai.AIProvider) DatabaseOption {
	return func(o *databaseOptions) {
		o.provider = provider
	}
}

// WithoutAI disables the model; recommendations use keyword splitting and store order.
func WithoutAI() DatabaseOption {
	return func(o *databaseOptions) {
		o.noAI = true
	}
}

// WithLimits sets the pipeline limits used by NewRecommender.
func WithLimits(cfg recommend.Config) DatabaseOption {
	return func(o *databaseOptions) {
		o.limits = &cfg
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) DatabaseOption {
	return func(o *databaseOptions) {
		o.logger = logger
	}
}

// NewDatabase opens the store at filePath and the configured model provider.
func NewDatabase(ctx context.Context, filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		backend:  config.BackendBadger,
		aiConfig: ai.DefaultConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	db := &Database{
		limits: options.limits,
		logger: options.logger.With("component", "picko"),
	}

	if err := db.openStore(options.backend, filePath, options.inMemory); err != nil {
		return nil, err
	}

	switch {
	case options.provider != nil:
		db.provider = options.provider
	case !options.noAI:
		provider, err := llm.NewProvider(ctx, options.aiConfig)
		if err != nil {
			db.Close()
			return nil, err
		}
		db.provider = provider
	}

	return db, nil
}

// OpenFromConfig opens a Database with application settings.
func OpenFromConfig(ctx context.Context, cfg *config.Config, opts ...DatabaseOption) (*Database, error) {
	options := []DatabaseOption{
		WithBackend(cfg.Storage.Backend),
		WithAIConfig(cfg.AI.Config()),
		WithLimits(cfg.Recommend.Config()),
	}
	if cfg.Storage.InMemory {
		options = append(options, WithInMemory())
	}
	if !cfg.AI.Enabled {
		options = append(options, WithoutAI())
	}
	return NewDatabase(ctx, cfg.Storage.Path, append(options, opts...)...)
}

func (db *Database) openStore(backend, filePath string, inMemory bool) error {
	switch backend {
	case config.BackendBadger:
		b, err := badger.OpenBackend(filePath, inMemory)
		if err != nil {
			return err
		}
		tools, err := badger.NewToolRepository(b)
		if err != nil {
			b.Close()
			return err
		}
		interactions := badger.NewInteractionRepository(b)
		db.tools, db.interactions = tools, interactions
		db.closers = append(db.closers, interactions.Close, tools.Close, b.Close)

	case config.BackendSQLite:
		if inMemory {
			filePath = ":memory:"
		}
		s, err := sqlite.Open(filePath)
		if err != nil {
			return err
		}
		db.tools, db.interactions = s.Tools(), s.Interactions()
		db.closers = append(db.closers, s.Close)

	default:
		return fmt.Errorf("unknown storage backend %q", backend)
	}
	return nil
}

// Close closes the provider, then the repositories and the store.
// Every closer runs; the joined errors are returned.
func (db *Database) Close() error {
	var errs []error
	if db.provider != nil {
		if err := db.provider.Close(); err != nil {
			db.logger.Error("error closing AI provider", "err", err)
			errs = append(errs, err)
		}
	}
	for _, closeFn := range db.closers {
		if err := closeFn(); err != nil {
			db.logger.Error("error closing storage", "err", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Ping reports whether the store is reachable.
func (db *Database) Ping(ctx context.Context) error {
	return db.tools.Ping(ctx)
}

func (db *Database) ToolRepository() storage.ToolRepository {
	return db.tools
}

func (db *Database) InteractionRepository() storage.InteractionRepository {
	return db.interactions
}

// Provider returns the model provider, or nil when AI is disabled.
func (db *Database) Provider() ai.AIProvider {
	return db.provider
}

// NewRecommender builds a pipeline over the store. Options given here
// override the limits set with WithLimits.
func (db *Database) NewRecommender(opts ...recommend.Option) (*recommend.Recommender, error) {
	base := []recommend.Option{recommend.WithLogger(db.logger.With("component", "recommend"))}
	if db.limits != nil {
		base = append(base, recommend.WithConfig(*db.limits))
	}
	return recommend.NewRecommender(db.tools, db.provider, append(base, opts...)...)
}

func (db *Database) NewRecorder(opts ...feedback.Option) (*feedback.Recorder, error) {
	return feedback.NewRecorder(db.interactions, opts...)
}
