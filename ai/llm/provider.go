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

package llm

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/picko-ai/picko/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/openai"
)

// Provider implements ai.AIProvider on a single langchaingo model.
// It manages the keyword extractor and ranker instances.
type Provider struct {
	model     llms.Model
	extractor *KeywordExtractor
	ranker    *Ranker
	logger    *slog.Logger
}

// NewProvider creates the model client selected by config and wraps it.
// The config is validated and normalized before use.
//
// Returns ai.AIProvider interface (not *Provider) to keep callers off
// langchaingo specifics.
func NewProvider(ctx context.Context, config *ai.Config) (ai.AIProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	model, err := newModel(ctx, config)
	if err != nil {
		return nil, err
	}

	return newProvider(model, config), nil
}

// NewProviderWithModel wraps an existing langchaingo model.
func NewProviderWithModel(model llms.Model, config *ai.Config) (ai.AIProvider, error) {
	if model == nil {
		return nil, fmt.Errorf("llm: model is required")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return newProvider(model, config), nil
}

func newProvider(model llms.Model, config *ai.Config) *Provider {
	c := newCaller(model, config)
	return &Provider{
		model:     model,
		extractor: &KeywordExtractor{caller: c, logger: slog.Default().With("component", "llm-keywords")},
		ranker:    &Ranker{caller: c, logger: slog.Default().With("component", "llm-ranker")},
		logger:    slog.Default().With("component", "llm-provider"),
	}
}

func newModel(ctx context.Context, config *ai.Config) (llms.Model, error) {
	switch config.Provider {
	case ai.ProviderGoogle:
		return googleai.New(ctx,
			googleai.WithAPIKey(config.APIKey),
			googleai.WithDefaultModel(config.Model),
		)
	case ai.ProviderOpenAI:
		// Local OpenAI-compatible servers accept any token
		token := config.APIKey
		if token == "" {
			token = "none"
		}
		return openai.New(
			openai.WithBaseURL(config.Host),
			openai.WithToken(token),
			openai.WithModel(config.Model),
		)
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", config.Provider)
	}
}

// KeywordExtractor returns the keyword extraction service.
func (p *Provider) KeywordExtractor() ai.KeywordExtractor {
	return p.extractor
}

// Ranker returns the re-ranking service.
func (p *Provider) Ranker() ai.Ranker {
	return p.ranker
}

// Close releases the model client if it holds resources.
func (p *Provider) Close() error {
	p.logger.Debug("closing llm provider")
	if closer, ok := p.model.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
