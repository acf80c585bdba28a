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

// Package ai provides abstractions for the generative model behind tool recommendation.
//
// The pipeline needs two things from a model: keywords for a task, and a ranked
// pick of tools from a numbered listing. Both are expressed as interfaces so the
// recommend package depends on abstractions rather than a vendor SDK:
//
//   - KeywordExtractor: turns a task into search keywords
//   - Ranker: re-ranks candidate tools for a task
//   - AIProvider: aggregates both and owns the shared client
//
// # Implementation Packages
//
//   - ai/llm: production implementation on langchaingo, for OpenAI-compatible
//     servers and Google Gemini, with bounded retries and a circuit breaker
//   - ai/mock: test doubles with injectable behavior and call counters
//
// Public constructors in ai/llm return interface types. Mocks return concrete
// types so tests can inject behavior and assert on call counts.
//
// # Failure Model
//
// Every error from these services is recoverable by the caller: the pipeline
// falls back to deterministic keywords or to the unranked candidate order.
// ErrUnavailable is reported when no call was attempted at all, which lets the
// pipeline skip the remaining model stages of a request.
//
// # Usage Example
//
//	cfg := ai.NewConfig(ai.WithProvider(ai.ProviderGoogle), ai.WithAPIKey(key), ai.WithModel("gemini-2.0-flash"))
//	provider, err := llm.NewProvider(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	keywords, err := provider.KeywordExtractor().ExtractKeywords(ctx, "마케팅 보고서 작성")
package ai
