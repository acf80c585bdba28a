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

// Package recommend turns a free-text task into a short, ranked list of AI tools.
//
// The Recommender runs one request through four stages:
//
//  1. Keyword extraction: the model proposes 5-10 keywords; if it fails or is
//     unavailable, the task is split on whitespace instead.
//  2. Candidate retrieval: each of the first keywords is matched as a
//     case-insensitive substring against the tool text fields; pages are
//     merged and deduplicated by tool ID.
//  3. Broadening: when no keyword matched anything, the first tools of the
//     catalog are taken unfiltered.
//  4. Re-ranking: when more than the final number of candidates remain, the
//     model picks the best ones from a numbered listing.
//
// Every stage degrades locally. A model failure falls back to deterministic
// keywords or to the unranked candidate order; a failing keyword query is
// skipped. Anything that escapes the stages, including a lost store connection
// and panics in collaborators, triggers one direct search with the raw task
// text. Recommend never returns an error: the result is a possibly empty slice
// of at most Config.ResultLimit tools.
//
// # Usage
//
//	rec, err := recommend.NewRecommender(tools, provider)
//	if err != nil {
//	    return err
//	}
//	defer rec.Release()
//
//	tools := rec.Recommend(ctx, "마케팅 보고서 작성")
//
// A nil provider is allowed: the pipeline then runs without a model and
// returns the first candidates in catalog order.
//
// # Monitoring
//
// RecommendWithMonitor reports each stage to a Monitor, which is how the CLI
// explains a recommendation. Metrics are recorded for every request.
package recommend
