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

// Package llm implements the ai interfaces on top of langchaingo.
//
// One llms.Model client backs both services. Two backends are supported:
// any OpenAI-compatible server (Ollama, vLLM, OpenAI) and Google Gemini.
//
// Every logical call goes through a circuit breaker wrapping a bounded retry
// with exponential backoff. While the breaker is open, calls fail fast with
// ai.ErrUnavailable so the caller can skip the remaining model stages.
//
// Model answers are free text that should contain a JSON object. The first
// balanced object is cut out of the text (code fences and prose around it
// are tolerated), lightly repaired, and decoded.
package llm
