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


// Package storage provides the storage abstraction layer for picko.
//
// This package defines repository interfaces that decouple storage implementation
// from the recommendation logic. Two backends implement them:
//
//   - storage/badger: embedded BadgerDB, the default backend
//   - storage/sqlite: a single SQLite file through the pure-Go modernc driver
//
// # Architecture
//
// The storage layer follows the Repository pattern:
//
//   - Repository: Ping and Close, shared by all repositories
//   - ToolRepository: the tool catalog (add, get, substring search, bounded scan)
//   - InteractionRepository: favorites and ratings keyed by session, tool and type
//
// # Failure Kinds
//
// Repositories distinguish a store that cannot be reached from a query that
// failed. The former is reported with an error wrapping ErrStoreUnavailable;
// callers use errors.Is to decide whether retrying other queries makes sense.
//
// # Usage
//
//	tools, interactions, backend, err := badger.NewMemoryRepositories()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//
//	hits, err := tools.SearchTools(ctx, "marketing", core.DefaultSearchFields, 50)
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation
// and timeout support. Pass context.Background() for operations
// without specific timeout requirements.
package storage
