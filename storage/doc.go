// Copyright 2025 Poiesic Systems
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

// Package storage provides the storage abstraction layer for tarumbeta.
//
// This package defines repository interfaces that decouple the record store
// from the matching engine:
//
//   - CandidateRepository: instructor records, with instrument, name and
//     profile id lookups
//   - MatchLogRepository: suggestions made to learners and their status
//   - ArtifactRepository: versioned serving bundles (feature space,
//     synthetic pool and index)
//
// # Usage
//
// Open every repository over one BadgerDB backend:
//
//	repos, err := badger.OpenRepositories("/path/to/db", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer repos.Close()
//
// Use in tests with in-memory storage:
//
//	repos, err := badger.NewMemoryRepositories()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation
// and timeout support.
package storage
