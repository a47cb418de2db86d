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

// Package ai provides abstractions for the text embedding service used by the
// matching engine.
//
// The embedder is treated as an external oracle: text in, fixed-length vector
// out, deterministic for a given model. The engine never looks inside it.
//
// # Design Principles
//
//   - Embedder: Generates vector embeddings from text and reports its health
//   - AIProvider: Owns the embedder and its lifecycle
//   - CachedEmbedder: Read-through cache for repeated texts (candidate bios)
//
// # Implementation Packages
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewProvider, openai.NewEmbedder) return
// INTERFACE types to prevent coupling to concrete implementations.
//
//	provider, err := openai.NewProvider(config)  // returns ai.AIProvider
//
// Test utility constructors (mock.NewMockEmbedder) return CONCRETE types so
// tests can inject behavior and read call counts.
//
//	mockEmbed := mock.NewMockEmbedderWithDimension(16)
//	count := mockEmbed.CallCount()
package ai
