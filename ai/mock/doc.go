// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder and ai.AIProvider
// for use in unit tests. The mocks allow tests to run without an embedding
// server and produce deterministic unit vectors.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	embedding, err := mockProvider.Embedder().EmbedText(ctx, "test")
//
//	// Small vectors keep index tests fast
//	embedder := mock.NewMockEmbedderWithDimension(16)
//
//	// Simulate an unreachable backend
//	down := mock.NewUnavailableEmbedder()
//
//	// Check call counts
//	count := embedder.CallCount()
package mock
