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

package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidCandidate indicates a Candidate failed validation.
	ErrInvalidCandidate = errors.New("invalid candidate")

	// ErrInvalidProfile indicates a learner Profile failed validation.
	ErrInvalidProfile = errors.New("invalid profile")

	// ErrEmptyName indicates the candidate Name field is empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrMissingInstrument indicates the instrument is empty.
	ErrMissingInstrument = errors.New("instrument is required")

	// ErrMissingSkillLevel indicates the skill level is empty.
	ErrMissingSkillLevel = errors.New("skill level is required")

	// ErrInvalidBudget indicates a missing, negative or non-finite budget.
	ErrInvalidBudget = errors.New("budget must be a positive number")

	// ErrInvalidNumeric indicates a numeric attribute is out of range.
	ErrInvalidNumeric = errors.New("numeric attribute out of range")

	// ErrInvalidSource indicates an unknown Source value.
	ErrInvalidSource = errors.New("invalid source")

	// ErrInvalidMatchStatus indicates an unknown MatchStatus value.
	ErrInvalidMatchStatus = errors.New("invalid match status")
)

// Engine errors
var (
	// ErrConfiguration indicates missing, unreadable or mismatched artifacts.
	// The engine refuses to start when it sees one.
	ErrConfiguration = errors.New("configuration error")

	// ErrEmbeddingFailure indicates the text embedder was unavailable or
	// timed out. The request may be retried.
	ErrEmbeddingFailure = errors.New("embedding failure")

	// ErrDimensionMismatch indicates vectors of different lengths were mixed.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrUnauthorized indicates a learner tried to act on another learner's match.
	ErrUnauthorized = errors.New("unauthorized")
)
