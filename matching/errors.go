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

package matching

import "errors"

var (
	// ErrCandidateRepositoryRequired is returned when a candidate repository is not provided.
	ErrCandidateRepositoryRequired = errors.New("candidate repository required")

	// ErrMatchLogRepositoryRequired is returned when a match log repository is not provided.
	ErrMatchLogRepositoryRequired = errors.New("match log repository required")

	// ErrStrategyRequired is returned when a scoring strategy is not provided.
	ErrStrategyRequired = errors.New("strategy required")

	// ErrVectorizerRequired is returned when the semantic strategy has no vectorizer.
	ErrVectorizerRequired = errors.New("vectorizer required")

	// ErrLearnerRequired is returned when a match log operation has no learner id.
	ErrLearnerRequired = errors.New("learner id required")

	// ErrInvalidTopN is returned when the result count is not positive.
	ErrInvalidTopN = errors.New("top N must be positive")

	// ErrInvalidTiers is returned when tier thresholds are out of order or outside [0, 1].
	ErrInvalidTiers = errors.New("tier thresholds must descend within [0, 1]")
)
