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

package badger

import "github.com/mmwithiga/tarumbeta/storage"

// Repositories groups the repositories sharing one backend.
type Repositories struct {
	Candidates storage.CandidateRepository
	MatchLogs  storage.MatchLogRepository
	Artifacts  storage.ArtifactRepository
	Backend    *Backend
}

// OpenRepositories opens every repository over a backend at path, or an
// in-memory backend when inMemory is set.
func OpenRepositories(path string, inMemory bool) (*Repositories, error) {
	backend, err := OpenBackend(path, inMemory)
	if err != nil {
		return nil, err
	}

	candidates, err := NewCandidateRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	matchLogs, err := NewMatchLogRepository(backend)
	if err != nil {
		candidates.Close()
		backend.Close()
		return nil, err
	}

	artifacts, err := NewArtifactRepository(backend)
	if err != nil {
		matchLogs.Close()
		candidates.Close()
		backend.Close()
		return nil, err
	}

	return &Repositories{
		Candidates: candidates,
		MatchLogs:  matchLogs,
		Artifacts:  artifacts,
		Backend:    backend,
	}, nil
}

// NewMemoryRepositories creates in-memory repositories for testing.
// Caller must Close the result when done.
func NewMemoryRepositories() (*Repositories, error) {
	return OpenRepositories("", true)
}

// Close releases the repositories and then the backend.
func (r *Repositories) Close() error {
	r.Artifacts.Close()
	r.MatchLogs.Close()
	r.Candidates.Close()
	return r.Backend.Close()
}
