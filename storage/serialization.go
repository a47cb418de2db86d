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

package storage

import (
	"github.com/mmwithiga/tarumbeta/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalCandidate serializes a Candidate to bytes.
func MarshalCandidate(candidate *core.Candidate) []byte {
	buf := make([]byte, core.CandidateMUS.Size(*candidate))
	core.CandidateMUS.Marshal(*candidate, buf)
	return buf
}

// UnmarshalCandidate deserializes a Candidate from bytes.
func UnmarshalCandidate(data []byte) (*core.Candidate, error) {
	candidate, _, err := core.CandidateMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &candidate, nil
}

// MarshalMatchLogEntry serializes a MatchLogEntry to bytes.
func MarshalMatchLogEntry(entry *core.MatchLogEntry) []byte {
	buf := make([]byte, core.MatchLogEntryMUS.Size(*entry))
	core.MatchLogEntryMUS.Marshal(*entry, buf)
	return buf
}

// UnmarshalMatchLogEntry deserializes a MatchLogEntry from bytes.
func UnmarshalMatchLogEntry(data []byte) (*core.MatchLogEntry, error) {
	entry, _, err := core.MatchLogEntryMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// MarshalBundle serializes a Bundle to bytes.
func MarshalBundle(bundle *core.Bundle) []byte {
	buf := make([]byte, core.BundleMUS.Size(*bundle))
	core.BundleMUS.Marshal(*bundle, buf)
	return buf
}

// UnmarshalBundle deserializes a Bundle from bytes.
func UnmarshalBundle(data []byte) (*core.Bundle, error) {
	bundle, _, err := core.BundleMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &bundle, nil
}
