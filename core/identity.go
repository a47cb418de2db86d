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

// Identity is either a LiveIdentity or a SyntheticIdentity. Callers resolve
// it with a type switch; the set of implementations is closed.
type Identity interface {
	DisplayName() string
	isIdentity()
}

// LiveIdentity references a real instructor record.
type LiveIdentity struct {
	ProfileID string
	Name      string
}

// SyntheticIdentity is a corpus-only instructor known by name alone.
type SyntheticIdentity struct {
	Name string
}

func (l LiveIdentity) DisplayName() string      { return l.Name }
func (s SyntheticIdentity) DisplayName() string { return s.Name }

func (LiveIdentity) isIdentity()      {}
func (SyntheticIdentity) isIdentity() {}

// IsZero reports whether the identity references nothing.
func (l LiveIdentity) IsZero() bool {
	return l.ProfileID == "" && l.Name == ""
}
