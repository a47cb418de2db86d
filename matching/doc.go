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

// Package matching ranks instructors against a learner profile.
//
// A Matcher runs one request through these stages:
//   - Pool selection: live instructors for the instrument, or the
//     synthetic pool loaded from the current bundle
//   - Scoring by the Strategy chosen at startup (semantic or rule based)
//   - Identity resolution of synthetic hits onto live instructors
//   - Deduplication by normalized display name
//   - Ranking: truncation, strength tiers and match reasons
//
// The top results are written to the match log as suggestions, which the
// learner can later accept or decline.
package matching
