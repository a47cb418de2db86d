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

package features

import (
	"fmt"

	"github.com/mmwithiga/tarumbeta/core"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// Space is a fitted, frozen feature space. Every vector compared against
// another must come from the same Space; Version identifies it.
type Space struct {
	vocab        *Vocabulary
	scaler       *Scaler
	embeddingDim int
	version      string
}

// Fit learns the categorical vocabulary and numeric ranges from the union of
// learner and instructor rows. Learner rows contribute their categories and
// their budget (to the hourly rate column) only.
func Fit(learners []core.Profile, instructors []core.Candidate, embeddingDim int) (*Space, error) {
	if embeddingDim <= 0 {
		return nil, fmt.Errorf("%w: embedding dimension must be positive, got %d", core.ErrConfiguration, embeddingDim)
	}

	rows := make([]Row, 0, len(learners)+len(instructors))
	for i := range instructors {
		rows = append(rows, CandidateRow(&instructors[i]))
	}
	scaler := FitScaler(rows)

	for i := range learners {
		r := learnerRow(&learners[i])
		rows = append(rows, r)
		if r.Numeric[ColHourlyRate] > 0 {
			scaler.observe(ColHourlyRate, r.Numeric[ColHourlyRate])
		}
	}

	return newSpace(FitVocabulary(rows), scaler, embeddingDim)
}

func newSpace(vocab *Vocabulary, scaler *Scaler, embeddingDim int) (*Space, error) {
	s := &Space{vocab: vocab, scaler: scaler, embeddingDim: embeddingDim}
	data, err := s.MarshalBinary()
	if err != nil {
		return nil, err
	}
	s.version = fmt.Sprintf("%016x", uint64(core.IDFromContent(string(data))))
	return s, nil
}

// Version is a fingerprint of the fitted state. Two spaces with the same
// vocabulary, ranges and embedding dimension have the same version.
func (s *Space) Version() string { return s.version }

// Dim returns the length of a blended vector.
func (s *Space) Dim() int { return s.vocab.Dim() + NumNumeric + s.embeddingDim }

// EmbeddingDim returns the width of the text block.
func (s *Space) EmbeddingDim() int { return s.embeddingDim }

// Vocabulary returns the fitted categorical vocabulary.
func (s *Space) Vocabulary() *Vocabulary { return s.vocab }

// Scaler returns the fitted numeric ranges.
func (s *Space) Scaler() *Scaler { return s.scaler }

// ProfileRow places a learner query in the space. The budget fills the hourly
// rate column; rating and experience are set to the best fitted values so the
// query describes the ideal instructor.
func (s *Space) ProfileRow(p core.Profile) Row {
	r := learnerRow(&p)
	r.Numeric[ColRating] = s.scaler.Max(ColRating)
	r.Numeric[ColYearsExperience] = s.scaler.Max(ColYearsExperience)
	return r
}

var (
	columnsMUS = ord.NewSliceSer[[]string](ord.NewSliceSer[string](ord.String))
	rangeMUS   = ord.NewSliceSer[float64](raw.Float64)
)

// MarshalBinary encodes the fitted state.
func (s *Space) MarshalBinary() ([]byte, error) {
	columns := make([][]string, NumCategorical)
	for col := range NumCategorical {
		columns[col] = s.vocab.columns[col]
	}
	mins := s.scaler.min[:]
	maxs := s.scaler.max[:]

	size := varint.Int.Size(s.embeddingDim) + columnsMUS.Size(columns) +
		rangeMUS.Size(mins) + rangeMUS.Size(maxs)
	bs := make([]byte, size)
	n := varint.Int.Marshal(s.embeddingDim, bs)
	n += columnsMUS.Marshal(columns, bs[n:])
	n += rangeMUS.Marshal(mins, bs[n:])
	rangeMUS.Marshal(maxs, bs[n:])
	return bs, nil
}

// UnmarshalSpace decodes a Space written by MarshalBinary.
func UnmarshalSpace(data []byte) (*Space, error) {
	dim, n, err := varint.Int.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: decode space: %w", core.ErrConfiguration, err)
	}
	columns, n1, err := columnsMUS.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: decode space vocabulary: %w", core.ErrConfiguration, err)
	}
	n += n1
	mins, n1, err := rangeMUS.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: decode space ranges: %w", core.ErrConfiguration, err)
	}
	n += n1
	maxs, _, err := rangeMUS.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: decode space ranges: %w", core.ErrConfiguration, err)
	}
	if len(columns) != NumCategorical || len(mins) != NumNumeric || len(maxs) != NumNumeric {
		return nil, fmt.Errorf("%w: space layout does not match this build", core.ErrConfiguration)
	}
	if dim <= 0 {
		return nil, fmt.Errorf("%w: embedding dimension must be positive, got %d", core.ErrConfiguration, dim)
	}

	var cols [NumCategorical][]string
	copy(cols[:], columns)
	scaler := &Scaler{}
	for col := range NumNumeric {
		scaler.min[col], scaler.max[col] = mins[col], maxs[col]
		scaler.seen[col] = true
	}
	return newSpace(newVocabulary(cols), scaler, dim)
}
