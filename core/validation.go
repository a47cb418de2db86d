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

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultTeachingLanguage is applied when a profile leaves the language blank.
const DefaultTeachingLanguage = "English"

// MaxRating is the top of the instructor rating scale.
const MaxRating = 5.0

// ValidateCandidate validates a Candidate according to domain rules.
//
// Validation rules:
//   - Name and Instrument must not be empty
//   - HourlyRate, YearsExperience and TotalStudents must not be negative
//   - Rating must be within [0, 5]
//   - Source must be Live or Synthetic
//
// NOT validated:
//   - ProfileID (live records get one assigned on import)
//   - Id (0 is valid before storage assigns one)
func ValidateCandidate(c *Candidate) error {
	if c == nil {
		return fmt.Errorf("%w: candidate is nil", ErrInvalidCandidate)
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCandidate, ErrEmptyName)
	}
	if strings.TrimSpace(c.Instrument) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCandidate, ErrMissingInstrument)
	}
	if !finiteNonNegative(c.HourlyRate) {
		return fmt.Errorf("%w: %w: hourly rate %v", ErrInvalidCandidate, ErrInvalidNumeric, c.HourlyRate)
	}
	if !finiteNonNegative(c.YearsExperience) {
		return fmt.Errorf("%w: %w: years of experience %v", ErrInvalidCandidate, ErrInvalidNumeric, c.YearsExperience)
	}
	if !finiteNonNegative(c.Rating) || c.Rating > MaxRating {
		return fmt.Errorf("%w: %w: rating %v", ErrInvalidCandidate, ErrInvalidNumeric, c.Rating)
	}
	if c.TotalStudents < 0 {
		return fmt.Errorf("%w: %w: total students %d", ErrInvalidCandidate, ErrInvalidNumeric, c.TotalStudents)
	}
	if err := ValidateSource(c.Source); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCandidate, err)
	}
	return nil
}

// ValidateProfile checks the fields a learner must supply.
func ValidateProfile(p *Profile) error {
	if p == nil {
		return fmt.Errorf("%w: profile is nil", ErrInvalidProfile)
	}
	if strings.TrimSpace(p.Instrument) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, ErrMissingInstrument)
	}
	if strings.TrimSpace(p.SkillLevel) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, ErrMissingSkillLevel)
	}
	if !finiteNonNegative(p.Budget) || p.Budget == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, ErrInvalidBudget)
	}
	return nil
}

// NormalizeProfile returns a copy of p with input-boundary defaults applied:
// surrounding whitespace is trimmed, the teaching language defaults to
// English and the skill level is title-cased.
func NormalizeProfile(p Profile) Profile {
	title := cases.Title(language.English)
	p.Instrument = strings.TrimSpace(p.Instrument)
	p.Location = strings.TrimSpace(p.Location)
	p.SkillLevel = title.String(strings.TrimSpace(p.SkillLevel))
	p.TeachingLanguage = strings.TrimSpace(p.TeachingLanguage)
	if p.TeachingLanguage == "" {
		p.TeachingLanguage = DefaultTeachingLanguage
	}
	return p
}

// ValidateSource validates that a Source has a valid value.
func ValidateSource(s Source) error {
	if s != SourceLive && s != SourceSynthetic {
		return fmt.Errorf("%w: value %d", ErrInvalidSource, s)
	}
	return nil
}

// ValidateMatchStatus validates that a MatchStatus has a valid value.
func ValidateMatchStatus(s MatchStatus) error {
	switch s {
	case MatchStatusSuggested, MatchStatusAccepted, MatchStatusDeclined:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidMatchStatus, string(s))
}

func finiteNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
