package features

import (
	"strings"

	"github.com/mmwithiga/tarumbeta/core"
)

// Categorical column positions.
const (
	ColLocation = iota
	ColInstrument
	ColTeachingLanguage
	ColSkillLevel
	NumCategorical
)

// Numeric column positions.
const (
	ColHourlyRate = iota
	ColRating
	ColYearsExperience
	NumNumeric
)

// CategoricalColumns names the one-hot encoded columns in block order.
var CategoricalColumns = [NumCategorical]string{"location", "instrument_type", "teaching_language", "skill_level"}

// NumericColumns names the min/max scaled columns in block order.
var NumericColumns = [NumNumeric]string{"hourly_rate", "rating", "years_experience"}

// Row is the raw, unencoded form of anything that can be placed in the
// feature space: an instructor record or a learner query.
type Row struct {
	Categorical [NumCategorical]string
	Numeric     [NumNumeric]float64
	Text        string
}

// CandidateRow extracts the feature columns of an instructor.
func CandidateRow(c *core.Candidate) Row {
	var r Row
	r.Categorical[ColLocation] = c.Location
	r.Categorical[ColInstrument] = c.Instrument
	r.Categorical[ColTeachingLanguage] = c.TeachingLanguage
	r.Categorical[ColSkillLevel] = c.SkillLevel
	r.Numeric[ColHourlyRate] = c.HourlyRate
	r.Numeric[ColRating] = c.Rating
	r.Numeric[ColYearsExperience] = c.YearsExperience
	r.Text = strings.TrimSpace(c.Bio)
	return r
}

// learnerRow extracts the categorical columns and budget of a learner.
// Rating and experience are not learner attributes and stay zero.
func learnerRow(p *core.Profile) Row {
	var r Row
	r.Categorical[ColLocation] = p.Location
	r.Categorical[ColInstrument] = p.Instrument
	r.Categorical[ColTeachingLanguage] = p.TeachingLanguage
	r.Categorical[ColSkillLevel] = p.SkillLevel
	r.Numeric[ColHourlyRate] = p.Budget
	r.Text = p.GoalsText()
	return r
}
