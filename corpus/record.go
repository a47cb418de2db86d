package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mmwithiga/tarumbeta/core"
	"gopkg.in/yaml.v3"
)

// Record is the interchange form of an instructor, as exported by the
// instructor directory or the offline corpus generator.
type Record struct {
	ID               string   `json:"id" yaml:"id"`
	Name             string   `json:"name" yaml:"name"`
	Email            string   `json:"email" yaml:"email"`
	AvatarURL        string   `json:"avatar_url" yaml:"avatar_url"`
	Location         string   `json:"location" yaml:"location"`
	Instrument       string   `json:"instrument_type" yaml:"instrument_type"`
	SkillLevel       string   `json:"skill_level" yaml:"skill_level"`
	TeachingLanguage string   `json:"teaching_language" yaml:"teaching_language"`
	HourlyRate       float64  `json:"hourly_rate" yaml:"hourly_rate"`
	Rating           float64  `json:"rating" yaml:"rating"`
	YearsExperience  float64  `json:"years_experience" yaml:"years_experience"`
	TotalStudents    int      `json:"total_students" yaml:"total_students"`
	Bio              string   `json:"bio" yaml:"bio"`
	BioKeywords      string   `json:"bio_keywords" yaml:"bio_keywords"`
	TeachingStyle    string   `json:"teaching_style" yaml:"teaching_style"`
	AvailableDays    []string `json:"available_days" yaml:"available_days"`
}

// Candidate converts the record. Generated records carry their text in
// bio_keywords, which is used when bio is empty.
func (r Record) Candidate(source core.Source) core.Candidate {
	bio := strings.TrimSpace(r.Bio)
	if bio == "" {
		bio = strings.TrimSpace(r.BioKeywords)
	}
	return core.Candidate{
		ProfileID:        strings.TrimSpace(r.ID),
		Name:             strings.TrimSpace(r.Name),
		Email:            strings.TrimSpace(r.Email),
		AvatarURL:        strings.TrimSpace(r.AvatarURL),
		Location:         strings.TrimSpace(r.Location),
		Instrument:       strings.TrimSpace(r.Instrument),
		SkillLevel:       strings.TrimSpace(r.SkillLevel),
		TeachingLanguage: strings.TrimSpace(r.TeachingLanguage),
		HourlyRate:       r.HourlyRate,
		Rating:           r.Rating,
		YearsExperience:  r.YearsExperience,
		TotalStudents:    r.TotalStudents,
		Bio:              bio,
		TeachingStyle:    strings.TrimSpace(r.TeachingStyle),
		AvailableDays:    r.AvailableDays,
		Source:           source,
	}
}

// ProfileRecord is the interchange form of a learner profile.
type ProfileRecord struct {
	Instrument       string   `json:"instrument_type" yaml:"instrument_type"`
	SkillLevel       string   `json:"skill_level" yaml:"skill_level"`
	ExperienceLevel  string   `json:"experience_level" yaml:"experience_level"`
	TeachingLanguage string   `json:"teaching_language" yaml:"teaching_language"`
	Location         string   `json:"location" yaml:"location"`
	Goals            string   `json:"goals" yaml:"goals"`
	LearningGoals    []string `json:"learning_goals" yaml:"learning_goals"`
	LearningStyle    string   `json:"learning_style" yaml:"learning_style"`
	Budget           float64  `json:"budget" yaml:"budget"`
	Schedule         struct {
		Days  []string `json:"days" yaml:"days"`
		Times []string `json:"times" yaml:"times"`
	} `json:"preferred_schedule" yaml:"preferred_schedule"`
}

// Profile converts the record; experience_level is accepted as an alias
// for skill_level.
func (r ProfileRecord) Profile() core.Profile {
	skill := r.SkillLevel
	if strings.TrimSpace(skill) == "" {
		skill = r.ExperienceLevel
	}
	return core.Profile{
		Instrument:       r.Instrument,
		SkillLevel:       skill,
		TeachingLanguage: r.TeachingLanguage,
		Location:         r.Location,
		Goals:            r.Goals,
		LearningGoals:    r.LearningGoals,
		LearningStyle:    r.LearningStyle,
		Budget:           r.Budget,
		Schedule:         core.Schedule{Days: r.Schedule.Days, Times: r.Schedule.Times},
	}
}

// LoadRecords reads a JSON or YAML list of instructor records.
func LoadRecords(path string) ([]Record, error) {
	var records []Record
	if err := decodeFile(path, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// LoadCandidates reads a record file and converts every record.
func LoadCandidates(path string, source core.Source) ([]core.Candidate, error) {
	records, err := LoadRecords(path)
	if err != nil {
		return nil, err
	}
	out := make([]core.Candidate, len(records))
	for i, r := range records {
		out[i] = r.Candidate(source)
	}
	return out, nil
}

// LoadProfiles reads a JSON or YAML list of learner profiles.
func LoadProfiles(path string) ([]core.Profile, error) {
	var records []ProfileRecord
	if err := decodeFile(path, &records); err != nil {
		return nil, err
	}
	out := make([]core.Profile, len(records))
	for i, r := range records {
		out[i] = r.Profile()
	}
	return out, nil
}

// LoadProfile reads a single learner profile.
func LoadProfile(path string) (core.Profile, error) {
	var record ProfileRecord
	if err := decodeFile(path, &record); err != nil {
		return core.Profile{}, err
	}
	return record.Profile(), nil
}

func decodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return nil
}
