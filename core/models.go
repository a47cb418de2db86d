package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for stored entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Source identifies which candidate pool a record belongs to.
type Source int

const (
	// SourceLive marks records backed by a real, bookable instructor profile.
	SourceLive Source = iota + 1
	// SourceSynthetic marks records from the offline generated corpus.
	SourceSynthetic
)

func (s Source) String() string {
	switch s {
	case SourceLive:
		return "live"
	case SourceSynthetic:
		return "synthetic"
	default:
		return "unknown"
	}
}

// ParseSource converts "live" or "synthetic" into a Source.
func ParseSource(s string) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "live":
		return SourceLive, nil
	case "synthetic":
		return SourceSynthetic, nil
	}
	return 0, ErrInvalidSource
}

// Candidate is an instructor that can be ranked against a learner profile.
// Live candidates carry the persistent ProfileID of the instructor record;
// synthetic candidates only have a display name.
type Candidate struct {
	Id               ID
	ProfileID        string
	Name             string
	Email            string
	AvatarURL        string
	Location         string
	Instrument       string
	SkillLevel       string
	TeachingLanguage string
	HourlyRate       float64
	Rating           float64
	YearsExperience  float64
	TotalStudents    int
	Bio              string
	TeachingStyle    string
	AvailableDays    []string
	Source           Source
	InsertedAt       time.Time
}

// Identity returns the tagged identity of the candidate.
func (c *Candidate) Identity() Identity {
	if c.Source == SourceLive {
		return LiveIdentity{ProfileID: c.ProfileID, Name: c.Name}
	}
	return SyntheticIdentity{Name: c.Name}
}

// Schedule is a learner's preferred lesson days and times.
type Schedule struct {
	Days  []string
	Times []string
}

// Profile is the learner's stated needs. It is a per-request value and is
// never persisted.
type Profile struct {
	Instrument       string
	SkillLevel       string
	TeachingLanguage string
	Location         string
	Goals            string
	LearningGoals    []string
	LearningStyle    string
	Budget           float64
	Schedule         Schedule
}

// GoalsText joins every free-text field of the profile into the text that
// is sent to the embedder.
func (p *Profile) GoalsText() string {
	parts := make([]string, 0, len(p.LearningGoals)+2)
	if s := strings.TrimSpace(p.Goals); s != "" {
		parts = append(parts, s)
	}
	for _, g := range p.LearningGoals {
		if s := strings.TrimSpace(g); s != "" {
			parts = append(parts, s)
		}
	}
	if s := strings.TrimSpace(p.LearningStyle); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}

// MatchResult is one ranked instructor returned to the learner.
type MatchResult struct {
	Identity        LiveIdentity
	Name            string
	Email           string
	AvatarURL       string
	Location        string
	Instrument      string
	SkillLevel      string
	HourlyRate      float64
	Rating          float64
	YearsExperience float64
	TotalStudents   int
	Bio             string
	Score           float64 // raw similarity
	MatchScore      int     // 0-100
	Reasons         []string
	Strength        string
	Source          Source
	Proxy           bool // identity substituted by the configured fallback instructor
}

// MatchStatus is the lifecycle state of a logged suggestion.
type MatchStatus string

const (
	MatchStatusSuggested MatchStatus = "suggested"
	MatchStatusAccepted  MatchStatus = "accepted"
	MatchStatusDeclined  MatchStatus = "declined"
)

// MatchLogEntry records a suggestion made to a learner.
type MatchLogEntry struct {
	Id           ID
	LearnerID    string
	CandidateRef string // ProfileID of the suggested live instructor
	Score        int
	Status       MatchStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Bundle is a persisted, versioned set of serving artifacts: the frozen
// feature space, the synthetic candidate pool and its similarity index.
// Space and Index hold their own binary encodings. SpaceVersion is the
// version of the Space the index vectors were encoded with.
type Bundle struct {
	Version      string
	SpaceVersion string
	EmbeddingDim int
	IndexKind    string
	Space        []byte
	Index        []byte
	Candidates   []Candidate
	CreatedAt    time.Time
}
