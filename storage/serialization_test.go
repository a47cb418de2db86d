package storage

import (
	"testing"
	"time"

	"github.com/mmwithiga/tarumbeta/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("test content")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.Error(t, err)
}

func TestMarshalUnmarshalCandidate(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	candidate := &core.Candidate{
		Id:               7,
		ProfileID:        "8c0f6f1e-2f0e-4c1a-9c55-1f3f7c1d2a10",
		Name:             "Mary Wanjiru",
		Email:            "mary@example.com",
		Location:         "Nairobi",
		Instrument:       "Guitar",
		SkillLevel:       "Beginner",
		TeachingLanguage: "English",
		HourlyRate:       1500,
		Rating:           4.8,
		YearsExperience:  6.5,
		TotalStudents:    23,
		Bio:              "Acoustic and worship guitar",
		TeachingStyle:    "Patient",
		AvailableDays:    []string{"Monday", "Saturday"},
		Source:           core.SourceLive,
		InsertedAt:       now,
	}

	decoded, err := UnmarshalCandidate(MarshalCandidate(candidate))
	require.NoError(t, err)

	assert.True(t, now.Equal(decoded.InsertedAt))
	decoded.InsertedAt = candidate.InsertedAt
	assert.Equal(t, candidate, decoded)
}

func TestMarshalUnmarshalMatchLogEntry(t *testing.T) {
	created := time.Now().UTC().Truncate(time.Microsecond)
	updated := created.Add(time.Minute)
	entry := &core.MatchLogEntry{
		Id:           3,
		LearnerID:    "learner-1",
		CandidateRef: "instructor-9",
		Score:        87,
		Status:       core.MatchStatusAccepted,
		CreatedAt:    created,
		UpdatedAt:    updated,
	}

	decoded, err := UnmarshalMatchLogEntry(MarshalMatchLogEntry(entry))
	require.NoError(t, err)

	assert.True(t, created.Equal(decoded.CreatedAt))
	assert.True(t, updated.Equal(decoded.UpdatedAt))
	assert.Equal(t, entry.Id, decoded.Id)
	assert.Equal(t, entry.LearnerID, decoded.LearnerID)
	assert.Equal(t, entry.CandidateRef, decoded.CandidateRef)
	assert.Equal(t, entry.Score, decoded.Score)
	assert.Equal(t, entry.Status, decoded.Status)
}

func TestMarshalUnmarshalBundle(t *testing.T) {
	bundle := &core.Bundle{
		Version:      "00ff00ff00ff00ff",
		SpaceVersion: "1122334455667788",
		EmbeddingDim: 384,
		IndexKind:    "vptree",
		Space:        []byte{1, 2, 3},
		Index:        []byte{4, 5, 6, 7},
		Candidates: []core.Candidate{
			{Name: "Synthetic One", Instrument: "Piano", AvailableDays: []string{"Friday"}, Source: core.SourceSynthetic},
		},
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	decoded, err := UnmarshalBundle(MarshalBundle(bundle))
	require.NoError(t, err)

	assert.Equal(t, bundle.Version, decoded.Version)
	assert.Equal(t, bundle.SpaceVersion, decoded.SpaceVersion)
	assert.Equal(t, bundle.EmbeddingDim, decoded.EmbeddingDim)
	assert.Equal(t, bundle.IndexKind, decoded.IndexKind)
	assert.Equal(t, bundle.Space, decoded.Space)
	assert.Equal(t, bundle.Index, decoded.Index)
	require.Len(t, decoded.Candidates, 1)
	assert.Equal(t, "Synthetic One", decoded.Candidates[0].Name)
	assert.Equal(t, core.SourceSynthetic, decoded.Candidates[0].Source)
	assert.True(t, bundle.CreatedAt.Equal(decoded.CreatedAt))
}

func TestUnmarshal_Truncated(t *testing.T) {
	data := MarshalCandidate(&core.Candidate{Name: "Cut Short", Source: core.SourceLive})
	_, err := UnmarshalCandidate(data[:len(data)/2])
	assert.Error(t, err)
}
