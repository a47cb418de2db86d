package matching

import (
	"context"
	"fmt"
	"testing"

	"github.com/mmwithiga/tarumbeta/ai/mock"
	"github.com/mmwithiga/tarumbeta/core"
	"github.com/mmwithiga/tarumbeta/features"
	"github.com/mmwithiga/tarumbeta/index"
	"github.com/mmwithiga/tarumbeta/storage/badger"
	"github.com/stretchr/testify/require"
)

const testDim = 16

func newRepos(t *testing.T) *badger.Repositories {
	t.Helper()
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })
	return repos
}

func guitarLearner() core.Profile {
	return core.Profile{
		Instrument:       "Guitar",
		SkillLevel:       "beginner",
		TeachingLanguage: "English",
		Location:         "Nairobi",
		Goals:            "Learn chords and play worship songs",
		LearningStyle:    "Patient",
		Budget:           2000,
	}
}

func alice(source core.Source) core.Candidate {
	return core.Candidate{
		ProfileID:        "p-alice",
		Name:             "Alice Wanjiru",
		Location:         "Nairobi",
		Instrument:       "Guitar",
		SkillLevel:       "Beginner",
		TeachingLanguage: "English",
		HourlyRate:       1500,
		Rating:           4.8,
		YearsExperience:  8,
		TotalStudents:    25,
		Bio:              "Patient guitar teacher for beginners, chords and worship songs",
		TeachingStyle:    "patient",
		Source:           source,
	}
}

func brian(source core.Source) core.Candidate {
	return core.Candidate{
		ProfileID:        "p-brian",
		Name:             "Brian Otieno",
		Location:         "Mombasa",
		Instrument:       "Piano",
		SkillLevel:       "Advanced",
		TeachingLanguage: "English",
		HourlyRate:       3500,
		Rating:           4.1,
		YearsExperience:  3,
		TotalStudents:    4,
		Bio:              "Classical piano and music theory for advanced students",
		TeachingStyle:    "Structured",
		Source:           source,
	}
}

// syntheticPool returns the two named instructors plus n fillers whose
// names have no live counterpart.
func syntheticPool(n int) []core.Candidate {
	pool := []core.Candidate{alice(core.SourceSynthetic), brian(core.SourceSynthetic)}
	pool[0].ProfileID, pool[1].ProfileID = "", ""
	instruments := []string{"Drums", "Violin", "Piano", "Guitar"}
	for i := range n {
		pool = append(pool, core.Candidate{
			Name:             fmt.Sprintf("Instructor_%d", i),
			Location:         []string{"Kisumu", "Nakuru", "Mombasa"}[i%3],
			Instrument:       instruments[i%len(instruments)],
			SkillLevel:       []string{"Intermediate", "Advanced"}[i%2],
			TeachingLanguage: []string{"Swahili", "English"}[i%2],
			HourlyRate:       float64(800 + 300*i),
			Rating:           3.0 + float64(i%10)/10,
			YearsExperience:  float64(1 + i%15),
			Bio:              fmt.Sprintf("%s lessons, instructor %d", instruments[i%len(instruments)], i),
			Source:           core.SourceSynthetic,
		})
	}
	return pool
}

// persistentPool fits a space over pool and indexes it the way a bundle does.
func persistentPool(t *testing.T, pool []core.Candidate) (*Pool, *features.Vectorizer) {
	t.Helper()
	space, err := features.Fit(nil, pool, testDim)
	require.NoError(t, err)
	vectorizer, err := features.NewVectorizer(space, mock.NewMockEmbedderWithDimension(testDim))
	require.NoError(t, err)

	ptrs := make([]*core.Candidate, len(pool))
	for i := range pool {
		ptrs[i] = &pool[i]
	}
	vecs, err := vectorizer.VectorizeCandidates(context.Background(), ptrs)
	require.NoError(t, err)

	idx := &index.VPTree{}
	require.NoError(t, idx.Build(vecs))
	return &Pool{Source: core.SourceSynthetic, Candidates: ptrs, Index: idx}, vectorizer
}

func addLive(t *testing.T, repos *badger.Repositories, candidates ...core.Candidate) {
	t.Helper()
	ptrs := make([]*core.Candidate, len(candidates))
	for i := range candidates {
		ptrs[i] = &candidates[i]
	}
	_, err := repos.Candidates.AddCandidates(context.Background(), ptrs...)
	require.NoError(t, err)
}

func ptr[T any](v T) *T { return &v }

func withName(c core.Candidate, name string) *core.Candidate {
	c.Name = name
	return &c
}
