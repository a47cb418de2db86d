package corpus

import (
	"fmt"
	"testing"

	"github.com/mmwithiga/tarumbeta/core"
	"github.com/mmwithiga/tarumbeta/storage/badger"
	"github.com/stretchr/testify/require"
)

const testDim = 16

var instruments = []string{"Guitar", "Piano", "Drums", "Violin"}
var locations = []string{"Nairobi", "Mombasa", "Kisumu"}

// syntheticPool generates n deterministic synthetic instructors.
func syntheticPool(n int) []core.Candidate {
	out := make([]core.Candidate, n)
	for i := range out {
		inst := instruments[i%len(instruments)]
		out[i] = core.Candidate{
			ProfileID:        fmt.Sprintf("I%04d", i),
			Name:             fmt.Sprintf("Instructor_%d", i),
			Location:         locations[i%len(locations)],
			Instrument:       inst,
			SkillLevel:       []string{"Beginner", "Intermediate", "Advanced"}[i%3],
			TeachingLanguage: "English",
			HourlyRate:       float64(500 + 100*(i%20)),
			Rating:           3.0 + float64(i%20)/10,
			YearsExperience:  float64(1 + i%24),
			Bio:              fmt.Sprintf("Professional %s teacher number %d", inst, i),
			Source:           core.SourceSynthetic,
		}
	}
	return out
}

func newTestRepos(t *testing.T) *badger.Repositories {
	t.Helper()
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })
	return repos
}
