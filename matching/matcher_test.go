package matching

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/mmwithiga/tarumbeta/ai/mock"
	"github.com/mmwithiga/tarumbeta/core"
	"github.com/mmwithiga/tarumbeta/features"
	"github.com/mmwithiga/tarumbeta/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMatcher(t *testing.T) {
	repos := newRepos(t)
	rule := RuleBasedStrategy{}

	t.Run("valid configuration", func(t *testing.T) {
		m, err := NewMatcher(repos.Candidates, repos.MatchLogs, rule)
		require.NoError(t, err)
		assert.Equal(t, StrategyRuleBased, m.Strategy())
	})

	t.Run("with nil logger falls back to default", func(t *testing.T) {
		_, err := NewMatcher(repos.Candidates, repos.MatchLogs, rule, WithLogger(nil))
		require.NoError(t, err)
	})

	t.Run("nil candidate repository", func(t *testing.T) {
		_, err := NewMatcher(nil, repos.MatchLogs, rule)
		assert.Equal(t, ErrCandidateRepositoryRequired, err)
	})

	t.Run("nil match log repository", func(t *testing.T) {
		_, err := NewMatcher(repos.Candidates, nil, rule)
		assert.Equal(t, ErrMatchLogRepositoryRequired, err)
	})

	t.Run("nil strategy", func(t *testing.T) {
		_, err := NewMatcher(repos.Candidates, repos.MatchLogs, nil)
		assert.Equal(t, ErrStrategyRequired, err)
	})

	t.Run("invalid options", func(t *testing.T) {
		_, err := NewMatcher(repos.Candidates, repos.MatchLogs, rule, WithTopN(0))
		assert.ErrorIs(t, err, ErrInvalidTopN)
		_, err = NewMatcher(repos.Candidates, repos.MatchLogs, rule, WithTiers(Tiers{Excellent: 0.1, Great: 0.9}))
		assert.ErrorIs(t, err, ErrInvalidTiers)
		_, err = NewMatcher(repos.Candidates, repos.MatchLogs, rule, WithPrimarySource(core.Source(9)))
		assert.ErrorIs(t, err, core.ErrInvalidSource)
	})
}

// semanticMatcher builds a matcher over a persistent synthetic pool with
// alice and brian registered as live instructors.
func semanticMatcher(t *testing.T, embedder *mock.MockEmbedder, opts ...Option) (*Matcher, *Pool) {
	t.Helper()
	repos := newRepos(t)
	addLive(t, repos, alice(core.SourceLive), brian(core.SourceLive))

	pool, vectorizer := persistentPool(t, syntheticPool(20))
	if embedder != nil {
		var err error
		vectorizer, err = features.NewVectorizer(vectorizer.Space(), embedder)
		require.NoError(t, err)
	}
	strategy, err := NewSemanticStrategy(vectorizer)
	require.NoError(t, err)

	opts = append([]Option{WithPersistentPool(pool), WithLogger(slog.Default())}, opts...)
	m, err := NewMatcher(repos.Candidates, repos.MatchLogs, strategy, opts...)
	require.NoError(t, err)
	return m, pool
}

func TestMatch_GuitarLearnerPrefersLocalGuitarInstructor(t *testing.T) {
	m, _ := semanticMatcher(t, nil, WithPrimarySource(core.SourceSynthetic))
	ctx := context.Background()

	resp, err := m.Match(ctx, "learner-1", guitarLearner())
	require.NoError(t, err)

	assert.Equal(t, StrategySemantic, resp.Strategy)
	assert.Equal(t, core.SourceSynthetic, resp.Pool)
	assert.False(t, resp.Degraded)
	require.Len(t, resp.Matches, 1, "synthetic hits without a live guitar instructor are dropped")
	assert.Equal(t, 1, resp.TotalFound)

	top := resp.Matches[0]
	assert.Equal(t, "p-alice", top.Identity.ProfileID)
	assert.Equal(t, core.SourceLive, top.Source)
	assert.Contains(t, top.Reasons, "Within budget (KES 1500/hour)")

	t.Run("suggestions are logged", func(t *testing.T) {
		history, err := m.History(ctx, "learner-1")
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, "p-alice", history[0].CandidateRef)
		assert.Equal(t, core.MatchStatusSuggested, history[0].Status)
	})
}

func TestMatch_ProxyIdentity(t *testing.T) {
	m, _ := semanticMatcher(t, nil, WithPrimarySource(core.SourceSynthetic), WithProxyIdentity("p-brian"), WithTopN(10))
	ctx := context.Background()

	resp, err := m.Match(ctx, "learner-1", guitarLearner())
	require.NoError(t, err)
	require.Len(t, resp.Matches, 10)

	assert.Equal(t, "p-alice", resp.Matches[0].Identity.ProfileID)
	assert.False(t, resp.Matches[0].Proxy)

	var proxied int
	for _, r := range resp.Matches {
		if !r.Proxy {
			assert.Equal(t, "Alice Wanjiru", r.Name)
			continue
		}
		proxied++
		assert.Equal(t, "p-brian", r.Identity.ProfileID)
		if r.Name == "Brian Otieno" {
			assert.Equal(t, "Piano", r.Instrument, "a live namesake for another instrument is not used")
			continue
		}
		assert.Contains(t, r.Name, "Instructor_", "proxied results keep their own name")
	}
	assert.Equal(t, 9, proxied)
	assert.Equal(t, 22, resp.TotalFound)

	t.Run("each instructor is logged once", func(t *testing.T) {
		history, err := m.History(ctx, "learner-1")
		require.NoError(t, err)
		require.Len(t, history, 2)
		byRef := map[string]int{}
		for _, e := range history {
			byRef[e.CandidateRef] = e.Score
		}
		assert.Equal(t, resp.Matches[0].MatchScore, byRef["p-alice"])
		assert.Equal(t, resp.Matches[1].MatchScore, byRef["p-brian"], "the best ranked proxied result is logged")
	})
}

func TestMatch_LivePoolFirst(t *testing.T) {
	m, _ := semanticMatcher(t, nil)
	ctx := context.Background()

	t.Run("live instructors for the instrument", func(t *testing.T) {
		resp, err := m.Match(ctx, "", guitarLearner())
		require.NoError(t, err)
		assert.Equal(t, core.SourceLive, resp.Pool)
		require.Len(t, resp.Matches, 1)
		assert.Equal(t, "p-alice", resp.Matches[0].Identity.ProfileID)
	})

	t.Run("persistent pool when no live instructor", func(t *testing.T) {
		p := guitarLearner()
		p.Instrument = "Drums"
		resp, err := m.Match(ctx, "", p)
		require.NoError(t, err)
		assert.Equal(t, core.SourceSynthetic, resp.Pool)
	})
}

func TestMatch_NoInstructors(t *testing.T) {
	repos := newRepos(t)
	m, err := NewMatcher(repos.Candidates, repos.MatchLogs, RuleBasedStrategy{})
	require.NoError(t, err)

	resp, err := m.Match(context.Background(), "learner-1", guitarLearner())
	require.NoError(t, err)
	assert.Empty(t, resp.Matches)
	assert.Equal(t, "No instructors found for Guitar", resp.Message)

	history, err := m.History(context.Background(), "learner-1")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestMatch_InvalidProfile(t *testing.T) {
	m, _ := semanticMatcher(t, nil)
	p := guitarLearner()
	p.Budget = 0
	_, err := m.Match(context.Background(), "", p)
	assert.ErrorIs(t, err, core.ErrInvalidProfile)
}

func failingEmbedder() *mock.MockEmbedder {
	emb := mock.NewMockEmbedderWithDimension(testDim)
	emb.EmbedTextsFunc = func(context.Context, []string) ([][]float32, error) {
		return nil, mock.ErrUnavailable
	}
	return emb
}

func TestMatch_EmbeddingFailure(t *testing.T) {
	ctx := context.Background()

	t.Run("returned as retryable error", func(t *testing.T) {
		m, _ := semanticMatcher(t, failingEmbedder())
		_, err := m.Match(ctx, "learner-1", guitarLearner())
		assert.ErrorIs(t, err, core.ErrEmbeddingFailure)
	})

	t.Run("degraded fallback", func(t *testing.T) {
		m, _ := semanticMatcher(t, failingEmbedder(), WithDegradedFallback(true))
		resp, err := m.Match(ctx, "learner-1", guitarLearner())
		require.NoError(t, err)
		assert.True(t, resp.Degraded)
		assert.Equal(t, StrategyRuleBased, resp.Strategy)
		assert.NotEmpty(t, resp.Message)
		require.NotEmpty(t, resp.Matches)
		assert.Equal(t, "p-alice", resp.Matches[0].Identity.ProfileID)
		assert.Contains(t, resp.Matches[0].Reasons, "Local instructor")
	})

	t.Run("timeout", func(t *testing.T) {
		slow := mock.NewMockEmbedderWithDimension(testDim)
		slow.EmbedTextsFunc = func(ctx context.Context, _ []string) ([][]float32, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}
		m, _ := semanticMatcher(t, slow, WithTimeout(20*time.Millisecond))
		_, err := m.Match(ctx, "", guitarLearner())
		assert.ErrorIs(t, err, core.ErrEmbeddingFailure)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestAcceptDecline(t *testing.T) {
	m, _ := semanticMatcher(t, nil, WithPrimarySource(core.SourceSynthetic))
	ctx := context.Background()

	_, err := m.Match(ctx, "learner-1", guitarLearner())
	require.NoError(t, err)
	history, err := m.History(ctx, "learner-1")
	require.NoError(t, err)
	require.Len(t, history, 2)

	t.Run("accept", func(t *testing.T) {
		got, err := m.Accept(ctx, "learner-1", history[0].Id)
		require.NoError(t, err)
		assert.Equal(t, core.MatchStatusAccepted, got.Status)
	})

	t.Run("decline", func(t *testing.T) {
		got, err := m.Decline(ctx, "learner-1", history[1].Id)
		require.NoError(t, err)
		assert.Equal(t, core.MatchStatusDeclined, got.Status)
	})

	t.Run("other learner", func(t *testing.T) {
		_, err := m.Accept(ctx, "learner-2", history[1].Id)
		assert.ErrorIs(t, err, core.ErrUnauthorized)

		entries, err := m.History(ctx, "learner-1")
		require.NoError(t, err)
		for _, e := range entries {
			if e.Id == history[1].Id {
				assert.Equal(t, core.MatchStatusDeclined, e.Status)
			}
		}
	})

	t.Run("missing entry", func(t *testing.T) {
		_, err := m.Decline(ctx, "learner-1", core.ID(987654))
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("missing learner", func(t *testing.T) {
		_, err := m.Accept(ctx, "", history[0].Id)
		assert.ErrorIs(t, err, ErrLearnerRequired)
		_, err = m.History(ctx, "")
		assert.ErrorIs(t, err, ErrLearnerRequired)
	})
}
