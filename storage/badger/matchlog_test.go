package badger

import (
	"context"
	"testing"

	"github.com/mmwithiga/tarumbeta/core"
	"github.com/mmwithiga/tarumbeta/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMatchLogs(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()

	added, err := repos.MatchLogs.AddMatchLogs(ctx,
		&core.MatchLogEntry{LearnerID: "l-1", CandidateRef: "p-1", Score: 91},
		&core.MatchLogEntry{LearnerID: "l-1", CandidateRef: "p-2", Score: 77},
	)
	require.NoError(t, err)
	require.Len(t, added, 2)

	for _, e := range added {
		assert.NotZero(t, e.Id)
		assert.Equal(t, core.MatchStatusSuggested, e.Status)
		assert.False(t, e.CreatedAt.IsZero())
		assert.True(t, e.CreatedAt.Equal(e.UpdatedAt))
	}

	got, err := repos.MatchLogs.GetMatchLog(ctx, added[1].Id)
	require.NoError(t, err)
	assert.Equal(t, "p-2", got.CandidateRef)
	assert.Equal(t, 77, got.Score)
}

func TestAddMatchLogs_InvalidStatus(t *testing.T) {
	repos := newRepos(t)
	_, err := repos.MatchLogs.AddMatchLogs(context.Background(),
		&core.MatchLogEntry{LearnerID: "l-1", CandidateRef: "p-1", Status: "maybe"})
	assert.ErrorIs(t, err, core.ErrInvalidMatchStatus)
}

func TestListMatchLogs_NewestFirst(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()

	for _, ref := range []string{"p-1", "p-2", "p-3"} {
		_, err := repos.MatchLogs.AddMatchLogs(ctx, &core.MatchLogEntry{LearnerID: "l-1", CandidateRef: ref})
		require.NoError(t, err)
	}
	_, err := repos.MatchLogs.AddMatchLogs(ctx, &core.MatchLogEntry{LearnerID: "l-10", CandidateRef: "p-9"})
	require.NoError(t, err)

	refs := func(entries []*core.MatchLogEntry) []string {
		out := make([]string, len(entries))
		for i, e := range entries {
			out[i] = e.CandidateRef
		}
		return out
	}

	all, err := repos.MatchLogs.ListMatchLogs(ctx, "l-1", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"p-3", "p-2", "p-1"}, refs(all))

	limited, err := repos.MatchLogs.ListMatchLogs(ctx, "l-1", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"p-3", "p-2"}, refs(limited))

	other, err := repos.MatchLogs.ListMatchLogs(ctx, "l-10", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"p-9"}, refs(other))

	none, err := repos.MatchLogs.ListMatchLogs(ctx, "nobody", 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdateMatchStatus(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()

	added, err := repos.MatchLogs.AddMatchLogs(ctx, &core.MatchLogEntry{LearnerID: "l-1", CandidateRef: "p-1"})
	require.NoError(t, err)
	id := added[0].Id

	updated, err := repos.MatchLogs.UpdateMatchStatus(ctx, id, core.MatchStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, core.MatchStatusAccepted, updated.Status)
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))

	got, err := repos.MatchLogs.GetMatchLog(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, core.MatchStatusAccepted, got.Status)

	_, err = repos.MatchLogs.UpdateMatchStatus(ctx, 4040, core.MatchStatusDeclined)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = repos.MatchLogs.UpdateMatchStatus(ctx, id, "bogus")
	assert.ErrorIs(t, err, core.ErrInvalidMatchStatus)
}
