package badger

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenBackend_InMemory(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestOpenBackend_FileSystem(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "db")
	backend, err := OpenBackend(dir, false)
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestOpenBackend_NotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := OpenBackend(file, false)
	assert.Error(t, err)
}

func TestBackendClose(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)

	assert.False(t, backend.IsClosed())
	require.NoError(t, backend.Close())
	assert.True(t, backend.IsClosed())
}

func TestWithTransaction(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()

	t.Run("successful transaction", func(t *testing.T) {
		err := backend.WithTransaction(ctx, func(ctx context.Context) error {
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("failed transaction", func(t *testing.T) {
		err := backend.WithTransaction(ctx, func(ctx context.Context) error {
			return assert.AnError
		})
		assert.Equal(t, assert.AnError, err)
	})
}

func TestNextID_NeverZero(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	seq, err := backend.GetSequence("test_sequence")
	require.NoError(t, err)
	defer seq.Release()

	id1, err := nextID(seq)
	require.NoError(t, err)
	id2, err := nextID(seq)
	require.NoError(t, err)

	assert.NotZero(t, id1)
	assert.Greater(t, id2, id1)
}

func TestKeys(t *testing.T) {
	t.Run("instrument keys fold case", func(t *testing.T) {
		assert.Equal(t, makePartialInstrumentKey("Guitar"), makePartialInstrumentKey(" GUITAR "))
		assert.True(t, bytes.HasPrefix(makeCandidateInstrumentKey("guitar", 9), makePartialInstrumentKey("Guitar")))
	})

	t.Run("instrument prefixes do not overlap", func(t *testing.T) {
		assert.False(t, bytes.HasPrefix(makeCandidateInstrumentKey("Bass Guitar", 1), makePartialInstrumentKey("Bass")))
	})

	t.Run("candidate keys sort by id", func(t *testing.T) {
		assert.Negative(t, bytes.Compare(makeCandidateKey(2), makeCandidateKey(256)))
	})

	t.Run("prefix end sorts after every entry", func(t *testing.T) {
		prefix := makePartialLearnerKey("learner-1")
		key := append(append([]byte(nil), prefix...), bytes.Repeat([]byte{0xff}, 16)...)
		assert.Positive(t, bytes.Compare(prefixEnd(prefix), key))
	})
}
