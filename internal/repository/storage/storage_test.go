package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-history/internal/repository"
	"github.com/rocketscienceinc/tictactoe-history/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-history/testing/suite"
)

// exerciseStore runs the shared key/value contract against one backend.
func exerciseStore(ctx context.Context, t *testing.T, store repository.BatchStore) {
	t.Helper()

	t.Run("Get missing key", func(t *testing.T) {
		// When: reading a key that was never written
		value, found, err := store.Get(ctx, "missing")

		// Then: it should be reported as absent without an error
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, value)
	})

	t.Run("Set then Get", func(t *testing.T) {
		// Given: a stored value
		require.NoError(t, store.Set(ctx, repository.CurrentStepKey, []byte("3")))

		// When: reading it back
		value, found, err := store.Get(ctx, repository.CurrentStepKey)

		// Then: the same bytes should be returned
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, []byte("3"), value)
	})

	t.Run("Set overwrites", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "overwrite", []byte("1")))
		require.NoError(t, store.Set(ctx, "overwrite", []byte("2")))

		value, found, err := store.Get(ctx, "overwrite")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, []byte("2"), value)
	})

	t.Run("SetMany writes every key", func(t *testing.T) {
		// Given: a batch of two keys
		batch := map[string][]byte{
			repository.HistoryKey:     []byte(`[[null,null,null,null,null,null,null,null,null]]`),
			repository.CurrentStepKey: []byte("0"),
		}

		// When: writing the batch
		require.NoError(t, store.SetMany(ctx, batch))

		// Then: both keys should be readable
		for key, expected := range batch {
			value, found, err := store.Get(ctx, key)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, expected, value)
		}
	})
}

func TestMemoryStorage(t *testing.T) {
	exerciseStore(context.Background(), t, storage.NewMemoryStorage())
}

func TestMemoryStorage_CopiesValues(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStorage()

	// Given: a value that the caller keeps mutating after Set
	value := []byte("1")
	require.NoError(t, store.Set(ctx, "key", value))
	value[0] = '9'

	// When: reading it back
	stored, _, err := store.Get(ctx, "key")

	// Then: the stored value should be unaffected
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), stored)
}

func TestSQLiteStorage(t *testing.T) {
	ctx := context.Background()

	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	require.NoError(t, store.Init(ctx))

	exerciseStore(ctx, t, store)
}

func TestSQLiteStorage_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	// Given: a value written by one connection
	store, err := storage.NewSQLiteStorage(path)
	require.NoError(t, err)
	require.NoError(t, store.Init(ctx))
	require.NoError(t, store.Set(ctx, repository.CurrentStepKey, []byte("2")))
	require.NoError(t, store.Close())

	// When: reopening the same file
	reopened, err := storage.NewSQLiteStorage(path)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = reopened.Close()
	})
	require.NoError(t, reopened.Init(ctx))

	value, found, err := reopened.Get(ctx, repository.CurrentStepKey)

	// Then: the value should still be there
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("2"), value)
}

func TestRedisStorage(t *testing.T) {
	ctx, st := suite.New(t)

	exerciseStore(ctx, t, st.Storage)

	t.Run("Keys are prefixed", func(t *testing.T) {
		require.NoError(t, st.Storage.Set(ctx, "prefixed", []byte("1")))

		exists, err := st.Client.Exists(ctx, "tictactoe-test:prefixed").Result()
		require.NoError(t, err)
		assert.Equal(t, int64(1), exists)
	})
}
