package pgsql_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/SscSPs/expense_tracker_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/expense_tracker_app/pkg/database"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMigrationsPath = "file://../../../../migrations"

// setupTestStore connects to the database named by PGSQL_URL and skips when it is unset.
// Every test works under its own key prefix and removes what it wrote.
func setupTestStore(t *testing.T) (*pgsql.KVStore, string) {
	t.Helper()
	databaseURL := os.Getenv("PGSQL_URL")
	if databaseURL == "" {
		t.Skip("PGSQL_URL not set, skipping PostgreSQL store tests")
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	require.NoError(t, database.RunMigrations(databaseURL, testMigrationsPath, logger))
	pool, err := database.NewPgxPool(context.Background(), databaseURL, logger)
	require.NoError(t, err)

	prefix := "test:" + uuid.NewString() + ":"
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM kv_entries WHERE key LIKE $1;`, prefix+"%")
		database.ClosePgxPool(pool, logger)
	})
	return pgsql.NewKVStore(pool), prefix
}

func TestKVStore_SetGetRemove(t *testing.T) {
	ctx := context.Background()
	store, prefix := setupTestStore(t)
	key := prefix + "points"

	_, ok, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, key, "10"))
	require.NoError(t, store.Set(ctx, key, "20"))
	v, ok, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "20", v)

	require.NoError(t, store.Remove(ctx, key))
	require.NoError(t, store.Remove(ctx, key), "removing an absent key is not an error")
	_, ok, err = store.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestKVStore_SetMany(t *testing.T) {
	ctx := context.Background()
	store, prefix := setupTestStore(t)
	require.NoError(t, store.Set(ctx, prefix+"streak", "1"))

	require.NoError(t, store.SetMany(ctx, map[string]string{
		prefix + "points":      "110",
		prefix + "level":       "2",
		prefix + "streak":      "5",
		prefix + "lastLogDate": "2024-03-05",
	}))

	for key, want := range map[string]string{"points": "110", "level": "2", "streak": "5", "lastLogDate": "2024-03-05"} {
		v, ok, err := store.Get(ctx, prefix+key)
		require.NoError(t, err)
		assert.True(t, ok, key)
		assert.Equal(t, want, v, key)
	}
}

func TestKVStore_SetManyIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	store, prefix := setupTestStore(t)

	// PostgreSQL text cannot hold a NUL byte, so one entry fails the whole batch
	err := store.SetMany(ctx, map[string]string{
		prefix + "points": "10",
		prefix + "streak": "bad\x00value",
	})
	require.Error(t, err)

	_, ok, err := store.Get(ctx, prefix+"points")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestKVStore_CancelledContext(t *testing.T) {
	store, prefix := setupTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, store.Set(ctx, prefix+"points", "10"))
	_, _, err := store.Get(ctx, prefix+"points")
	assert.Error(t, err)
}
