package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/navtree/internal/domain/repository"
)

func newTestRepo(t *testing.T) repository.JournalRepository {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "journal.db")
	db, err := NewConnection(context.Background(), dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	return NewJournalRepository(db)
}

func TestJournalAppendAndList(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	events := []repository.JournalEvent{
		{Seq: 1, Op: "navigate", DestKind: "home.detail", DestRoute: "home/{id}", CreatedAt: time.Now()},
		{Seq: 2, Op: "navigate_back", RemovedCount: 1, CreatedAt: time.Now()},
		{Seq: 3, Op: "switch_tab", CreatedAt: time.Now()},
	}
	for _, event := range events {
		require.NoError(t, repo.Append(ctx, event))
	}

	listed, err := repo.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, listed, 3)

	// Most recent first.
	assert.Equal(t, uint64(3), listed[0].Seq)
	assert.Equal(t, "navigate", listed[2].Op)
	assert.Equal(t, "home.detail", listed[2].DestKind)
	assert.Equal(t, 1, listed[1].RemovedCount)

	limited, err := repo.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestJournalStats(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Append(ctx, repository.JournalEvent{Seq: uint64(i), Op: "navigate", CreatedAt: time.Now()}))
	}
	require.NoError(t, repo.Append(ctx, repository.JournalEvent{Seq: 4, Op: "navigate_back", CreatedAt: time.Now()}))

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.Total)
	assert.Equal(t, int64(3), stats.ByOp["navigate"])
	assert.Equal(t, int64(1), stats.ByOp["navigate_back"])
}

func TestJournalPurge(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, repository.JournalEvent{Seq: 1, Op: "navigate", CreatedAt: time.Now()}))
	require.NoError(t, repo.Purge(ctx))

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Total)

	listed, err := repo.List(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestMigrationsAreIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "journal.db")
	ctx := context.Background()

	db, err := NewConnection(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, Close(db))

	// Reopening runs the migration check against an up-to-date schema.
	db, err = NewConnection(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, Close(db))
}
