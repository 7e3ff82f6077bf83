package repo_test

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/draftshare/internal/config"
	"github.com/xxxsen/draftshare/internal/model"
	appErr "github.com/xxxsen/draftshare/internal/pkg/errors"
	"github.com/xxxsen/draftshare/internal/repo"
)

func openTestDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		t.Skip("TEST_DB_HOST not set, skipping postgres test")
	}
	conn, err := repo.Open(config.DatabaseConfig{
		Host:     host,
		Port:     5432,
		User:     "draftshare",
		Password: "draftshare_pass",
		DBName:   "draftshare_test",
		SSLMode:  "disable",
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := repo.ApplyMigrations(conn); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	_, _ = conn.Exec("DELETE FROM shares")
	return conn, func() {
		_ = conn.Close()
	}
}

func TestShareRepoCRUD(t *testing.T) {
	db, cleanup := openTestDB(t)
	defer cleanup()

	shares := repo.NewShareRepo(db)
	ctx := context.Background()

	share := &model.Share{
		ID:        "s-1",
		AuthorID:  "a-1",
		PostID:    "p-1",
		Key:       "share_aabbccdd",
		ExpiresAt: 2_000_000_000,
		State:     repo.ShareStateActive,
		Ctime:     1,
		Mtime:     1,
	}
	require.NoError(t, shares.Create(ctx, share))

	// duplicate keys are rejected by the unique index
	dup := *share
	dup.ID = "s-dup"
	require.ErrorIs(t, shares.Create(ctx, &dup), appErr.ErrConflict)

	got, err := shares.GetByKey(ctx, "share_aabbccdd")
	require.NoError(t, err)
	require.Equal(t, "p-1", got.PostID)

	_, err = shares.GetByKey(ctx, "share_missing")
	require.ErrorIs(t, err, appErr.ErrNotFound)

	require.NoError(t, shares.UpdateExpiry(ctx, "a-1", "share_aabbccdd", 2_000_003_600, 2))
	got, err = shares.GetByKey(ctx, "share_aabbccdd")
	require.NoError(t, err)
	require.Equal(t, int64(2_000_003_600), got.ExpiresAt)

	require.NoError(t, shares.Revoke(ctx, "a-1", "share_aabbccdd", 3))
	got, err = shares.GetByKey(ctx, "share_aabbccdd")
	require.NoError(t, err)
	require.Equal(t, repo.ShareStateRevoked, got.State)

	// revoking again must not error
	require.NoError(t, shares.Revoke(ctx, "a-1", "share_aabbccdd", 4))
}

func TestShareRepoListByAuthorOrder(t *testing.T) {
	db, cleanup := openTestDB(t)
	defer cleanup()

	shares := repo.NewShareRepo(db)
	ctx := context.Background()

	for i, key := range []string{"share_one", "share_two", "share_three"} {
		require.NoError(t, shares.Create(ctx, &model.Share{
			ID:        key,
			AuthorID:  "a-1",
			PostID:    "p-1",
			Key:       key,
			ExpiresAt: 2_000_000_000,
			State:     repo.ShareStateActive,
			Ctime:     int64(i + 1),
			Mtime:     int64(i + 1),
		}))
	}
	require.NoError(t, shares.Create(ctx, &model.Share{
		ID:        "s-other",
		AuthorID:  "a-2",
		PostID:    "p-2",
		Key:       "share_other",
		ExpiresAt: 2_000_000_000,
		State:     repo.ShareStateActive,
		Ctime:     1,
		Mtime:     1,
	}))

	items, err := shares.ListByAuthor(ctx, "a-1")
	require.NoError(t, err)
	require.Len(t, items, 3)
	require.Equal(t, "share_one", items[0].Key)
	require.Equal(t, "share_two", items[1].Key)
	require.Equal(t, "share_three", items[2].Key)
}

func TestShareRepoPurgeDead(t *testing.T) {
	db, cleanup := openTestDB(t)
	defer cleanup()

	shares := repo.NewShareRepo(db)
	ctx := context.Background()

	mk := func(id string, expiresAt int64, state int) *model.Share {
		return &model.Share{
			ID: id, AuthorID: "a-1", PostID: "p-1", Key: "share_" + id,
			ExpiresAt: expiresAt, State: state, Ctime: 1, Mtime: 1,
		}
	}
	require.NoError(t, shares.Create(ctx, mk("live", 2_000_000_000, repo.ShareStateActive)))
	require.NoError(t, shares.Create(ctx, mk("expired", 100, repo.ShareStateActive)))
	require.NoError(t, shares.Create(ctx, mk("revoked", 2_000_000_000, repo.ShareStateRevoked)))

	purged, err := shares.PurgeDead(ctx, 1_000)
	require.NoError(t, err)
	require.Equal(t, int64(2), purged)

	items, err := shares.ListByAuthor(ctx, "a-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "share_live", items[0].Key)
}
