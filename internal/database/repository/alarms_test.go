package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/palette/internal/database"
	"github.com/jask/palette/internal/database/repository"
)

func openTestDB(t *testing.T) *repository.AlarmRepo {
	t.Helper()
	db, err := database.OpenMigrated(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return repository.NewAlarmRepo(db)
}

func TestAlarmRepoLifecycle(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	repo := openTestDB(t)

	late, err := repo.Create(ctx, 22*60+15, " bedtime ")
	require.NoError(t, err)
	require.Equal(t, "bedtime", late.Label)
	require.Equal(t, "22:15", late.Clock())
	require.Len(t, late.ShortID(), 8)

	early, err := repo.Create(ctx, 6*60+5, "")
	require.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, early.ID, list[0].ID, "alarms are ordered by time of day")
	require.Equal(t, "06:05", list[0].Clock())

	require.NoError(t, repo.Delete(ctx, late.ID))
	require.ErrorIs(t, repo.Delete(ctx, late.ID), repository.ErrNotFound)
	list, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	n, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestAlarmRepoRejectsOutOfRangeMinute(t *testing.T) {
	t.Parallel()

	repo := openTestDB(t)
	_, err := repo.Create(context.Background(), 24*60, "")
	require.Error(t, err)
	_, err = repo.Create(context.Background(), -1, "")
	require.Error(t, err)
}

func TestMigrationsAreIdempotent(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "twice.db")
	db, err := database.OpenMigrated(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = database.OpenMigrated(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.RunMigrationsWithDB(db))
}

func TestOpenMigratedEscapesPath(t *testing.T) {
	t.Parallel()
	for _, dir := range []string{"a b", "q#x", "p%20q", "what?"} {
		t.Run(dir, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), dir, "alarms.db")
			ctx := context.Background()

			db, err := database.OpenMigrated(path)
			require.NoError(t, err)
			_, err = repository.NewAlarmRepo(db).Create(ctx, 7*60, "wake")
			require.NoError(t, err)
			require.NoError(t, db.Close())

			_, err = os.Stat(path)
			require.NoError(t, err, "database file should live at the literal path")

			db, err = database.OpenMigrated(path)
			require.NoError(t, err)
			t.Cleanup(func() { _ = db.Close() })
			list, err := repository.NewAlarmRepo(db).List(ctx)
			require.NoError(t, err)
			require.Len(t, list, 1)
			require.Equal(t, "wake", list[0].Label)
		})
	}
}
