package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fwojciec/shlok/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDB_Open(t *testing.T) {
	t.Parallel()

	t.Run("creates schema on first open", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(":memory:")
		require.NoError(t, db.Open())
		defer db.Close()

		var count int
		err := db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM verses").Scan(&count)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("reopening keeps existing rows", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "shlok.db")
		ctx := context.Background()

		db := sqlite.NewDB(path)
		require.NoError(t, db.Open())
		_, err := db.ExecContext(ctx, "INSERT INTO verses (idx, chapter) VALUES (1, 'Chapter 1')")
		require.NoError(t, err)
		require.NoError(t, db.Close())

		db = sqlite.NewDB(path)
		require.NoError(t, db.Open())
		defer db.Close()

		var chapter string
		require.NoError(t, db.QueryRowContext(ctx, "SELECT chapter FROM verses WHERE idx = 1").Scan(&chapter))
		assert.Equal(t, "Chapter 1", chapter)
	})

	t.Run("returns error for invalid path", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB("/nonexistent/path/db.sqlite")
		require.Error(t, db.Open())
	})

	t.Run("enables WAL mode for file-based databases", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(filepath.Join(t.TempDir(), "shlok.db"))
		require.NoError(t, db.Open())
		defer db.Close()

		var journalMode string
		err := db.QueryRowContext(context.Background(), "PRAGMA journal_mode").Scan(&journalMode)
		require.NoError(t, err)
		assert.Equal(t, "wal", journalMode)
	})

	t.Run("sets busy timeout", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(":memory:")
		require.NoError(t, db.Open())
		defer db.Close()

		var timeout int
		err := db.QueryRowContext(context.Background(), "PRAGMA busy_timeout").Scan(&timeout)
		require.NoError(t, err)
		assert.Equal(t, 5000, timeout)
	})

	t.Run("close without open is a no-op", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, sqlite.NewDB(":memory:").Close())
	})
}
