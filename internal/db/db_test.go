package db_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/flashdeck/internal/db"
)

func TestDSN(t *testing.T) {
	assert.Equal(t, "file:a.db?_busy_timeout=5000&_foreign_keys=on&_journal_mode=WAL&_synchronous=NORMAL", db.DSN("file:a.db"))
	assert.Equal(t, "file:a.db?mode=rwc&_busy_timeout=5000&_foreign_keys=on&_journal_mode=WAL&_synchronous=NORMAL", db.DSN("file:a.db?mode=rwc"))
}

func TestOpen_AppliesMigrationsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flashdeck.db")
	ctx := context.Background()

	database, err := db.Open(path)
	require.NoError(t, err)

	var applied int
	require.NoError(t, database.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&applied))
	assert.Equal(t, 2, applied)
	require.NoError(t, database.Check(ctx))
	require.NoError(t, database.Close())

	// reopening must not re-run migrations
	database, err = db.Open(path)
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, database.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&applied))
	assert.Equal(t, 2, applied)
}

func TestSchema_EnforcesLedgerInvariants(t *testing.T) {
	database, err := db.Open(filepath.Join(t.TempDir(), "flashdeck.db"))
	require.NoError(t, err)
	defer database.Close()
	ctx := context.Background()

	_, err = database.ExecContext(ctx, `INSERT INTO decks (name, created_at) VALUES ('d', 0)`)
	require.NoError(t, err)
	_, err = database.ExecContext(ctx, `INSERT INTO cards (deck_id, question, answer, created_at) VALUES (1, 'q', 'a', 0)`)
	require.NoError(t, err)

	insert := `INSERT INTO reviews (card_id, reviewed_at, quality, interval_days, ease_factor, next_review_at) VALUES (?, ?, ?, ?, ?, ?)`

	_, err = database.ExecContext(ctx, insert, 1, 1000, 3, 1, 2.5, 1000)
	assert.NoError(t, err)

	_, err = database.ExecContext(ctx, insert, 42, 1000, 3, 1, 2.5, 1000)
	assert.Error(t, err, "review must reference an existing card")

	_, err = database.ExecContext(ctx, insert, 1, 1000, 5, 1, 2.5, 1000)
	assert.Error(t, err, "quality above 4")

	_, err = database.ExecContext(ctx, insert, 1, 1000, 3, 1, 1.2, 1000)
	assert.Error(t, err, "ease below floor")

	_, err = database.ExecContext(ctx, insert, 1, 1000, 3, 1, 2.5, 999)
	assert.Error(t, err, "next review before reviewed_at")
}
