package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/alexanderramin/psyche/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openUoW(t *testing.T) (*sql.DB, *db.SQLiteUnitOfWork) {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database, db.NewSQLiteUnitOfWork(database)
}

func insertMood(ctx context.Context, tx db.DBTX, id string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO mood_entries (id, user_id, day, mood, created_at) VALUES (?, 'u1', '2025-03-01', 'good', '2025-03-01T20:00:00Z')`, id)
	return err
}

func countMoods(t *testing.T, database *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM mood_entries`).Scan(&n))
	return n
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	database, uow := openUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertMood(ctx, tx, "m1"); err != nil {
			return err
		}
		return insertMood(ctx, tx, "m2")
	})
	require.NoError(t, err)
	assert.Equal(t, 2, countMoods(t, database))
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	database, uow := openUoW(t)
	errBoom := errors.New("deliberate failure")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertMood(ctx, tx, "m1"); err != nil {
			return err
		}
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)
	assert.NotContains(t, err.Error(), "rollback")
	assert.Equal(t, 0, countMoods(t, database))
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	database, uow := openUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertMood(ctx, tx, "m1")
			panic("boom")
		})
	})
	assert.Equal(t, 0, countMoods(t, database))
}

func TestWithinTx_ConstraintViolationRollsBackEarlierWrites(t *testing.T) {
	database, uow := openUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertMood(ctx, tx, "m1"); err != nil {
			return err
		}
		return insertMood(ctx, tx, "m1")
	})
	require.Error(t, err)
	assert.Equal(t, 0, countMoods(t, database))
}
