// internal/database/db_test.go
package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTx records how a transaction ended. Methods not overridden panic via the nil embed.
type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (f *fakeTx) Commit(context.Context) error {
	f.committed = true
	return nil
}

func (f *fakeTx) Rollback(context.Context) error {
	f.rolledBack = true
	return nil
}

type fakeBeginner struct {
	tx  *fakeTx
	err error
}

func (f *fakeBeginner) BeginTx(context.Context, pgx.TxOptions) (pgx.Tx, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tx, nil
}

func TestBeginTxFuncCommits(t *testing.T) {
	db := &fakeBeginner{tx: &fakeTx{}}
	err := BeginTxFunc(context.Background(), db, pgx.TxOptions{}, func(pgx.Tx) error { return nil })
	require.NoError(t, err)
	assert.True(t, db.tx.committed)
	assert.False(t, db.tx.rolledBack)
}

func TestBeginTxFuncRollsBack(t *testing.T) {
	db := &fakeBeginner{tx: &fakeTx{}}
	boom := errors.New("boom")
	err := BeginTxFunc(context.Background(), db, pgx.TxOptions{}, func(pgx.Tx) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.True(t, db.tx.rolledBack)
	assert.False(t, db.tx.committed)
}

func TestBeginTxFuncBeginError(t *testing.T) {
	boom := errors.New("no connection")
	err := BeginTxFunc(context.Background(), &fakeBeginner{err: boom}, pgx.TxOptions{}, func(pgx.Tx) error {
		t.Fatal("f must not run")
		return nil
	})
	assert.ErrorIs(t, err, boom)
}
