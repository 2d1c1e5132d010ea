package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
)

type fakeTx struct {
	execs      []string
	args       [][]interface{}
	execErr    error
	commitErr  error
	committed  bool
	rolledBack bool
}

func (f *fakeTx) ExecContext(_ context.Context, query string, args ...interface{}) (sql.Result, error) {
	f.execs = append(f.execs, query)
	f.args = append(f.args, args)
	return nil, f.execErr
}

func (f *fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (f *fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (f *fakeTx) Commit() error {
	f.committed = true
	return f.commitErr
}

func (f *fakeTx) Rollback() error {
	f.rolledBack = true
	return nil
}

type fakeDB struct {
	tx       *fakeTx
	begins   int
	opts     *sql.TxOptions
	beginErr error
}

func (f *fakeDB) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	f.begins++
	f.opts = opts
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	return f.tx, nil
}

func TestDo_CommitsOnSuccess(t *testing.T) {
	db := &fakeDB{tx: &fakeTx{}}
	m := NewTransactionManager(db)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	assert.True(t, db.tx.committed)
	assert.False(t, db.tx.rolledBack)
}

func TestDo_RollsBackOnError(t *testing.T) {
	db := &fakeDB{tx: &fakeTx{}}
	m := NewTransactionManager(db)
	boom := errors.New("boom")

	err := m.Do(context.Background(), func(ctx context.Context) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.False(t, db.tx.committed)
	assert.True(t, db.tx.rolledBack)
}

func TestDo_RollsBackOnPanic(t *testing.T) {
	db := &fakeDB{tx: &fakeTx{}}
	m := NewTransactionManager(db)

	assert.Panics(t, func() {
		_ = m.Do(context.Background(), func(ctx context.Context) error { panic("boom") })
	})
	assert.True(t, db.tx.rolledBack)
}

func TestDo_BeginAndCommitErrors(t *testing.T) {
	m := NewTransactionManager(&fakeDB{beginErr: errors.New("no conn")})
	err := m.Do(context.Background(), func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrBeginTx)

	db := &fakeDB{tx: &fakeTx{commitErr: errors.New("commit")}}
	err = NewTransactionManager(db).Do(context.Background(), func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrCommitTx)
	assert.True(t, db.tx.rolledBack)
}

func TestDoLocked_TakesAdvisoryLockFirst(t *testing.T) {
	db := &fakeDB{tx: &fakeTx{}}
	m := NewTransactionManager(db)

	err := m.DoLocked(context.Background(), "2|3|2025-03-10|Morning", func(ctx context.Context) error {
		_, err := dbmetrics.GetExecutor(ctx, nil).ExecContext(ctx, "INSERT INTO reservations")
		return err
	})

	require.NoError(t, err)
	require.Len(t, db.tx.execs, 2)
	assert.Equal(t, advisoryLockQuery, db.tx.execs[0])
	assert.Equal(t, []interface{}{"2|3|2025-03-10|Morning"}, db.tx.args[0])
	assert.True(t, db.tx.committed)
}

func TestDoLocked_LockFailure(t *testing.T) {
	db := &fakeDB{tx: &fakeTx{execErr: errors.New("lock timeout")}}
	m := NewTransactionManager(db)

	called := false
	err := m.DoLocked(context.Background(), "k", func(ctx context.Context) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, ErrAcquireLock)
	assert.False(t, called)
	assert.True(t, db.tx.rolledBack)
}

func TestDo_NestedReusesOuterTransaction(t *testing.T) {
	db := &fakeDB{tx: &fakeTx{}}
	m := NewTransactionManager(db)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return m.DoLocked(ctx, "k", func(ctx context.Context) error { return nil })
	})

	require.NoError(t, err)
	assert.Equal(t, 1, db.begins)
	assert.Equal(t, []string{advisoryLockQuery}, db.tx.execs)
}
