package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PawsBubbles-BookingService/pkg/dbmetrics"
)

type fakeTx struct {
	dbmetrics.DBExecutor
	commitErr  error
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit() error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	txs       []*fakeTx
	commitErr []error
	lastOpts  *sql.TxOptions
}

func (b *fakeBeginner) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	tx := &fakeTx{}
	if len(b.commitErr) > len(b.txs) {
		tx.commitErr = b.commitErr[len(b.txs)]
	}
	b.txs = append(b.txs, tx)
	b.lastOpts = opts
	return tx, nil
}

func TestDo_CommitsOnSuccess(t *testing.T) {
	beginner := &fakeBeginner{}
	m := NewTransactionManager(beginner)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	require.Len(t, beginner.txs, 1)
	assert.True(t, beginner.txs[0].committed)
	assert.False(t, beginner.txs[0].rolledBack)
}

func TestDo_RollsBackOnError(t *testing.T) {
	beginner := &fakeBeginner{}
	m := NewTransactionManager(beginner)
	boom := errors.New("boom")

	err := m.Do(context.Background(), func(ctx context.Context) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.True(t, beginner.txs[0].rolledBack)
	assert.False(t, beginner.txs[0].committed)
}

func TestDoSerializable_RetriesSerializationFailure(t *testing.T) {
	beginner := &fakeBeginner{
		commitErr: []error{&pq.Error{Code: "40001"}, nil},
	}
	m := NewTransactionManager(beginner)

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, sql.LevelSerializable, beginner.lastOpts.Isolation)
}

func TestDoSerializable_RetriesWrappedStatementFailure(t *testing.T) {
	beginner := &fakeBeginner{}
	m := NewTransactionManager(beginner)

	repoErr := errors.New("appointment.repository: failed to execute query")
	useCaseErr := errors.New("create_booking: internal error")

	// 40001 приходит на INSERT, а не на COMMIT, и оборачивается репозиторием и use case
	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		if calls == 1 {
			driverErr := fmt.Errorf("%w: Create - execute insert: %w", repoErr, &pq.Error{Code: "40001"})
			return fmt.Errorf("%w: failed to create appointment: %w", useCaseErr, driverErr)
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.Len(t, beginner.txs, 2)
	assert.True(t, beginner.txs[0].rolledBack)
	assert.True(t, beginner.txs[1].committed)
}

func TestDoSerializable_GivesUpAfterMaxRetries(t *testing.T) {
	beginner := &fakeBeginner{}
	m := NewTransactionManager(beginner)

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return fmt.Errorf("read: %w", &pq.Error{Code: "40001"})
	})

	var pqErr *pq.Error
	require.ErrorAs(t, err, &pqErr)
	assert.Equal(t, defaultSerializableRetries, calls)
}

func TestDo_NestedReusesOuterTransaction(t *testing.T) {
	beginner := &fakeBeginner{}
	m := NewTransactionManager(beginner)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return m.DoSerializable(ctx, func(ctx context.Context) error { return nil })
	})

	require.NoError(t, err)
	assert.Len(t, beginner.txs, 1)
}
