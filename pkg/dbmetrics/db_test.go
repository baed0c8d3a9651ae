package dbmetrics

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTx struct {
	DBExecutor
}

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }

func TestGetExecutor(t *testing.T) {
	db := Wrap(&sql.DB{}, nil)
	ctx := context.Background()

	assert.False(t, IsInTransaction(ctx))
	assert.Same(t, db, GetExecutor(ctx, db))

	tx := fakeTx{}
	txCtx := WithTx(ctx, tx)

	assert.True(t, IsInTransaction(txCtx))
	assert.Equal(t, tx, GetExecutor(txCtx, db))
}

func TestOperationName(t *testing.T) {
	assert.Equal(t, "select", operationName("SELECT id FROM services"))
	assert.Equal(t, "insert", operationName("\n\tINSERT INTO appointments (id) VALUES ($1)"))
	assert.Equal(t, "unknown", operationName("   "))
}
