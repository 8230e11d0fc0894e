package session

import (
	"context"
	"database/sql"
)

type Database[T any] interface {
	GetDB(ctx context.Context) T
	ConvertTx(ctx context.Context, tx *sql.Tx) T
}

// DBWrapper hands out the connection a call should use: the transaction
// when tc carries one, the pooled database otherwise.
type DBWrapper[T any] interface {
	GetDB(ctx context.Context, tc *TransactionContext) T
}

func NewDBWrapper[T any](db Database[T]) DBWrapper[T] {
	return &wrapper[T]{
		db: db,
	}
}

type wrapper[T any] struct {
	db Database[T]
}

func (w *wrapper[T]) GetDB(ctx context.Context, tc *TransactionContext) T {
	if !tc.active() {
		return w.db.GetDB(ctx)
	}
	return w.db.ConvertTx(ctx, tc.Tx())
}
