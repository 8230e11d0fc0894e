package session

import (
	"database/sql"
	"errors"
)

var (
	ErrBeginTransaction  = errors.New("failed to begin transaction")
	ErrCommitTransaction = errors.New("failed to commit transaction")
)

// TransactionContext is the handle of a running transaction. It is passed
// explicitly to every function that must take part in the transaction.
type TransactionContext struct {
	tx *sql.Tx
}

func NewTransactionContext(tx *sql.Tx) *TransactionContext {
	return &TransactionContext{tx: tx}
}

// Tx returns the underlying transaction, nil for a nil handle.
func (tc *TransactionContext) Tx() *sql.Tx {
	if tc == nil {
		return nil
	}
	return tc.tx
}

func (tc *TransactionContext) active() bool {
	return tc.Tx() != nil
}
