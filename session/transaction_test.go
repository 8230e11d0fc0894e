package session

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionContext_Tx(t *testing.T) {
	var nilHandle *TransactionContext
	assert.Nil(t, nilHandle.Tx())
	assert.False(t, nilHandle.active())

	empty := NewTransactionContext(nil)
	assert.False(t, empty.active())

	tx := &sql.Tx{}
	tc := NewTransactionContext(tx)
	assert.Same(t, tx, tc.Tx())
	assert.True(t, tc.active())
}
