package transaction

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/aeramu/sql-common/session"
)

type Executor interface {
	sqlx.Ext
	sqlx.ExtContext
	sqlx.Preparer
	sqlx.PreparerContext
}

func New(db *sqlx.DB) session.DBWrapper[Executor] {
	return session.NewDBWrapper[Executor](&DB{
		db: db,
	})
}

// NewSession returns a session that begins transactions on the pool behind db.
func NewSession(db *sqlx.DB, opts ...session.Option) session.Session {
	return session.NewSession(db.DB, opts...)
}

type DB struct {
	db *sqlx.DB
}

// ConvertTx wraps tx so that it binds parameters the way the pool does.
func (s *DB) ConvertTx(ctx context.Context, tx *sql.Tx) Executor {
	return &Tx{
		Tx:   &sqlx.Tx{Tx: tx, Mapper: s.db.Mapper},
		pool: s.db,
	}
}

// Tx is a transaction executor. sqlx keeps the driver name of a Tx
// unexported, so bind type and named queries are taken from the pool.
type Tx struct {
	*sqlx.Tx
	pool *sqlx.DB
}

func (tx *Tx) DriverName() string {
	return tx.pool.DriverName()
}

func (tx *Tx) Rebind(query string) string {
	return tx.pool.Rebind(query)
}

func (tx *Tx) BindNamed(query string, arg interface{}) (string, []interface{}, error) {
	return tx.pool.BindNamed(query, arg)
}

func (s *DB) GetDB(ctx context.Context) Executor {
	return s.db
}
