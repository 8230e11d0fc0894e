package orm

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/aeramu/sql-common/session"
)

// NewDB returns a wrapper handing out gorm sessions, bound to the
// transaction of a handle when there is one.
func NewDB(db *gorm.DB) session.DBWrapper[*gorm.DB] {
	return session.NewDBWrapper[*gorm.DB](&DB{gormDB: db})
}

type DB struct {
	gormDB *gorm.DB
}

func (db *DB) GetDB(ctx context.Context) *gorm.DB {
	return db.gormDB.WithContext(ctx)
}

func (db *DB) ConvertTx(ctx context.Context, tx *sql.Tx) *gorm.DB {
	gormTx := db.gormDB.Session(&gorm.Session{
		Context: ctx,
		NewDB:   true,
	})
	gormTx.Statement.ConnPool = tx
	return gormTx
}
