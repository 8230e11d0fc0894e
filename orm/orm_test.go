package orm

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	_ "github.com/aeramu/sql-common/converter"
)

type wallet struct {
	ID      string              `gorm:"primaryKey"`
	Balance decimal.Decimal     `gorm:"serializer:money18padded"`
	Hold    decimal.NullDecimal `gorm:"serializer:money18padded"`
}

// walletContext is an application data context.
type walletContext struct {
	*Context
}

func (w *walletContext) Wallets() *gorm.DB {
	return w.db.Model(&wallet{})
}

func memoryDSN() string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
}

func newWalletContext(dsn string) (*walletContext, error) {
	c, err := New(SQLite, dsn, WithModels(&wallet{}))
	if err != nil {
		return nil, err
	}
	return &walletContext{Context: c}, nil
}

func walletContextFromConn(conn gorm.ConnPool) (*walletContext, error) {
	c, err := NewFromConn(SQLite, conn, WithModels(&wallet{}))
	if err != nil {
		return nil, err
	}
	return &walletContext{Context: c}, nil
}
