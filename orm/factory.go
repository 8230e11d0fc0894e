package orm

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/gorm"

	"github.com/aeramu/sql-common/session"
)

// DataContext is what a factory needs from an application data context.
// Types embedding *Context satisfy it.
type DataContext interface {
	SQLDB() (*sql.DB, error)
	Migrate(ctx context.Context) error
	SetTraceEnabled(enabled bool)
	Close() error
}

// Factory creates data contexts sharing one connection pool and runs units
// of work in transactions on that pool.
type Factory[T DataContext] struct {
	base     T
	creator  func() (T, error)
	fromConn func(conn gorm.ConnPool) (T, error)
	session  session.Session
}

var _ session.Session = (*Factory[*Context])(nil)

// NewFactory opens the base context from connString. Later contexts are
// built by fromConn over the base pool or over a transaction.
func NewFactory[T DataContext](
	connString string,
	fromConnString func(connString string) (T, error),
	fromConn func(conn gorm.ConnPool) (T, error),
	opts ...session.Option,
) (*Factory[T], error) {
	base, err := fromConnString(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create data context: %w", err)
	}
	sqlDB, err := base.SQLDB()
	if err != nil {
		base.Close()
		return nil, fmt.Errorf("failed to get connection pool: %w", err)
	}

	return &Factory[T]{
		base:     base,
		fromConn: fromConn,
		session:  session.NewSession(sqlDB, opts...),
	}, nil
}

// NewFactoryFromCreator wraps a plain constructor. Such a factory cannot
// bind contexts to transactions.
func NewFactoryFromCreator[T DataContext](creator func() (T, error)) *Factory[T] {
	return &Factory[T]{creator: creator}
}

// CreateDataContext returns a context over the shared pool.
func (f *Factory[T]) CreateDataContext() (T, error) {
	if f.creator != nil {
		return f.creator()
	}
	sqlDB, err := f.base.SQLDB()
	if err != nil {
		var zero T
		return zero, err
	}
	return f.fromConn(sqlDB)
}

// CreateDataContextWithTx returns a context whose statements run in the
// transaction of tc.
func (f *Factory[T]) CreateDataContextWithTx(tc *session.TransactionContext) (T, error) {
	if f.fromConn == nil {
		var zero T
		return zero, ErrTransactionsUnsupported
	}
	if tc.Tx() == nil {
		return f.CreateDataContext()
	}
	return f.fromConn(tc.Tx())
}

// WithTransaction implements session.Session.
func (f *Factory[T]) WithTransaction(ctx context.Context, parent *session.TransactionContext, fn session.TxFunc) error {
	if f.session == nil {
		return ErrTransactionsUnsupported
	}
	return f.session.WithTransaction(ctx, parent, fn)
}

// RunWithTransaction implements session.Session.
func (f *Factory[T]) RunWithTransaction(ctx context.Context, fn session.TxFunc) error {
	return f.WithTransaction(ctx, nil, fn)
}

// Close closes the base context and its pool.
func (f *Factory[T]) Close() error {
	if f.session == nil {
		return nil
	}
	return f.base.Close()
}
