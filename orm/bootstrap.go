package orm

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/aeramu/sql-common/session"
)

// Register migrates the database behind connString with tracing enabled and
// returns a factory over it.
func Register[T DataContext](
	ctx context.Context,
	connString string,
	fromConnString func(connString string) (T, error),
	fromConn func(conn gorm.ConnPool) (T, error),
	opts ...session.Option,
) (*Factory[T], error) {
	f, err := NewFactory(connString, fromConnString, fromConn, opts...)
	if err != nil {
		return nil, err
	}
	if err := migrateTraced(ctx, f.base); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// RegisterFromCreator migrates a context built by creator and returns a
// factory calling creator for every context.
func RegisterFromCreator[T DataContext](ctx context.Context, creator func() (T, error)) (*Factory[T], error) {
	dc, err := creator()
	if err != nil {
		return nil, fmt.Errorf("failed to create data context: %w", err)
	}
	defer dc.Close()

	if err := migrateTraced(ctx, dc); err != nil {
		return nil, err
	}
	return NewFactoryFromCreator(creator), nil
}

type traceReporter interface {
	IsTraceEnabled() bool
}

func migrateTraced(ctx context.Context, dc DataContext) error {
	previous := false
	if r, ok := dc.(traceReporter); ok {
		previous = r.IsTraceEnabled()
	}
	dc.SetTraceEnabled(true)
	defer dc.SetTraceEnabled(previous)

	if err := dc.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
