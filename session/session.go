package session

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
)

// TxFunc is a unit of work run inside a transaction.
type TxFunc func(ctx context.Context, tc *TransactionContext) error

type Session interface {
	WithTransaction(ctx context.Context, parent *TransactionContext, f TxFunc) error
	RunWithTransaction(ctx context.Context, f TxFunc) error
}

type Option func(*session)

// WithTxOptions sets the options used to begin new transactions.
func WithTxOptions(opts *sql.TxOptions) Option {
	return func(s *session) {
		s.txOptions = opts
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(s *session) {
		s.log = log
	}
}

func NewSession(db *sql.DB, opts ...Option) Session {
	s := &session{db: db, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type session struct {
	db        *sql.DB
	txOptions *sql.TxOptions
	log       zerolog.Logger
}

// WithTransaction runs the function f in a transaction.
// If parent carries a transaction, f joins it and the caller keeps control of commit and rollback.
// Otherwise a new transaction is started.
// If the function f returns an error, the transaction will be rolled back.
// If the function f returns nil, the transaction will be committed.
func (s *session) WithTransaction(ctx context.Context, parent *TransactionContext, f TxFunc) error {
	if parent.active() {
		return f(ctx, parent)
	}

	tx, err := s.db.BeginTx(ctx, s.txOptions)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginTransaction, err)
	}
	tc := NewTransactionContext(tx)

	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.log.Error().Err(rbErr).Msg("rollback error during panic")
			}
			panic(p)
		}
	}()

	err = f(ctx, tc)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback error: %w (original error: %v)", rbErr, err)
		}
		return fmt.Errorf("transaction failed: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitTransaction, err)
	}
	return nil
}

// RunWithTransaction runs f in a new transaction.
func (s *session) RunWithTransaction(ctx context.Context, f TxFunc) error {
	return s.WithTransaction(ctx, nil, f)
}

// WithResult runs f like Session.WithTransaction and returns its value.
// The zero value is returned when the transaction fails.
func WithResult[T any](ctx context.Context, s Session, parent *TransactionContext, f func(ctx context.Context, tc *TransactionContext) (T, error)) (T, error) {
	var result T
	err := s.WithTransaction(ctx, parent, func(ctx context.Context, tc *TransactionContext) error {
		v, err := f(ctx, tc)
		if err != nil {
			return err
		}
		result = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
