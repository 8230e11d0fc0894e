package orm

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/aeramu/sql-common/session"
)

type FactoryTestSuite struct {
	suite.Suite
	factory *Factory[*walletContext]
}

func (s *FactoryTestSuite) SetupTest() {
	f, err := Register(context.Background(), memoryDSN(), newWalletContext, walletContextFromConn)
	s.Require().NoError(err)
	s.factory = f
}

func (s *FactoryTestSuite) TearDownTest() {
	s.NoError(s.factory.Close())
}

func (s *FactoryTestSuite) count(id string) int64 {
	dc, err := s.factory.CreateDataContext()
	s.Require().NoError(err)
	defer dc.Close()

	var count int64
	s.Require().NoError(dc.Wallets().Where("id = ?", id).Count(&count).Error)
	return count
}

func (s *FactoryTestSuite) TestRegister_migrated() {
	s.False(s.factory.base.IsTraceEnabled())

	dc, err := s.factory.CreateDataContext()
	s.Require().NoError(err)
	s.True(dc.DB(context.Background()).Migrator().HasTable(&wallet{}))
}

func (s *FactoryTestSuite) TestCreateDataContext_sharesPool() {
	dc, err := s.factory.CreateDataContext()
	s.Require().NoError(err)

	base, err := s.factory.base.SQLDB()
	s.Require().NoError(err)
	pool, err := dc.SQLDB()
	s.Require().NoError(err)
	s.Same(base, pool)

	s.NoError(dc.Close())
	s.NoError(base.Ping())
}

func (s *FactoryTestSuite) TestRunWithTransaction_committed() {
	id := uuid.NewString()
	err := s.factory.RunWithTransaction(context.Background(), func(ctx context.Context, tc *session.TransactionContext) error {
		dc, err := s.factory.CreateDataContextWithTx(tc)
		if err != nil {
			return err
		}
		return dc.DB(ctx).Create(&wallet{ID: id, Balance: decimal.New(5, 0)}).Error
	})
	s.Require().NoError(err)
	s.Equal(int64(1), s.count(id))
}

func (s *FactoryTestSuite) TestRunWithTransaction_rolledBack() {
	id := uuid.NewString()
	err := s.factory.RunWithTransaction(context.Background(), func(ctx context.Context, tc *session.TransactionContext) error {
		dc, err := s.factory.CreateDataContextWithTx(tc)
		s.Require().NoError(err)
		s.NoError(dc.DB(ctx).Create(&wallet{ID: id}).Error)
		return errors.New("need to be rollback")
	})
	s.Error(err)
	s.Zero(s.count(id))
}

func (s *FactoryTestSuite) TestWithTransaction_nested() {
	outerID, innerID := uuid.NewString(), uuid.NewString()
	err := s.factory.RunWithTransaction(context.Background(), func(ctx context.Context, outer *session.TransactionContext) error {
		dc, err := s.factory.CreateDataContextWithTx(outer)
		s.Require().NoError(err)
		s.NoError(dc.DB(ctx).Create(&wallet{ID: outerID}).Error)

		return s.factory.WithTransaction(ctx, outer, func(ctx context.Context, inner *session.TransactionContext) error {
			s.Same(outer, inner)
			dc, err := s.factory.CreateDataContextWithTx(inner)
			s.Require().NoError(err)
			return dc.DB(ctx).Create(&wallet{ID: innerID}).Error
		})
	})
	s.Require().NoError(err)
	s.Equal(int64(1), s.count(outerID))
	s.Equal(int64(1), s.count(innerID))
}

func (s *FactoryTestSuite) TestWithResult() {
	id := uuid.NewString()
	balance, err := session.WithResult(context.Background(), s.factory, nil, func(ctx context.Context, tc *session.TransactionContext) (decimal.Decimal, error) {
		dc, err := s.factory.CreateDataContextWithTx(tc)
		if err != nil {
			return decimal.Decimal{}, err
		}
		w := wallet{ID: id, Balance: decimal.RequireFromString("42.42")}
		return w.Balance, dc.DB(ctx).Create(&w).Error
	})
	s.Require().NoError(err)
	s.True(balance.Equal(decimal.RequireFromString("42.42")))
	s.Equal(int64(1), s.count(id))
}

func (s *FactoryTestSuite) TestCreateDataContextWithTx_noTransaction() {
	dc, err := s.factory.CreateDataContextWithTx(nil)
	s.Require().NoError(err)
	s.NotNil(dc)
}

func TestFactoryTestSuite(t *testing.T) {
	suite.Run(t, new(FactoryTestSuite))
}

func TestNewFactory_creatorFails(t *testing.T) {
	_, err := NewFactory("", newWalletContext, walletContextFromConn)
	assert.ErrorIs(t, err, ErrEmptyConnectionString)
}

func TestRegisterFromCreator(t *testing.T) {
	dsn := memoryDSN()
	keep, err := New(SQLite, dsn)
	require.NoError(t, err)
	defer keep.Close()

	calls := 0
	f, err := RegisterFromCreator(context.Background(), func() (*walletContext, error) {
		calls++
		return newWalletContext(dsn)
	})
	require.NoError(t, err)
	defer f.Close()

	dc, err := f.CreateDataContext()
	require.NoError(t, err)
	defer dc.Close()

	assert.Equal(t, 2, calls)
	assert.True(t, dc.DB(context.Background()).Migrator().HasTable(&wallet{}))

	_, err = f.CreateDataContextWithTx(nil)
	assert.ErrorIs(t, err, ErrTransactionsUnsupported)

	err = f.RunWithTransaction(context.Background(), func(ctx context.Context, tc *session.TransactionContext) error {
		return nil
	})
	assert.ErrorIs(t, err, ErrTransactionsUnsupported)
}
