// Package orm builds gorm data contexts with a standard configuration:
// default schema, statement tracing, command timeout, migrations, and
// transaction-bound copies handed out by a factory.
package orm

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"github.com/aeramu/sql-common/session"
)

// Context is a configured gorm database. Application data contexts embed it.
type Context struct {
	db    *gorm.DB
	opts  *options
	log   zerolog.Logger
	trace bool
	mock  bool
	owned bool
}

// New opens a context from a connection string.
func New(driver Driver, dsn string, opts ...Option) (*Context, error) {
	o := newOptions(opts)

	if dsn == "" && o.promptIn != nil {
		var err error
		if dsn, err = PromptConnectionString(o.promptIn, o.promptOut); err != nil {
			return nil, err
		}
	}
	if dsn == "" {
		return nil, ErrEmptyConnectionString
	}

	dialector, err := driver.Dialector(dsn)
	if err != nil {
		return nil, err
	}
	c, err := open(dialector, o, false)
	if err != nil {
		return nil, err
	}
	c.owned = true
	return c, nil
}

// NewFromConn opens a context over an existing connection, a *sql.DB or a
// *sql.Tx. Closing the context leaves the connection open.
func NewFromConn(driver Driver, conn gorm.ConnPool, opts ...Option) (*Context, error) {
	dialector, err := driver.ConnDialector(conn)
	if err != nil {
		return nil, err
	}
	return open(dialector, newOptions(opts), false)
}

// NewMock opens a context for tests. Tracing and the command timeout are
// not configured.
func NewMock(dialector gorm.Dialector, opts ...Option) (*Context, error) {
	c, err := open(dialector, newOptions(opts), true)
	if err != nil {
		return nil, err
	}
	c.owned = true
	return c, nil
}

// Open opens a context with a caller-built dialector.
func Open(dialector gorm.Dialector, opts ...Option) (*Context, error) {
	c, err := open(dialector, newOptions(opts), false)
	if err != nil {
		return nil, err
	}
	c.owned = true
	return c, nil
}

func open(dialector gorm.Dialector, o *options, mock bool) (*Context, error) {
	c := &Context{
		opts:  o,
		log:   o.log.With().Str("schema", o.schema).Logger(),
		trace: o.trace && !mock,
		mock:  mock,
	}

	cfg := &gorm.Config{
		Logger: newGormLogger(c.log, c.trace),
	}
	if o.schema != "" {
		cfg.NamingStrategy = schema.NamingStrategy{TablePrefix: o.schema + "."}
	}
	for _, configure := range o.configure {
		configure(cfg)
	}

	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dialector.Name(), err)
	}
	if !mock && o.commandTimeout > 0 {
		if err := registerCommandTimeout(db, o.commandTimeout); err != nil {
			return nil, fmt.Errorf("failed to register command timeout: %w", err)
		}
	}

	c.db = db
	return c, nil
}

// DB returns a session bound to ctx.
func (c *Context) DB(ctx context.Context) *gorm.DB {
	return c.db.WithContext(ctx)
}

// WithTx returns a copy of c whose statements run in the transaction of tc.
// A handle without a transaction returns c itself.
func (c *Context) WithTx(tc *session.TransactionContext) *Context {
	tx := tc.Tx()
	if tx == nil {
		return c
	}
	// A Session without Context shares the root Statement.
	db := c.db.Session(&gorm.Session{Context: context.Background(), NewDB: true})
	db.Statement.ConnPool = tx

	cp := *c
	cp.db = db
	cp.owned = false
	return &cp
}

// SQLDB returns the connection pool behind the context.
func (c *Context) SQLDB() (*sql.DB, error) {
	return c.db.DB()
}

func (c *Context) Schema() string {
	return c.opts.schema
}

func (c *Context) IsTraceEnabled() bool {
	return c.trace
}

func (c *Context) IsForMocks() bool {
	return c.mock
}

// SetTraceEnabled switches statement logging at runtime.
func (c *Context) SetTraceEnabled(enabled bool) {
	c.trace = enabled
	c.db.Logger = newGormLogger(c.log, enabled)
}

// Close releases the pool when the context opened it.
func (c *Context) Close() error {
	if !c.owned {
		return nil
	}
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
