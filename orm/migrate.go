package orm

import (
	"context"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"

	"github.com/aeramu/sql-common/converter"
)

const historyTable = "goose_db_version"

// goose keeps its configuration in package state.
var gooseMu sync.Mutex

// Migrate creates the registered models and applies pending migrations.
func (c *Context) Migrate(ctx context.Context) error {
	if len(c.opts.models) > 0 {
		db := c.DB(ctx)
		if err := converter.BindColumnTypes(db, c.opts.models...); err != nil {
			return fmt.Errorf("failed to bind money columns: %w", err)
		}
		if err := db.AutoMigrate(c.opts.models...); err != nil {
			return fmt.Errorf("failed to migrate models: %w", err)
		}
	}
	if c.opts.migrations == nil {
		return nil
	}
	return c.runMigrations(ctx)
}

// HistoryTable is the migration history table, qualified by the schema.
func (c *Context) HistoryTable() string {
	if c.opts.schema == "" {
		return historyTable
	}
	return c.opts.schema + "." + historyTable
}

func (c *Context) runMigrations(ctx context.Context) error {
	dialect, err := gooseDialect(c.db.Dialector.Name())
	if err != nil {
		return err
	}
	sqlDB, err := c.SQLDB()
	if err != nil {
		return err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(c.opts.migrations)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(gooseLogger{log: c.log.With().Str("component", "goose").Logger()})
	goose.SetTableName(c.HistoryTable())

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	dir := c.opts.migrationsDir
	if dir == "" {
		dir = "."
	}
	if err := goose.UpContext(ctx, sqlDB, dir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	c.log.Info().Str("table", c.HistoryTable()).Msg("database migrated")
	return nil
}
