package orm

import (
	"context"
	"time"

	"gorm.io/gorm"
)

const (
	DefaultCommandTimeout = 30 * time.Second

	timeoutStart = "sqlcommon:command_timeout_start"
	timeoutEnd   = "sqlcommon:command_timeout_end"
	cancelKey    = "sqlcommon:command_timeout_cancel"
)

// registerCommandTimeout bounds every statement by timeout. Row callbacks
// are skipped since their rows outlive the callback chain.
func registerCommandTimeout(db *gorm.DB, timeout time.Duration) error {
	start := func(tx *gorm.DB) {
		ctx := tx.Statement.Context
		if ctx == nil {
			ctx = context.Background()
		}
		ctx, cancel := context.WithTimeout(ctx, timeout)
		tx.Statement.Context = ctx
		tx.InstanceSet(cancelKey, cancel)
	}
	end := func(tx *gorm.DB) {
		if v, ok := tx.InstanceGet(cancelKey); ok {
			if cancel, ok := v.(context.CancelFunc); ok {
				cancel()
			}
		}
	}

	cb := db.Callback()
	for _, err := range []error{
		cb.Create().Before("gorm:create").Register(timeoutStart, start),
		cb.Create().After("gorm:create").Register(timeoutEnd, end),
		cb.Query().Before("gorm:query").Register(timeoutStart, start),
		cb.Query().After("gorm:query").Register(timeoutEnd, end),
		cb.Update().Before("gorm:update").Register(timeoutStart, start),
		cb.Update().After("gorm:update").Register(timeoutEnd, end),
		cb.Delete().Before("gorm:delete").Register(timeoutStart, start),
		cb.Delete().After("gorm:delete").Register(timeoutEnd, end),
		cb.Raw().Before("gorm:raw").Register(timeoutStart, start),
		cb.Raw().After("gorm:raw").Register(timeoutEnd, end),
	} {
		if err != nil {
			return err
		}
	}
	return nil
}
