package orm

import "errors"

var (
	ErrEmptyConnectionString   = errors.New("orm: empty connection string")
	ErrUnknownDriver           = errors.New("orm: unknown driver")
	ErrTransactionsUnsupported = errors.New("orm: factory has no connection creator")
)
