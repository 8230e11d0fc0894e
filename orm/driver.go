package orm

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
)

// Driver names a database engine supported by the data context.
type Driver string

const (
	SQLServer Driver = "sqlserver"
	Postgres  Driver = "postgres"
	SQLite    Driver = "sqlite"
)

// ParseDriver validates a driver name.
func ParseDriver(name string) (Driver, error) {
	switch d := Driver(name); d {
	case SQLServer, Postgres, SQLite:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDriver, name)
	}
}

// Dialector opens the engine from a connection string.
func (d Driver) Dialector(dsn string) (gorm.Dialector, error) {
	switch d {
	case SQLServer:
		return sqlserver.Open(dsn), nil
	case Postgres:
		return postgres.Open(dsn), nil
	case SQLite:
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, string(d))
	}
}

// ConnDialector attaches the engine to an existing connection, either a
// pool or a transaction.
func (d Driver) ConnDialector(conn gorm.ConnPool) (gorm.Dialector, error) {
	switch d {
	case SQLServer:
		return sqlserver.New(sqlserver.Config{Conn: conn}), nil
	case Postgres:
		return postgres.New(postgres.Config{Conn: conn}), nil
	case SQLite:
		return sqlite.New(sqlite.Config{Conn: conn}), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, string(d))
	}
}

// gooseDialect maps a gorm dialector name to the goose dialect.
func gooseDialect(dialectorName string) (string, error) {
	switch dialectorName {
	case "sqlserver":
		return "mssql", nil
	case "postgres":
		return "postgres", nil
	case "sqlite":
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("%w: no migration dialect for %q", ErrUnknownDriver, dialectorName)
	}
}
