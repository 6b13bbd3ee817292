package store

import (
	"database/sql"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/schema"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Open connects to the database named by driver and dsn and returns a bun handle.
func Open(driver, dsn string) (*bun.DB, error) {
	var (
		sqlDriver string
		dialect   schema.Dialect
	)

	switch driver {
	case DriverSQLite:
		sqlDriver, dialect = "sqlite3", sqlitedialect.New()
	case DriverPostgres:
		sqlDriver, dialect = "postgres", pgdialect.New()
	default:
		return nil, goerrors.New(fmt.Sprintf("unsupported database driver %q", driver), goerrors.CategoryValidation)
	}

	sqldb, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryExternal, "failed to open database")
	}

	if driver == DriverSQLite {
		// in-memory databases are per connection
		sqldb.SetMaxOpenConns(1)
	}

	return bun.NewDB(sqldb, dialect), nil
}
