// Package db opens the notes database and makes sure its schema exists.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite3"
)

var ErrNoDatabase = errors.New("no database configured")

// Source is a resolved driver name and data source name.
type Source struct {
	Driver string
	DSN    string
}

// ParseURI resolves a DB_URI value. It accepts mysql:// (and mysql+<dialect>://) URLs,
// sqlite:// paths and raw go-sql-driver DSNs.
func ParseURI(uri string) (Source, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return Source{}, ErrNoDatabase
	}

	for _, prefix := range []string{"sqlite://", "sqlite3://"} {
		if rest, ok := strings.CutPrefix(uri, prefix); ok {
			return Source{Driver: DriverSQLite, DSN: sqlitePath(rest)}, nil
		}
	}

	if strings.HasPrefix(uri, "mysql://") || strings.HasPrefix(uri, "mysql+") {
		u, err := url.Parse(uri)
		if err != nil {
			return Source{}, fmt.Errorf("invalid database uri: %w", err)
		}
		dsn, err := mysqlDSNFromURL(u)
		if err != nil {
			return Source{}, err
		}
		return Source{Driver: DriverMySQL, DSN: dsn}, nil
	}

	if strings.Contains(uri, "://") {
		return Source{}, fmt.Errorf("unsupported database uri scheme in %q", uri[:strings.Index(uri, "://")])
	}

	dsn, err := normalizeMySQLDSN(uri)
	if err != nil {
		return Source{}, err
	}
	return Source{Driver: DriverMySQL, DSN: dsn}, nil
}

func schemaFor(driver string) (string, error) {
	switch driver {
	case DriverMySQL:
		return createMySQLNotesTable, nil
	case DriverSQLite:
		return createSQLiteNotesTable, nil
	default:
		return "", fmt.Errorf("unsupported driver %q", driver)
	}
}

// InitDB opens the connection pool, verifies it and creates the notes table.
func InitDB(ctx context.Context, src Source) (*sql.DB, error) {
	schema, err := schemaFor(src.Driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(src.Driver, src.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", src.Driver, err)
	}

	// Every :memory: connection is its own database, and file databases lock on write.
	if src.Driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s ping failed: %w", src.Driver, err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating notes table: %w", err)
	}

	return db, nil
}
