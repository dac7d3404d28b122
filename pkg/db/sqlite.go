package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fadedpez/bankroll/pkg/db/migrations"
	_ "github.com/mattn/go-sqlite3"
)

// OpenSQLite opens the database at dbPath, creating its directory, and applies
// the built-in migrations.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("error creating database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	// sqlite handles one writer at a time; a single connection also keeps
	// :memory: databases from splitting per connection
	conn.SetMaxOpenConns(1)

	if _, err := migrations.NewMigrator(conn, migrations.Builtin()).MigrateUp(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("error migrating database: %w", err)
	}

	return conn, nil
}
