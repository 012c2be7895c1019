package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a lookup matches no row
var ErrNotFound = errors.New("not found")

// Supported values for the driver argument of Open
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// postgresPoolSize bounds the PostgreSQL connection pool
const postgresPoolSize = 16

// Repository handles all database operations
type Repository struct {
	db     *sql.DB
	driver string
}

// Open connects to the database and runs migrations.
// For SQLite the dsn is a file path; for PostgreSQL it is a connection URL.
// Queries use $n placeholders, which both drivers accept.
func Open(driver, dsn string) (*Repository, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database dsn is required")
	}

	var (
		db  *sql.DB
		err error
	)
	switch driver {
	case DriverSQLite:
		// Ensure directory exists
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		db, err = sql.Open("sqlite", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		// SQLite only supports one writer at a time
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	case DriverPostgres:
		db, err = sql.Open("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		db.SetMaxOpenConns(postgresPoolSize)
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", driver)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	repo := &Repository{db: db, driver: driver}

	// Run migrations
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return repo, nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}

// migrate creates the database schema and the settings row
func (r *Repository) migrate() error {
	configID := "id INTEGER PRIMARY KEY"
	if r.driver == DriverPostgres {
		configID = "id SERIAL NOT NULL PRIMARY KEY"
	}

	migrations := []string{
		`CREATE TABLE IF NOT EXISTS linked_accounts (
			uuid TEXT PRIMARY KEY,
			username TEXT UNIQUE,
			discord TEXT UNIQUE,
			last_updated BIGINT
		)`,
		`CREATE TABLE IF NOT EXISTS config (
			` + configID + `,
			config JSON NOT NULL
		)`,
		`INSERT INTO config (id, config) VALUES (1, '{}') ON CONFLICT DO NOTHING`,
	}

	for _, migration := range migrations {
		if _, err := r.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}
