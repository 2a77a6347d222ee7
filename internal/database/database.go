// Package database archives generated dungeons in SQLite or PostgreSQL.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Database wraps the SQL connection and provides archive operations.
type Database struct {
	db      *sql.DB
	dialect Dialect
}

// Open opens or creates a SQLite archive at the given path.
func Open(path string) (*Database, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	return OpenWithDialect(DialectSQLite, path)
}

// OpenPostgres opens a PostgreSQL archive with the given DSN.
func OpenPostgres(dsn string) (*Database, error) {
	return OpenWithDialect(DialectPostgres, dsn)
}

// OpenWithDialect opens an archive on the given dialect and data source
// and runs migrations.
func OpenWithDialect(dialectType DialectType, dataSource string) (*Database, error) {
	dialect := NewDialect(dialectType)

	db, err := sql.Open(dialect.DriverName(), dataSource)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	for _, stmt := range dialect.InitStatements() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
	}

	d := &Database{db: db, dialect: dialect}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return d, nil
}

// Close closes the database connection.
func (d *Database) Close() error {
	return d.db.Close()
}

// Dialect returns the dialect the archive runs on.
func (d *Database) Dialect() Dialect {
	return d.dialect
}

// migrate creates the archive schema if it doesn't exist.
func (d *Database) migrate() error {
	migrations := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS dungeons (
			id %s,
			seed TEXT NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			room_count INTEGER NOT NULL,
			options TEXT NOT NULL,
			tiles TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(seed, options)
		)`, d.dialect.AutoIncrementPrimaryKey()),

		`CREATE INDEX IF NOT EXISTS idx_dungeons_seed ON dungeons(seed)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}

	return nil
}
