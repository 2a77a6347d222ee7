package database

import "strings"

// SQLiteDialect implements Dialect for the modernc.org/sqlite driver.
type SQLiteDialect struct{}

// DriverName returns "sqlite".
func (d *SQLiteDialect) DriverName() string {
	return "sqlite"
}

// Placeholder returns "?" regardless of position.
func (d *SQLiteDialect) Placeholder(position int) string {
	return "?"
}

// SupportsLastInsertID returns true.
func (d *SQLiteDialect) SupportsLastInsertID() bool {
	return true
}

// ReturningClause returns "" because SQLite uses LastInsertId.
func (d *SQLiteDialect) ReturningClause(column string) string {
	return ""
}

// InitStatements returns the PRAGMAs the archive relies on.
func (d *SQLiteDialect) InitStatements() []string {
	return []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
}

// IsDuplicateKeyError matches SQLite unique constraint failures.
func (d *SQLiteDialect) IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// AutoIncrementPrimaryKey returns the SQLite rowid alias definition.
func (d *SQLiteDialect) AutoIncrementPrimaryKey() string {
	return "INTEGER PRIMARY KEY AUTOINCREMENT"
}
