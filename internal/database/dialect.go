package database

// Dialect abstracts the SQL syntax differences between SQLite and
// PostgreSQL so the archive queries are written once.
type Dialect interface {
	// DriverName returns the driver name for sql.Open.
	DriverName() string

	// Placeholder returns the parameter placeholder for a 1-indexed
	// position: "?" for SQLite, "$1", "$2", ... for PostgreSQL.
	Placeholder(position int) string

	// SupportsLastInsertID reports whether the driver implements
	// LastInsertId; PostgreSQL needs a RETURNING clause instead.
	SupportsLastInsertID() bool

	// ReturningClause returns the RETURNING clause for inserts, or ""
	// when LastInsertId is available.
	ReturningClause(column string) string

	// InitStatements returns dialect-specific session setup: PRAGMAs
	// for SQLite, nothing for PostgreSQL.
	InitStatements() []string

	// IsDuplicateKeyError reports a unique constraint violation.
	IsDuplicateKeyError(err error) bool

	// AutoIncrementPrimaryKey returns the column definition for an
	// auto-incrementing integer primary key.
	AutoIncrementPrimaryKey() string
}

// DialectType identifies the database dialect.
type DialectType string

const (
	DialectSQLite   DialectType = "sqlite"
	DialectPostgres DialectType = "postgres"
)

// NewDialect creates the Dialect for the given type, defaulting to SQLite.
func NewDialect(dialectType DialectType) Dialect {
	switch dialectType {
	case DialectPostgres:
		return &PostgresDialect{}
	default:
		return &SQLiteDialect{}
	}
}
