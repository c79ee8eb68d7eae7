package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

//go:embed schema_sqlite.sql
var sqliteSchema string

//go:embed schema_postgres.sql
var postgresSchema string

// Schema version tracking (SQLite user_version):
// 1 - households, guests, rsvp_submissions, admin_users
const currentSchemaVersion = 1

var (
	// ErrNotFound is returned when a scoped read, update or delete matched no row
	ErrNotFound = errors.New("record not found")
	// ErrHouseholdNotFound is returned when a guest references a missing household
	ErrHouseholdNotFound = errors.New("household not found")
	// ErrDuplicateEmail is returned when an admin email is already registered
	ErrDuplicateEmail = errors.New("an admin with that email already exists")
)

// sqliteDriver is go-sqlite3 with a casefold() SQL function registered on
// every connection. SQLite's own lower() only folds ASCII.
const sqliteDriver = "sqlite3_casefold"

func init() {
	sql.Register(sqliteDriver, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("casefold", foldName, true)
		},
	})
}

// foldName is the case folding applied to both stored names and lookup input
func foldName(s string) string {
	return strings.ToLower(s)
}

// Dialect selects placeholder style and schema
type Dialect int

const (
	DialectSQLite Dialect = iota
	DialectPostgres
)

// DialectFor maps a database/sql driver name onto its dialect
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "sqlite3":
		return DialectSQLite, nil
	case "postgres":
		return DialectPostgres, nil
	default:
		return 0, fmt.Errorf("unsupported driver %q", driver)
	}
}

// Storage is the self-hosted data service: guests, households, RSVP
// submissions and admin accounts in one SQL database
type Storage struct {
	db      *sql.DB
	dialect Dialect
	now     func() time.Time
	newID   func() string
}

// NewStorage opens the database, applies pragmas and the schema
func NewStorage(ctx context.Context, driver, dsn string) (*Storage, error) {
	dialect, err := DialectFor(driver)
	if err != nil {
		return nil, err
	}

	driverName := driver
	if dialect == DialectSQLite {
		driverName = sqliteDriver
	}
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if dialect == DialectSQLite {
		// SQLite only supports one writer at a time
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		if err := applyPragmas(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply pragmas: %w", err)
		}
	}

	s := New(db, dialect)
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an open database without touching its schema. SQLite handles
// must come from NewStorage so casefold() is available.
func New(db *sql.DB, dialect Dialect) *Storage {
	return &Storage{
		db:      db,
		dialect: dialect,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
	}
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping reports whether the database is reachable
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Migrate creates missing tables. It is idempotent.
func (s *Storage) Migrate(ctx context.Context) error {
	schema := sqliteSchema
	if s.dialect == DialectPostgres {
		schema = postgresSchema
	}
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	if s.dialect == DialectSQLite {
		if _, err := s.db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
			return fmt.Errorf("set user_version: %w", err)
		}
	}
	return nil
}

func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// rebind rewrites '?' placeholders into the dialect's style
func (s *Storage) rebind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// fold wraps a SQL expression in the dialect's Unicode-aware lowercasing
func (s *Storage) fold(expr string) string {
	if s.dialect == DialectPostgres {
		return "lower(" + expr + ")"
	}
	return "casefold(" + expr + ")"
}

// escapeLike escapes LIKE wildcards so user input only matches literally
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23503"
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// expectOne turns a zero-row mutation into ErrNotFound
func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
