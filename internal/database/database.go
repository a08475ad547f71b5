package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect identifies the SQL flavour behind a connection
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// DB is a *sql.DB that knows its dialect.
// Repositories write queries with $N placeholders and call Rebind.
type DB struct {
	*sql.DB
	Dialect Dialect
}

// NewPostgresConnection opens a Postgres connection pool, verifies it and applies migrations
func NewPostgresConnection(databaseURL string) (*DB, error) {
	sqlDB, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return finishOpen(sqlDB, Postgres)
}

// NewSQLiteConnection opens a file-backed SQLite database and applies migrations.
// The special path ":memory:" opens a private in-memory database.
func NewSQLiteConnection(path string) (*DB, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	dsn := ":memory:"
	if path != ":memory:" {
		cleanPath := filepath.Clean(path)
		if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create sqlite directory: %w", err)
		}
		dsn = cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	}

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	// A single connection keeps writers serialized and keeps an in-memory
	// database alive for the lifetime of the pool.
	sqlDB.SetMaxOpenConns(1)

	return finishOpen(sqlDB, SQLite)
}

func finishOpen(sqlDB *sql.DB, dialect Dialect) (*DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", dialect, err)
	}

	db := &DB{DB: sqlDB, Dialect: dialect}
	if err := ApplyMigrations(ctx, db); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

// Rebind rewrites $N placeholders for the connection's dialect.
// SQLite queries must reference each placeholder once, in ascending order.
func (db *DB) Rebind(query string) string {
	if db.Dialect != SQLite {
		return query
	}

	var b strings.Builder
	b.Grow(len(query))
	for i := 0; i < len(query); i++ {
		c := query[i]
		if c != '$' {
			b.WriteByte(c)
			continue
		}
		j := i + 1
		for j < len(query) && query[j] >= '0' && query[j] <= '9' {
			j++
		}
		if j == i+1 {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('?')
		i = j - 1
	}
	return b.String()
}

// ToMillis converts a timestamp to the integer column representation
func ToMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

// FromMillis converts the integer column representation back to a timestamp
func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
