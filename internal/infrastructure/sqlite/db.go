// Package sqlite implementa los repositorios del catálogo sobre SQLite (driver puro Go).
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// DBTX lo cumplen *sql.DB y *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)

const memoryPath = ":memory:"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS properties (
		id          INTEGER PRIMARY KEY,
		name        TEXT NOT NULL,
		friendly_id TEXT NOT NULL,
		handle      TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at  INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS property_values (
		property_id INTEGER NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
		position    INTEGER NOT NULL,
		id          INTEGER NOT NULL,
		name        TEXT NOT NULL,
		friendly_id TEXT NOT NULL,
		handle      TEXT NOT NULL,
		PRIMARY KEY (property_id, position)
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		parent_id  TEXT REFERENCES categories(id) ON DELETE CASCADE,
		children   TEXT NOT NULL DEFAULT '[]',
		attributes TEXT NOT NULL DEFAULT '[]',
		created_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_categories_parent_id ON categories(parent_id)`,
}

// Open abre (o crea) la base en path, activa claves foráneas y aplica el esquema.
// Con path ":memory:" la base vive mientras el *sql.DB esté abierto.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		path = "taxonomy.db"
	}
	dsn := "file::memory:?_pragma=foreign_keys(1)"
	if path != memoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
		dsn = "file:" + path + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Una sola conexión: SQLite serializa escrituras y ":memory:" es por conexión.
	db.SetMaxOpenConns(1)

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	return db, nil
}

func errorCode(err error) int {
	var e *sqlite.Error
	if errors.As(err, &e) {
		return e.Code()
	}
	return 0
}

// Sin códigos extendidos solo llega SQLITE_CONSTRAINT; se distingue por el mensaje.
func isUniqueViolation(err error) bool {
	switch errorCode(err) {
	case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		return true
	case sqlite3.SQLITE_CONSTRAINT:
		return strings.Contains(err.Error(), "UNIQUE")
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	switch errorCode(err) {
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return true
	case sqlite3.SQLITE_CONSTRAINT:
		return strings.Contains(err.Error(), "FOREIGN KEY")
	}
	return false
}

// atomic ejecuta fn en una transacción propia, o en un savepoint si q ya es una *sql.Tx.
func atomic(ctx context.Context, q DBTX, name string, fn func(DBTX) error) (err error) {
	switch db := q.(type) {
	case *sql.DB:
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer func() { _ = tx.Rollback() }()
		if err := fn(tx); err != nil {
			return err
		}
		return tx.Commit()
	default:
		if _, err := q.ExecContext(ctx, "SAVEPOINT "+name); err != nil {
			return fmt.Errorf("savepoint: %w", err)
		}
		if err := fn(q); err != nil {
			_, _ = q.ExecContext(ctx, "ROLLBACK TO "+name)
			_, _ = q.ExecContext(ctx, "RELEASE "+name)
			return err
		}
		_, err = q.ExecContext(ctx, "RELEASE "+name)
		return err
	}
}
