package postgres

import (
	"context"
	"fmt"
)

// schema tablas del catálogo. Los valores de una propiedad y los hijos de una categoría
// se borran en cascada con su dueño.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS properties (
		id          BIGINT PRIMARY KEY,
		name        TEXT NOT NULL,
		friendly_id TEXT NOT NULL,
		handle      TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS property_values (
		property_id BIGINT NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
		position    INT NOT NULL,
		id          BIGINT NOT NULL,
		name        TEXT NOT NULL,
		friendly_id TEXT NOT NULL,
		handle      TEXT NOT NULL,
		PRIMARY KEY (property_id, position)
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		parent_id  TEXT REFERENCES categories(id) ON DELETE CASCADE,
		children   TEXT[] NOT NULL DEFAULT '{}',
		attributes TEXT[] NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_categories_parent_id ON categories(parent_id)`,
}

// Migrate crea las tablas si no existen. Es idempotente.
func Migrate(ctx context.Context, q Querier) error {
	for _, stmt := range schema {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
