package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
)

// CreateSchema creates the tables the stores need.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, db *sql.DB, d Dialect) error {
	for _, stmt := range d.schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
    address BYTEA PRIMARY KEY,
    owner BYTEA NOT NULL,
    kind TEXT NOT NULL,
    data BYTEA NOT NULL,
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_accounts_kind ON accounts(kind)`,
	`CREATE TABLE IF NOT EXISTS users (
    id BIGSERIAL PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    identity BYTEA NOT NULL UNIQUE,
    created_at BIGINT NOT NULL
)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
    address BLOB PRIMARY KEY,
    owner BLOB NOT NULL,
    kind TEXT NOT NULL,
    data BLOB NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_accounts_kind ON accounts(kind)`,
	`CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    identity BLOB NOT NULL UNIQUE,
    created_at INTEGER NOT NULL
)`,
}
