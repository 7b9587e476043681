// Package repository opens the account and user stores selected by configuration.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"votee/internal/config"
	"votee/internal/domain/account"
	"votee/internal/domain/user"
	"votee/internal/platform/database"
	"votee/internal/repository/memory"
	"votee/internal/repository/sqlstore"
)

type Stores struct {
	Accounts account.Repository
	Users    user.Repository
	db       *sql.DB
}

func (s *Stores) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Open connects to the configured backend and makes sure its schema exists.
func Open(ctx context.Context, cfg config.Config) (*Stores, error) {
	var (
		db      *sql.DB
		dialect sqlstore.Dialect
		err     error
	)
	switch cfg.DBDriver {
	case config.DriverMemory:
		return &Stores{Accounts: memory.NewAccountRepo(), Users: memory.NewUserRepo()}, nil
	case config.DriverPostgres:
		db, err = database.NewPostgres(ctx, cfg.DBDSN)
		dialect = sqlstore.Postgres
	case config.DriverSQLite:
		db, err = database.NewSQLite(ctx, cfg.DBDSN)
		dialect = sqlstore.SQLite
	default:
		return nil, fmt.Errorf("unknown db driver %q", cfg.DBDriver)
	}
	if err != nil {
		return nil, err
	}

	if err := sqlstore.CreateSchema(ctx, db, dialect); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Stores{
		Accounts: sqlstore.NewAccountRepo(db, dialect),
		Users:    sqlstore.NewUserRepo(db, dialect),
		db:       db,
	}, nil
}
