package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"votee/internal/retry"
)

func NewPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err := waitForPing(ctx, db, 6); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres not reachable: %w", err)
	}
	return db, nil
}

func waitForPing(ctx context.Context, db *sql.DB, attempts int) error {
	return retry.DoWithRetry(ctx, attempts, 500*time.Millisecond, func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		return db.PingContext(pingCtx)
	})
}
