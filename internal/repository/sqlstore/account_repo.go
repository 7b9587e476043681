package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"votee/internal/domain/account"
	"votee/internal/platform/pda"
	"votee/internal/retry"
)

const txAttempts = 3

type AccountRepo struct {
	db      *sql.DB
	dialect Dialect
}

func NewAccountRepo(db *sql.DB, d Dialect) *AccountRepo {
	return &AccountRepo{db: db, dialect: d}
}

// Atomic runs fn in a database transaction. Lock conflicts are retried with a fresh
// transaction; any other error rolls back and is returned untouched.
func (r *AccountRepo) Atomic(ctx context.Context, fn func(ctx context.Context, tx account.Tx) error) error {
	return retry.DoWithRetry(ctx, txAttempts, 20*time.Millisecond, func() error {
		err := r.runTx(ctx, fn)
		if err != nil && !r.dialect.transient(err) {
			return retry.Permanent(err)
		}
		return err
	})
}

func (r *AccountRepo) runTx(ctx context.Context, fn func(ctx context.Context, tx account.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(ctx, &accountTx{tx: tx, dialect: r.dialect}); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *AccountRepo) Get(ctx context.Context, addr pda.Address) (*account.Account, error) {
	return getAccount(ctx, r.db, r.dialect, addr, "")
}

func (r *AccountRepo) List(ctx context.Context, kind account.Kind) ([]account.Account, error) {
	rows, err := r.db.QueryContext(ctx, r.dialect.rebind(`
        SELECT address, owner, kind, data
        FROM accounts WHERE kind = ?
        ORDER BY created_at, address
    `), string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := []account.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *acc)
	}
	return res, rows.Err()
}

func (r *AccountRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

func getAccount(ctx context.Context, q queryer, d Dialect, addr pda.Address, suffix string) (*account.Account, error) {
	row := q.QueryRowContext(ctx, d.rebind(`
        SELECT address, owner, kind, data
        FROM accounts WHERE address = ?`+suffix), addr[:])
	acc, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", account.ErrAccountNotInitialized, addr)
	}
	return acc, err
}

func scanAccount(s scanner) (*account.Account, error) {
	var (
		address, owner, data []byte
		kind                 string
	)
	if err := s.Scan(&address, &owner, &kind, &data); err != nil {
		return nil, err
	}
	addr, err := pda.FromBytes(address)
	if err != nil {
		return nil, err
	}
	own, err := pda.FromBytes(owner)
	if err != nil {
		return nil, err
	}
	return &account.Account{Address: addr, Owner: own, Kind: account.Kind(kind), Data: data}, nil
}

type accountTx struct {
	tx      *sql.Tx
	dialect Dialect
}

// Get locks the row for the rest of the transaction where the engine supports it.
func (t *accountTx) Get(ctx context.Context, addr pda.Address) (*account.Account, error) {
	return getAccount(ctx, t.tx, t.dialect, addr, t.dialect.lockSuffix)
}

func (t *accountTx) Create(ctx context.Context, acc *account.Account) error {
	now := time.Now().Unix()
	_, err := t.tx.ExecContext(ctx, t.dialect.rebind(`
        INSERT INTO accounts (address, owner, kind, data, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?)
    `), acc.Address[:], acc.Owner[:], string(acc.Kind), acc.Data, now, now)
	if err != nil {
		if t.dialect.uniqueViolation(err) {
			return fmt.Errorf("%w: %s", account.ErrAddressOccupied, acc.Address)
		}
		return err
	}
	return nil
}

func (t *accountTx) Update(ctx context.Context, acc *account.Account) error {
	res, err := t.tx.ExecContext(ctx, t.dialect.rebind(`
        UPDATE accounts SET owner = ?, kind = ?, data = ?, updated_at = ?
        WHERE address = ?
    `), acc.Owner[:], string(acc.Kind), acc.Data, time.Now().Unix(), acc.Address[:])
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", account.ErrAccountNotInitialized, acc.Address)
	}
	return nil
}
