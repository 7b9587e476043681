package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"votee/internal/domain/user"
	"votee/internal/platform/pda"
)

type UserRepo struct {
	db      *sql.DB
	dialect Dialect
}

func NewUserRepo(db *sql.DB, d Dialect) *UserRepo {
	return &UserRepo{db: db, dialect: d}
}

func (r *UserRepo) Create(ctx context.Context, u *user.User) error {
	createdAt := time.Now().UTC().Truncate(time.Second)
	err := r.db.QueryRowContext(ctx, r.dialect.rebind(`
        INSERT INTO users (email, password_hash, identity, created_at)
        VALUES (?, ?, ?, ?)
        RETURNING id
    `), u.Email, u.PasswordHash, u.Identity[:], createdAt.Unix()).Scan(&u.ID)
	if err != nil {
		if r.dialect.uniqueViolation(err) {
			return user.ErrEmailTaken
		}
		return err
	}
	u.CreatedAt = createdAt
	return nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.getOne(ctx, `
        SELECT id, email, password_hash, identity, created_at
        FROM users WHERE email = ?
    `, email)
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return r.getOne(ctx, `
        SELECT id, email, password_hash, identity, created_at
        FROM users WHERE id = ?
    `, id)
}

func (r *UserRepo) getOne(ctx context.Context, query string, arg any) (*user.User, error) {
	var (
		u         user.User
		identity  []byte
		createdAt int64
	)
	err := r.db.QueryRowContext(ctx, r.dialect.rebind(query), arg).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &identity, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	if u.Identity, err = pda.FromBytes(identity); err != nil {
		return nil, err
	}
	u.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &u, nil
}
