package user

import (
	"context"
	"time"

	"votee/internal/platform/pda"
)

type User struct {
	ID           int64       `json:"id"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Identity     pda.Address `json:"identity"`
	CreatedAt    time.Time   `json:"created_at"`
}

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
}
