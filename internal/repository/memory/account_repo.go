package memory

import (
	"context"
	"fmt"
	"sync"

	"votee/internal/domain/account"
	"votee/internal/platform/pda"
)

// AccountRepo keeps accounts in a map. Transactions hold the lock for their whole run and
// stage writes, so a failed transaction never touches the map.
type AccountRepo struct {
	mu       sync.Mutex
	accounts map[pda.Address]account.Account
}

func NewAccountRepo() *AccountRepo {
	return &AccountRepo{accounts: make(map[pda.Address]account.Account)}
}

func (r *AccountRepo) Atomic(ctx context.Context, fn func(ctx context.Context, tx account.Tx) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &accountTx{repo: r, staged: make(map[pda.Address]account.Account)}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	for addr, acc := range tx.staged {
		r.accounts[addr] = acc
	}
	return nil
}

func (r *AccountRepo) Get(ctx context.Context, addr pda.Address) (*account.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	acc, ok := r.accounts[addr]
	if !ok {
		return nil, fmt.Errorf("%w: %s", account.ErrAccountNotInitialized, addr)
	}
	return cloneAccount(acc), nil
}

func (r *AccountRepo) List(ctx context.Context, kind account.Kind) ([]account.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := []account.Account{}
	for _, acc := range r.accounts {
		if acc.Kind == kind {
			res = append(res, *cloneAccount(acc))
		}
	}
	return res, nil
}

func (r *AccountRepo) Ping(ctx context.Context) error {
	return ctx.Err()
}

type accountTx struct {
	repo   *AccountRepo
	staged map[pda.Address]account.Account
}

func (tx *accountTx) lookup(addr pda.Address) (account.Account, bool) {
	if acc, ok := tx.staged[addr]; ok {
		return acc, true
	}
	acc, ok := tx.repo.accounts[addr]
	return acc, ok
}

func (tx *accountTx) Get(ctx context.Context, addr pda.Address) (*account.Account, error) {
	acc, ok := tx.lookup(addr)
	if !ok {
		return nil, fmt.Errorf("%w: %s", account.ErrAccountNotInitialized, addr)
	}
	return cloneAccount(acc), nil
}

func (tx *accountTx) Create(ctx context.Context, acc *account.Account) error {
	if _, ok := tx.lookup(acc.Address); ok {
		return fmt.Errorf("%w: %s", account.ErrAddressOccupied, acc.Address)
	}
	tx.staged[acc.Address] = *cloneAccount(*acc)
	return nil
}

func (tx *accountTx) Update(ctx context.Context, acc *account.Account) error {
	if _, ok := tx.lookup(acc.Address); !ok {
		return fmt.Errorf("%w: %s", account.ErrAccountNotInitialized, acc.Address)
	}
	tx.staged[acc.Address] = *cloneAccount(*acc)
	return nil
}

func cloneAccount(acc account.Account) *account.Account {
	data := make([]byte, len(acc.Data))
	copy(data, acc.Data)
	acc.Data = data
	return &acc
}
