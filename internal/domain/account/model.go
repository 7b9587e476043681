package account

import (
	"context"
	"errors"

	"votee/internal/platform/pda"
)

type Kind string

const (
	KindCounter       Kind = "Counter"
	KindRegistrations Kind = "Registerations"
	KindPoll          Kind = "Poll"
	KindCandidate     Kind = "Candidate"
	KindVoter         Kind = "Voter"
)

var (
	ErrAddressOccupied       = errors.New("account address already in use")
	ErrAccountNotInitialized = errors.New("account not initialized")
	ErrDiscriminatorMismatch = errors.New("account discriminator did not match")
	ErrUnknownDiscriminator  = errors.New("unknown account discriminator")
	ErrAccountDataTooSmall   = errors.New("account data too small")
	ErrAccountDataTrailing   = errors.New("account data has trailing bytes")
)

// Account is the stored envelope of a record: who owns it and its encoded bytes.
type Account struct {
	Address pda.Address `json:"address"`
	Owner   pda.Address `json:"owner"`
	Kind    Kind        `json:"kind"`
	Data    []byte      `json:"data"`
}

type Counter struct {
	Count uint64 `json:"count"`
}

type Registrations struct {
	Count uint64 `json:"count"`
}

type Poll struct {
	ID          uint64 `json:"id"`
	Description string `json:"description"`
	Start       int64  `json:"start"`
	End         int64  `json:"end"`
	Candidates  uint64 `json:"candidates"`
}

// ActiveAt reports whether now falls in [Start, End).
func (p *Poll) ActiveAt(now int64) bool {
	return p.Start <= now && now < p.End
}

type Candidate struct {
	PollID        uint64 `json:"poll_id"`
	Name          string `json:"name"`
	HasRegistered bool   `json:"has_registered"`
	Votes         uint64 `json:"votes"`
	CID           uint64 `json:"cid"`
}

type Voter struct {
	PollID   uint64 `json:"poll_id"`
	CID      uint64 `json:"cid"`
	HasVoted bool   `json:"has_voted"`
}

// Tx is the view of the store inside one atomic instruction.
type Tx interface {
	// Get returns ErrAccountNotInitialized when nothing lives at addr.
	Get(ctx context.Context, addr pda.Address) (*Account, error)
	// Create fails with ErrAddressOccupied when addr already holds an account.
	Create(ctx context.Context, acc *Account) error
	Update(ctx context.Context, acc *Account) error
}

type Repository interface {
	// Atomic runs fn in a transaction. Any error from fn discards every write made through tx.
	Atomic(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	Get(ctx context.Context, addr pda.Address) (*Account, error)
	List(ctx context.Context, kind Kind) ([]Account, error)
	Ping(ctx context.Context) error
}
