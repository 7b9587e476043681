package program

import (
	"context"
	"errors"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/jonboulle/clockwork"

	"votee/internal/domain/account"
	"votee/internal/platform/pda"
)

// Host limits on stored text, in bytes.
const (
	MaxDescriptionLen = 280
	MaxNameLen        = 32
)

type InitializeAccounts struct {
	Payer         pda.Address
	Counter       pda.Address
	Registrations pda.Address
}

type CreatePollAccounts struct {
	Payer   pda.Address
	Poll    pda.Address
	Counter pda.Address
}

type RegisterCandidateAccounts struct {
	Payer         pda.Address
	Poll          pda.Address
	Candidate     pda.Address
	Registrations pda.Address
}

type VoteAccounts struct {
	Payer     pda.Address
	Poll      pda.Address
	Candidate pda.Address
	Voter     pda.Address
}

type record interface {
	Encode() []byte
	Decode(data []byte) error
}

// Service validates and applies the program's instructions. Each instruction runs inside a
// single repository transaction, so a failure leaves no trace in the store.
type Service struct {
	addrs Addresses
	repo  account.Repository
	clock clockwork.Clock
}

func NewService(programID pda.Address, repo account.Repository, clock clockwork.Clock) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{
		addrs: Addresses{ProgramID: programID},
		repo:  repo,
		clock: clock,
	}
}

func (s *Service) ProgramID() pda.Address {
	return s.addrs.ProgramID
}

func (s *Service) Addresses() Addresses {
	return s.addrs
}

func (s *Service) Initialize(ctx context.Context, accts InitializeAccounts) (*account.Counter, *account.Registrations, error) {
	if accts.Payer.IsZero() {
		return nil, nil, ErrMissingSigner
	}
	if err := expectAddress("counter", accts.Counter, s.addrs.Counter()); err != nil {
		return nil, nil, err
	}
	if err := expectAddress("registerations", accts.Registrations, s.addrs.Registrations()); err != nil {
		return nil, nil, err
	}

	counter := &account.Counter{}
	regs := &account.Registrations{}
	err := s.repo.Atomic(ctx, func(ctx context.Context, tx account.Tx) error {
		if err := s.create(ctx, tx, accts.Counter, account.KindCounter, counter); err != nil {
			return alreadyInitialized(err)
		}
		if err := s.create(ctx, tx, accts.Registrations, account.KindRegistrations, regs); err != nil {
			return alreadyInitialized(err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return counter, regs, nil
}

func (s *Service) CreatePoll(ctx context.Context, accts CreatePollAccounts, description string, start, end int64) (*account.Poll, error) {
	if accts.Payer.IsZero() {
		return nil, ErrMissingSigner
	}
	if start >= end {
		return nil, ErrInvalidDates
	}
	if err := checkText("description", description, MaxDescriptionLen); err != nil {
		return nil, err
	}
	if err := expectAddress("counter", accts.Counter, s.addrs.Counter()); err != nil {
		return nil, err
	}

	var poll account.Poll
	err := s.repo.Atomic(ctx, func(ctx context.Context, tx account.Tx) error {
		var counter account.Counter
		if err := s.load(ctx, tx, accts.Counter, &counter); err != nil {
			return err
		}
		if counter.Count == math.MaxUint64 {
			return ErrArithmeticOverflow
		}
		next := counter.Count + 1

		if err := s.vacant(ctx, tx, accts.Poll); err != nil {
			return err
		}
		if err := expectAddress("poll", accts.Poll, s.addrs.Poll(next)); err != nil {
			return err
		}

		poll = account.Poll{
			ID:          next,
			Description: description,
			Start:       start,
			End:         end,
			Candidates:  0,
		}
		if err := s.create(ctx, tx, accts.Poll, account.KindPoll, &poll); err != nil {
			return err
		}

		counter.Count = next
		return s.update(ctx, tx, accts.Counter, account.KindCounter, &counter)
	})
	if err != nil {
		return nil, err
	}
	return &poll, nil
}

func (s *Service) RegisterCandidate(ctx context.Context, accts RegisterCandidateAccounts, pollID uint64, name string) (*account.Candidate, error) {
	if accts.Payer.IsZero() {
		return nil, ErrMissingSigner
	}
	if err := checkText("name", name, MaxNameLen); err != nil {
		return nil, err
	}
	if err := expectAddress("poll", accts.Poll, s.addrs.Poll(pollID)); err != nil {
		return nil, err
	}
	if err := expectAddress("registerations", accts.Registrations, s.addrs.Registrations()); err != nil {
		return nil, err
	}

	var candidate account.Candidate
	err := s.repo.Atomic(ctx, func(ctx context.Context, tx account.Tx) error {
		var poll account.Poll
		if err := s.load(ctx, tx, accts.Poll, &poll); err != nil {
			return pollLookup(err)
		}
		var regs account.Registrations
		if err := s.load(ctx, tx, accts.Registrations, &regs); err != nil {
			return err
		}
		if regs.Count == math.MaxUint64 || poll.Candidates == math.MaxUint64 {
			return ErrArithmeticOverflow
		}
		next := regs.Count + 1

		if err := s.vacant(ctx, tx, accts.Candidate); err != nil {
			return alreadyRegistered(err)
		}
		if err := expectAddress("candidate", accts.Candidate, s.addrs.Candidate(pollID, next)); err != nil {
			return err
		}

		candidate = account.Candidate{
			CID:           next,
			PollID:        pollID,
			Name:          name,
			Votes:         0,
			HasRegistered: true,
		}
		if err := s.create(ctx, tx, accts.Candidate, account.KindCandidate, &candidate); err != nil {
			return alreadyRegistered(err)
		}

		regs.Count = next
		if err := s.update(ctx, tx, accts.Registrations, account.KindRegistrations, &regs); err != nil {
			return err
		}
		poll.Candidates++
		return s.update(ctx, tx, accts.Poll, account.KindPoll, &poll)
	})
	if err != nil {
		return nil, err
	}
	return &candidate, nil
}

func (s *Service) Vote(ctx context.Context, accts VoteAccounts, pollID, candidateID uint64) (*account.Voter, *account.Candidate, error) {
	if accts.Payer.IsZero() {
		return nil, nil, ErrMissingSigner
	}
	if err := expectAddress("poll", accts.Poll, s.addrs.Poll(pollID)); err != nil {
		return nil, nil, err
	}
	if err := expectAddress("candidate", accts.Candidate, s.addrs.Candidate(pollID, candidateID)); err != nil {
		return nil, nil, err
	}
	if err := expectAddress("voter", accts.Voter, s.addrs.Voter(pollID, accts.Payer)); err != nil {
		return nil, nil, err
	}

	var (
		voter     account.Voter
		candidate account.Candidate
	)
	err := s.repo.Atomic(ctx, func(ctx context.Context, tx account.Tx) error {
		var poll account.Poll
		if err := s.load(ctx, tx, accts.Poll, &poll); err != nil {
			return pollLookup(err)
		}
		if !poll.ActiveAt(s.clock.Now().Unix()) {
			return ErrPollNotActive
		}

		if err := s.load(ctx, tx, accts.Candidate, &candidate); err != nil {
			if errors.Is(err, account.ErrAccountNotInitialized) {
				return fmt.Errorf("%w: %w", ErrCandidateNotRegistered, err)
			}
			return err
		}
		if !candidate.HasRegistered || candidate.PollID != pollID {
			return ErrCandidateNotRegistered
		}

		if err := s.vacant(ctx, tx, accts.Voter); err != nil {
			return alreadyVoted(err)
		}
		if candidate.Votes == math.MaxUint64 {
			return ErrArithmeticOverflow
		}

		voter = account.Voter{CID: candidateID, PollID: pollID, HasVoted: true}
		if err := s.create(ctx, tx, accts.Voter, account.KindVoter, &voter); err != nil {
			return alreadyVoted(err)
		}

		candidate.Votes++
		return s.update(ctx, tx, accts.Candidate, account.KindCandidate, &candidate)
	})
	if err != nil {
		return nil, nil, err
	}
	return &voter, &candidate, nil
}

func (s *Service) load(ctx context.Context, tx account.Tx, addr pda.Address, rec record) error {
	acc, err := tx.Get(ctx, addr)
	if err != nil {
		return err
	}
	return s.decode(acc, rec)
}

func (s *Service) decode(acc *account.Account, rec record) error {
	if acc.Owner != s.addrs.ProgramID {
		return fmt.Errorf("%w: %s", ErrAccountOwnedByWrongProgram, acc.Address)
	}
	if err := rec.Decode(acc.Data); err != nil {
		if errors.Is(err, account.ErrDiscriminatorMismatch) {
			return fmt.Errorf("%w: %w", ErrAccountDiscriminatorMismatch, err)
		}
		return fmt.Errorf("decode %s: %w", acc.Address, err)
	}
	return nil
}

// vacant returns ErrAddressOccupied when addr already holds an account.
func (s *Service) vacant(ctx context.Context, tx account.Tx, addr pda.Address) error {
	_, err := tx.Get(ctx, addr)
	switch {
	case err == nil:
		return fmt.Errorf("%w: %s", account.ErrAddressOccupied, addr)
	case errors.Is(err, account.ErrAccountNotInitialized):
		return nil
	default:
		return err
	}
}

func (s *Service) envelope(addr pda.Address, kind account.Kind, rec record) *account.Account {
	return &account.Account{
		Address: addr,
		Owner:   s.addrs.ProgramID,
		Kind:    kind,
		Data:    rec.Encode(),
	}
}

func (s *Service) create(ctx context.Context, tx account.Tx, addr pda.Address, kind account.Kind, rec record) error {
	return tx.Create(ctx, s.envelope(addr, kind, rec))
}

func (s *Service) update(ctx context.Context, tx account.Tx, addr pda.Address, kind account.Kind, rec record) error {
	return tx.Update(ctx, s.envelope(addr, kind, rec))
}

func expectAddress(name string, got, want pda.Address) error {
	if got != want {
		return fmt.Errorf("%w: %s account is %s, expected %s", ErrAddressMismatch, name, got, want)
	}
	return nil
}

// checkText bounds the stored size of free text. Empty text is allowed.
func checkText(field, value string, max int) error {
	if len(value) > max {
		return fmt.Errorf("%w: %s is %d bytes, max %d", ErrInvalidArgument, field, len(value), max)
	}
	if !utf8.ValidString(value) {
		return fmt.Errorf("%w: %s is not valid UTF-8", ErrInvalidArgument, field)
	}
	return nil
}

func pollLookup(err error) error {
	if errors.Is(err, account.ErrAccountNotInitialized) {
		return fmt.Errorf("%w: %w", ErrPollNotFound, err)
	}
	return err
}

func alreadyInitialized(err error) error {
	if errors.Is(err, account.ErrAddressOccupied) {
		return fmt.Errorf("%w: %w", ErrAccountAlreadyInitialized, err)
	}
	return err
}

func alreadyRegistered(err error) error {
	if errors.Is(err, account.ErrAddressOccupied) {
		return fmt.Errorf("%w: %w", ErrCandidateAlreadyRegistered, err)
	}
	return err
}

func alreadyVoted(err error) error {
	if errors.Is(err, account.ErrAddressOccupied) {
		return fmt.Errorf("%w: %w", ErrVoterAlreadyVoted, err)
	}
	return err
}
