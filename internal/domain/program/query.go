package program

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"votee/internal/domain/account"
	"votee/internal/platform/pda"
)

func (s *Service) get(ctx context.Context, addr pda.Address, rec record) error {
	acc, err := s.repo.Get(ctx, addr)
	if err != nil {
		return err
	}
	return s.decode(acc, rec)
}

func (s *Service) Counter(ctx context.Context) (*account.Counter, error) {
	var c account.Counter
	if err := s.get(ctx, s.addrs.Counter(), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Service) Registrations(ctx context.Context) (*account.Registrations, error) {
	var r account.Registrations
	if err := s.get(ctx, s.addrs.Registrations(), &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Service) Poll(ctx context.Context, pollID uint64) (*account.Poll, error) {
	var p account.Poll
	if err := s.get(ctx, s.addrs.Poll(pollID), &p); err != nil {
		return nil, pollLookup(err)
	}
	return &p, nil
}

// Polls returns every poll owned by the program, ordered by id.
func (s *Service) Polls(ctx context.Context) ([]account.Poll, error) {
	accs, err := s.repo.List(ctx, account.KindPoll)
	if err != nil {
		return nil, err
	}
	polls := make([]account.Poll, 0, len(accs))
	for i := range accs {
		var p account.Poll
		if err := s.decode(&accs[i], &p); err != nil {
			if errors.Is(err, ErrAccountOwnedByWrongProgram) {
				continue
			}
			return nil, err
		}
		polls = append(polls, p)
	}
	sort.Slice(polls, func(i, j int) bool { return polls[i].ID < polls[j].ID })
	return polls, nil
}

func (s *Service) Candidate(ctx context.Context, pollID, candidateID uint64) (*account.Candidate, error) {
	var c account.Candidate
	if err := s.get(ctx, s.addrs.Candidate(pollID, candidateID), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Candidates returns the candidates registered against pollID, ordered by cid.
func (s *Service) Candidates(ctx context.Context, pollID uint64) ([]account.Candidate, error) {
	if _, err := s.Poll(ctx, pollID); err != nil {
		return nil, err
	}
	accs, err := s.repo.List(ctx, account.KindCandidate)
	if err != nil {
		return nil, err
	}
	res := []account.Candidate{}
	for i := range accs {
		var c account.Candidate
		if err := s.decode(&accs[i], &c); err != nil {
			if errors.Is(err, ErrAccountOwnedByWrongProgram) {
				continue
			}
			return nil, err
		}
		if c.PollID == pollID {
			res = append(res, c)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CID < res[j].CID })
	return res, nil
}

func (s *Service) Voter(ctx context.Context, pollID uint64, identity pda.Address) (*account.Voter, error) {
	var v account.Voter
	if err := s.get(ctx, s.addrs.Voter(pollID, identity), &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *Service) Account(ctx context.Context, addr pda.Address) (*account.Account, error) {
	return s.repo.Get(ctx, addr)
}

// Now is the host clock reading, in unix seconds, that vote windows are checked against.
func (s *Service) Now() int64 {
	return s.clock.Now().Unix()
}

func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// The helpers below fill in account lists the way a client would: from the counters as
// they are right now. The program still validates them when the instruction runs.

func (s *Service) InitializeAccountsFor(payer pda.Address) InitializeAccounts {
	return InitializeAccounts{
		Payer:         payer,
		Counter:       s.addrs.Counter(),
		Registrations: s.addrs.Registrations(),
	}
}

func (s *Service) CreatePollAccountsFor(ctx context.Context, payer pda.Address) (CreatePollAccounts, error) {
	c, err := s.Counter(ctx)
	if err != nil {
		return CreatePollAccounts{}, fmt.Errorf("read counter: %w", err)
	}
	return CreatePollAccounts{
		Payer:   payer,
		Poll:    s.addrs.Poll(c.Count + 1),
		Counter: s.addrs.Counter(),
	}, nil
}

func (s *Service) RegisterCandidateAccountsFor(ctx context.Context, payer pda.Address, pollID uint64) (RegisterCandidateAccounts, error) {
	r, err := s.Registrations(ctx)
	if err != nil {
		return RegisterCandidateAccounts{}, fmt.Errorf("read registerations: %w", err)
	}
	return RegisterCandidateAccounts{
		Payer:         payer,
		Poll:          s.addrs.Poll(pollID),
		Candidate:     s.addrs.Candidate(pollID, r.Count+1),
		Registrations: s.addrs.Registrations(),
	}, nil
}

func (s *Service) VoteAccountsFor(payer pda.Address, pollID, candidateID uint64) VoteAccounts {
	return VoteAccounts{
		Payer:     payer,
		Poll:      s.addrs.Poll(pollID),
		Candidate: s.addrs.Candidate(pollID, candidateID),
		Voter:     s.addrs.Voter(pollID, payer),
	}
}
