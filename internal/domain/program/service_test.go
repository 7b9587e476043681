package program

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"votee/internal/domain/account"
	"votee/internal/platform/pda"
	"votee/internal/repository/memory"
)

const day = int64(86400)

var (
	testProgram = pda.FromName("votee-program-test")
	alice       = pda.FromName("alice")
	bob         = pda.FromName("bob")
)

type fixture struct {
	svc   *Service
	repo  account.Repository
	clock clockwork.FakeClock
	now   int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	start := time.Unix(1_700_000_000, 0)
	clock := clockwork.NewFakeClockAt(start)
	repo := memory.NewAccountRepo()
	return &fixture{
		svc:   NewService(testProgram, repo, clock),
		repo:  repo,
		clock: clock,
		now:   start.Unix(),
	}
}

func (f *fixture) initialize(t *testing.T) {
	t.Helper()
	if _, _, err := f.svc.Initialize(context.Background(), f.svc.InitializeAccountsFor(alice)); err != nil {
		t.Fatalf("initialize: %v", err)
	}
}

func (f *fixture) createPoll(t *testing.T, desc string, start, end int64) *account.Poll {
	t.Helper()
	ctx := context.Background()
	accts, err := f.svc.CreatePollAccountsFor(ctx, alice)
	if err != nil {
		t.Fatalf("derive poll accounts: %v", err)
	}
	p, err := f.svc.CreatePoll(ctx, accts, desc, start, end)
	if err != nil {
		t.Fatalf("create poll: %v", err)
	}
	return p
}

func (f *fixture) register(t *testing.T, pollID uint64, name string) *account.Candidate {
	t.Helper()
	ctx := context.Background()
	accts, err := f.svc.RegisterCandidateAccountsFor(ctx, alice, pollID)
	if err != nil {
		t.Fatalf("derive candidate accounts: %v", err)
	}
	c, err := f.svc.RegisterCandidate(ctx, accts, pollID, name)
	if err != nil {
		t.Fatalf("register candidate: %v", err)
	}
	return c
}

func (f *fixture) vote(who pda.Address, pollID, cid uint64) error {
	_, _, err := f.svc.Vote(context.Background(), f.svc.VoteAccountsFor(who, pollID, cid), pollID, cid)
	return err
}

func TestEndToEndScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.initialize(t)
	counter, err := f.svc.Counter(ctx)
	if err != nil || counter.Count != 0 {
		t.Fatalf("expected counter 0, got %+v err=%v", counter, err)
	}
	regs, err := f.svc.Registrations(ctx)
	if err != nil || regs.Count != 0 {
		t.Fatalf("expected registerations 0, got %+v err=%v", regs, err)
	}

	poll := f.createPoll(t, "P1", f.now, f.now+day)
	if poll.ID != 1 || poll.Candidates != 0 {
		t.Fatalf("unexpected poll %+v", poll)
	}

	cand := f.register(t, 1, "C1")
	if cand.PollID != 1 || cand.CID != 1 || cand.Votes != 0 || !cand.HasRegistered {
		t.Fatalf("unexpected candidate %+v", cand)
	}
	stored, err := f.svc.Poll(ctx, 1)
	if err != nil || stored.Candidates != 1 {
		t.Fatalf("expected poll candidates 1, got %+v err=%v", stored, err)
	}

	if err := f.vote(alice, 1, 1); err != nil {
		t.Fatalf("vote: %v", err)
	}
	cand, _ = f.svc.Candidate(ctx, 1, 1)
	if cand.Votes != 1 {
		t.Fatalf("expected 1 vote, got %d", cand.Votes)
	}
	voter, err := f.svc.Voter(ctx, 1, alice)
	if err != nil {
		t.Fatalf("voter: %v", err)
	}
	if voter.PollID != 1 || voter.CID != 1 || !voter.HasVoted {
		t.Fatalf("unexpected voter %+v", voter)
	}

	err = f.vote(alice, 1, 1)
	if !errors.Is(err, ErrVoterAlreadyVoted) {
		t.Fatalf("expected VoterAlreadyVoted, got %v", err)
	}
	if !errors.Is(err, account.ErrAddressOccupied) {
		t.Fatalf("expected duplicate vote to surface as occupied address, got %v", err)
	}
	cand, _ = f.svc.Candidate(ctx, 1, 1)
	if cand.Votes != 1 {
		t.Fatalf("duplicate vote changed tally to %d", cand.Votes)
	}
}

func TestInitializeTwiceFails(t *testing.T) {
	f := newFixture(t)
	f.initialize(t)

	_, _, err := f.svc.Initialize(context.Background(), f.svc.InitializeAccountsFor(bob))
	if !errors.Is(err, ErrAccountAlreadyInitialized) || !errors.Is(err, account.ErrAddressOccupied) {
		t.Fatalf("expected AccountAlreadyInitialized, got %v", err)
	}
}

func TestInitializeChecksAccounts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	accts := f.svc.InitializeAccountsFor(alice)
	accts.Counter = pda.FromName("somewhere-else")
	if _, _, err := f.svc.Initialize(ctx, accts); !errors.Is(err, ErrAddressMismatch) {
		t.Fatalf("expected AddressMismatch, got %v", err)
	}

	if _, _, err := f.svc.Initialize(ctx, f.svc.InitializeAccountsFor(pda.Zero)); !errors.Is(err, ErrMissingSigner) {
		t.Fatalf("expected MissingSigner, got %v", err)
	}
}

func TestPollIDsAreDense(t *testing.T) {
	f := newFixture(t)
	f.initialize(t)

	for want := uint64(1); want <= 5; want++ {
		p := f.createPoll(t, "poll", f.now, f.now+day)
		if p.ID != want {
			t.Fatalf("expected poll id %d, got %d", want, p.ID)
		}
	}

	polls, err := f.svc.Polls(context.Background())
	if err != nil {
		t.Fatalf("list polls: %v", err)
	}
	if len(polls) != 5 {
		t.Fatalf("expected 5 polls, got %d", len(polls))
	}
	for i, p := range polls {
		if p.ID != uint64(i+1) {
			t.Fatalf("polls out of order: %+v", polls)
		}
	}
}

func TestCreatePollRejectsInvalidDates(t *testing.T) {
	f := newFixture(t)
	f.initialize(t)
	ctx := context.Background()

	accts, _ := f.svc.CreatePollAccountsFor(ctx, alice)
	for _, tc := range []struct{ start, end int64 }{
		{f.now + day, f.now},
		{f.now, f.now},
	} {
		if _, err := f.svc.CreatePoll(ctx, accts, "bad", tc.start, tc.end); !errors.Is(err, ErrInvalidDates) {
			t.Fatalf("start=%d end=%d: expected InvalidDates, got %v", tc.start, tc.end, err)
		}
	}

	counter, _ := f.svc.Counter(ctx)
	if counter.Count != 0 {
		t.Fatalf("counter moved to %d after rejected polls", counter.Count)
	}
}

func TestCreatePollBeforeInitialize(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	accts := CreatePollAccounts{Payer: alice, Poll: f.svc.Addresses().Poll(1), Counter: f.svc.Addresses().Counter()}
	if _, err := f.svc.CreatePoll(ctx, accts, "early", f.now, f.now+day); !errors.Is(err, account.ErrAccountNotInitialized) {
		t.Fatalf("expected AccountNotInitialized, got %v", err)
	}
}

func TestCreatePollWithStaleAddress(t *testing.T) {
	f := newFixture(t)
	f.initialize(t)
	ctx := context.Background()

	stale, _ := f.svc.CreatePollAccountsFor(ctx, alice)
	f.createPoll(t, "first", f.now, f.now+day)

	_, err := f.svc.CreatePoll(ctx, stale, "second", f.now, f.now+day)
	if !errors.Is(err, account.ErrAddressOccupied) {
		t.Fatalf("expected occupied address for reused poll account, got %v", err)
	}

	skipped := stale
	skipped.Poll = f.svc.Addresses().Poll(9)
	if _, err := f.svc.CreatePoll(ctx, skipped, "skip", f.now, f.now+day); !errors.Is(err, ErrAddressMismatch) {
		t.Fatalf("expected AddressMismatch for non-sequential id, got %v", err)
	}

	counter, _ := f.svc.Counter(ctx)
	if counter.Count != 1 {
		t.Fatalf("expected counter 1, got %d", counter.Count)
	}
}

func TestCreatePollValidatesDescription(t *testing.T) {
	f := newFixture(t)
	f.initialize(t)
	ctx := context.Background()

	accts, _ := f.svc.CreatePollAccountsFor(ctx, alice)
	long := make([]byte, MaxDescriptionLen+1)
	for i := range long {
		long[i] = 'x'
	}
	if _, err := f.svc.CreatePoll(ctx, accts, string(long), f.now, f.now+day); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected InvalidArgument for long description, got %v", err)
	}
	p, err := f.svc.CreatePoll(ctx, accts, "", f.now, f.now+day)
	if err != nil {
		t.Fatalf("empty description should be accepted, got %v", err)
	}
	if p.ID != 1 || p.Description != "" {
		t.Fatalf("unexpected poll: %+v", p)
	}
}

func TestCreatePollInvertedDatesWinOverTextChecks(t *testing.T) {
	f := newFixture(t)
	f.initialize(t)
	ctx := context.Background()

	accts, _ := f.svc.CreatePollAccountsFor(ctx, alice)
	long := strings.Repeat("x", MaxDescriptionLen+1)
	for _, desc := range []string{"", long} {
		if _, err := f.svc.CreatePoll(ctx, accts, desc, f.now+day, f.now); !errors.Is(err, ErrInvalidDates) {
			t.Fatalf("expected InvalidDates for description of %d bytes, got %v", len(desc), err)
		}
		if _, err := f.svc.CreatePoll(ctx, accts, desc, f.now, f.now); !errors.Is(err, ErrInvalidDates) {
			t.Fatalf("expected InvalidDates for start == end, got %v", err)
		}
	}

	counter, _ := f.svc.Counter(ctx)
	if counter.Count != 0 {
		t.Fatalf("expected counter unchanged, got %d", counter.Count)
	}
}

func TestRegisterCandidateAcceptsEmptyName(t *testing.T) {
	f := newFixture(t)
	f.initialize(t)
	f.createPoll(t, "P", f.now, f.now+day)
	ctx := context.Background()

	accts, _ := f.svc.RegisterCandidateAccountsFor(ctx, alice, 1)
	c, err := f.svc.RegisterCandidate(ctx, accts, 1, "")
	if err != nil {
		t.Fatalf("empty name should be accepted, got %v", err)
	}
	if c.CID != 1 || !c.HasRegistered {
		t.Fatalf("unexpected candidate: %+v", c)
	}

	accts, _ = f.svc.RegisterCandidateAccountsFor(ctx, alice, 1)
	if _, err := f.svc.RegisterCandidate(ctx, accts, 1, strings.Repeat("n", MaxNameLen+1)); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected InvalidArgument for long name, got %v", err)
	}
}

func TestRegisterCandidateTwiceAtSameAddress(t *testing.T) {
	f := newFixture(t)
	f.initialize(t)
	f.createPoll(t, "P", f.now, f.now+day)
	ctx := context.Background()

	accts, _ := f.svc.RegisterCandidateAccountsFor(ctx, alice, 1)
	if _, err := f.svc.RegisterCandidate(ctx, accts, 1, "Duplicate Candidate"); err != nil {
		t.Fatalf("first registration: %v", err)
	}

	_, err := f.svc.RegisterCandidate(ctx, accts, 1, "Duplicate Name")
	if !errors.Is(err, ErrCandidateAlreadyRegistered) || !errors.Is(err, account.ErrAddressOccupied) {
		t.Fatalf("expected CandidateAlreadyRegistered, got %v", err)
	}

	poll, _ := f.svc.Poll(ctx, 1)
	if poll.Candidates != 1 {
		t.Fatalf("expected candidates 1, got %d", poll.Candidates)
	}
	regs, _ := f.svc.Registrations(ctx)
	if regs.Count != 1 {
		t.Fatalf("expected registerations 1, got %d", regs.Count)
	}
}

func TestRegisterCandidateUnknownPoll(t *testing.T) {
	f := newFixture(t)
	f.initialize(t)
	ctx := context.Background()

	accts, _ := f.svc.RegisterCandidateAccountsFor(ctx, alice, 42)
	_, err := f.svc.RegisterCandidate(ctx, accts, 42, "ghost")
	if !errors.Is(err, ErrPollNotFound) || !errors.Is(err, account.ErrAccountNotInitialized) {
		t.Fatalf("expected PollNotFound, got %v", err)
	}
}

func TestCandidateIDsAreGlobal(t *testing.T) {
	f := newFixture(t)
	f.initialize(t)
	f.createPoll(t, "A", f.now, f.now+day)
	f.createPoll(t, "B", f.now, f.now+day)

	a1 := f.register(t, 1, "a1")
	b1 := f.register(t, 2, "b1")
	a2 := f.register(t, 1, "a2")
	if a1.CID != 1 || b1.CID != 2 || a2.CID != 3 {
		t.Fatalf("expected global ids 1,2,3 got %d,%d,%d", a1.CID, b1.CID, a2.CID)
	}

	list, err := f.svc.Candidates(context.Background(), 1)
	if err != nil {
		t.Fatalf("list candidates: %v", err)
	}
	if len(list) != 2 || list[0].CID != 1 || list[1].CID != 3 {
		t.Fatalf("unexpected candidates for poll 1: %+v", list)
	}
}

func TestVoteOutsideWindow(t *testing.T) {
	f := newFixture(t)
	f.initialize(t)
	f.createPoll(t, "future", f.now+3600, f.now+day)
	f.createPoll(t, "ended", f.now-day, f.now)
	f.register(t, 1, "early")
	f.register(t, 2, "late")

	if err := f.vote(bob, 1, 1); !errors.Is(err, ErrPollNotActive) {
		t.Fatalf("expected PollNotActive before start, got %v", err)
	}
	if err := f.vote(bob, 2, 2); !errors.Is(err, ErrPollNotActive) {
		t.Fatalf("expected PollNotActive at end, got %v", err)
	}

	f.clock.Advance(time.Hour)
	if err := f.vote(bob, 1, 1); err != nil {
		t.Fatalf("expected vote to pass once the poll opened: %v", err)
	}

	c, _ := f.svc.Candidate(context.Background(), 2, 2)
	if c.Votes != 0 {
		t.Fatalf("closed poll candidate got %d votes", c.Votes)
	}
}

func TestVoteUnregisteredCandidate(t *testing.T) {
	f := newFixture(t)
	f.initialize(t)
	f.createPoll(t, "Active Poll", f.now-3600, f.now+day)

	err := f.vote(bob, 1, 999)
	if !errors.Is(err, ErrCandidateNotRegistered) {
		t.Fatalf("expected CandidateNotRegistered, got %v", err)
	}
	if _, err := f.svc.Voter(context.Background(), 1, bob); !errors.Is(err, account.ErrAccountNotInitialized) {
		t.Fatalf("rejected vote left a voter record: %v", err)
	}
}

func TestVoteForCandidateOfAnotherPoll(t *testing.T) {
	f := newFixture(t)
	f.initialize(t)
	f.createPoll(t, "A", f.now, f.now+day)
	f.createPoll(t, "B", f.now, f.now+day)
	f.register(t, 2, "b1")

	if err := f.vote(bob, 1, 1); !errors.Is(err, ErrCandidateNotRegistered) {
		t.Fatalf("expected CandidateNotRegistered, got %v", err)
	}
}

func TestVotesAreCountedPerIdentity(t *testing.T) {
	f := newFixture(t)
	f.initialize(t)
	f.createPoll(t, "A", f.now, f.now+day)
	f.createPoll(t, "B", f.now, f.now+day)
	f.register(t, 1, "a1")
	f.register(t, 2, "b1")

	for _, who := range []pda.Address{alice, bob} {
		if err := f.vote(who, 1, 1); err != nil {
			t.Fatalf("vote %s: %v", who, err)
		}
	}
	if err := f.vote(alice, 2, 2); err != nil {
		t.Fatalf("alice may vote in another poll: %v", err)
	}

	c, _ := f.svc.Candidate(context.Background(), 1, 1)
	if c.Votes != 2 {
		t.Fatalf("expected 2 votes, got %d", c.Votes)
	}
}

func TestVoteChecksDerivedAccounts(t *testing.T) {
	f := newFixture(t)
	f.initialize(t)
	f.createPoll(t, "A", f.now, f.now+day)
	f.register(t, 1, "a1")

	accts := f.svc.VoteAccountsFor(alice, 1, 1)
	accts.Voter = f.svc.Addresses().Voter(1, bob)
	if _, _, err := f.svc.Vote(context.Background(), accts, 1, 1); !errors.Is(err, ErrAddressMismatch) {
		t.Fatalf("expected AddressMismatch for someone else's voter account, got %v", err)
	}
}

type failingUpdateRepo struct {
	account.Repository
	failOn pda.Address
}

type failingUpdateTx struct {
	account.Tx
	failOn pda.Address
}

var errInjected = errors.New("injected failure")

func (r *failingUpdateRepo) Atomic(ctx context.Context, fn func(ctx context.Context, tx account.Tx) error) error {
	return r.Repository.Atomic(ctx, func(ctx context.Context, tx account.Tx) error {
		return fn(ctx, &failingUpdateTx{Tx: tx, failOn: r.failOn})
	})
}

func (tx *failingUpdateTx) Update(ctx context.Context, acc *account.Account) error {
	if acc.Address == tx.failOn {
		return errInjected
	}
	return tx.Tx.Update(ctx, acc)
}

func TestFailedInstructionWritesNothing(t *testing.T) {
	f := newFixture(t)
	f.initialize(t)
	f.createPoll(t, "A", f.now, f.now+day)
	f.register(t, 1, "a1")

	broken := NewService(testProgram, &failingUpdateRepo{
		Repository: f.repo,
		failOn:     f.svc.Addresses().Candidate(1, 1),
	}, f.clock)

	_, _, err := broken.Vote(context.Background(), broken.VoteAccountsFor(alice, 1, 1), 1, 1)
	if !errors.Is(err, errInjected) {
		t.Fatalf("expected injected failure, got %v", err)
	}
	if _, err := f.svc.Voter(context.Background(), 1, alice); !errors.Is(err, account.ErrAccountNotInitialized) {
		t.Fatalf("voter record survived a failed vote: %v", err)
	}
	if err := f.vote(alice, 1, 1); err != nil {
		t.Fatalf("vote after rollback: %v", err)
	}
}

func TestForeignAccountsAreRejected(t *testing.T) {
	f := newFixture(t)
	f.initialize(t)
	ctx := context.Background()

	other := NewService(pda.FromName("other-program"), f.repo, f.clock)
	addr := f.svc.Addresses().Counter()
	var c account.Counter
	acc, err := f.repo.Get(ctx, addr)
	if err != nil {
		t.Fatalf("get counter: %v", err)
	}
	if err := other.decode(acc, &c); !errors.Is(err, ErrAccountOwnedByWrongProgram) {
		t.Fatalf("expected AccountOwnedByWrongProgram, got %v", err)
	}
	var p account.Poll
	if err := f.svc.decode(acc, &p); !errors.Is(err, ErrAccountDiscriminatorMismatch) {
		t.Fatalf("expected AccountDiscriminatorMismatch, got %v", err)
	}
}
