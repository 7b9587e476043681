package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-shellwords"

	"votee/internal/domain/account"
	"votee/internal/domain/program"
	"votee/internal/platform/pda"
)

const usage = `commands:
  init                                   create the poll and registration counters
  create-poll <description> <start> <end> start/end are unix seconds or RFC3339
  register <pollId> <name>               register a candidate
  vote <pollId> <candidateId>            vote as -identity
  polls                                  list polls
  poll <id>                              show one poll
  candidates <pollId>                    list a poll's candidates
  voter <pollId> <identity>              show a voter record
  address                                show the program's fixed addresses
`

type cli struct {
	prog  *program.Service
	payer pda.Address
	out   io.Writer
}

// runScript executes one command per line. Blank lines and lines starting with # are skipped.
func (c *cli) runScript(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		args, err := shellwords.Parse(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		if err := c.exec(ctx, args); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	return scanner.Err()
}

func (c *cli) exec(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return nil
	}
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "init":
		if err := want(cmd, rest, 0); err != nil {
			return err
		}
		counter, regs, err := c.prog.Initialize(ctx, c.prog.InitializeAccountsFor(c.payer))
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "initialized: polls=%d registerations=%d\n", counter.Count, regs.Count)

	case "create-poll":
		if err := want(cmd, rest, 3); err != nil {
			return err
		}
		start, err := parseTime(rest[1])
		if err != nil {
			return err
		}
		end, err := parseTime(rest[2])
		if err != nil {
			return err
		}
		accts, err := c.prog.CreatePollAccountsFor(ctx, c.payer)
		if err != nil {
			return err
		}
		p, err := c.prog.CreatePoll(ctx, accts, rest[0], start, end)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "poll %d created at %s\n", p.ID, accts.Poll)

	case "register":
		if err := want(cmd, rest, 2); err != nil {
			return err
		}
		pollID, err := parseID(rest[0])
		if err != nil {
			return err
		}
		accts, err := c.prog.RegisterCandidateAccountsFor(ctx, c.payer, pollID)
		if err != nil {
			return err
		}
		cand, err := c.prog.RegisterCandidate(ctx, accts, pollID, rest[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "candidate %d %q registered in poll %d\n", cand.CID, cand.Name, cand.PollID)

	case "vote":
		if err := want(cmd, rest, 2); err != nil {
			return err
		}
		pollID, err := parseID(rest[0])
		if err != nil {
			return err
		}
		cid, err := parseID(rest[1])
		if err != nil {
			return err
		}
		_, cand, err := c.prog.Vote(ctx, c.prog.VoteAccountsFor(c.payer, pollID, cid), pollID, cid)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "voted for %q: %s votes\n", cand.Name, humanize.Comma(int64(cand.Votes)))

	case "polls":
		if err := want(cmd, rest, 0); err != nil {
			return err
		}
		polls, err := c.prog.Polls(ctx)
		if err != nil {
			return err
		}
		for i := range polls {
			c.printPoll(&polls[i])
		}

	case "poll":
		if err := want(cmd, rest, 1); err != nil {
			return err
		}
		pollID, err := parseID(rest[0])
		if err != nil {
			return err
		}
		p, err := c.prog.Poll(ctx, pollID)
		if err != nil {
			return err
		}
		c.printPoll(p)

	case "candidates":
		if err := want(cmd, rest, 1); err != nil {
			return err
		}
		pollID, err := parseID(rest[0])
		if err != nil {
			return err
		}
		cands, err := c.prog.Candidates(ctx, pollID)
		if err != nil {
			return err
		}
		for _, cand := range cands {
			fmt.Fprintf(c.out, "  %d. %-32s %s votes\n", cand.CID, cand.Name, humanize.Comma(int64(cand.Votes)))
		}

	case "voter":
		if err := want(cmd, rest, 2); err != nil {
			return err
		}
		pollID, err := parseID(rest[0])
		if err != nil {
			return err
		}
		identity, err := pda.Parse(rest[1])
		if err != nil {
			return err
		}
		v, err := c.prog.Voter(ctx, pollID, identity)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "voter %s voted for candidate %d in poll %d\n", identity, v.CID, v.PollID)

	case "address":
		if err := want(cmd, rest, 0); err != nil {
			return err
		}
		addrs := c.prog.Addresses()
		fmt.Fprintf(c.out, "program        %s\ncounter        %s\nregisterations %s\n",
			addrs.ProgramID, addrs.Counter(), addrs.Registrations())

	default:
		return fmt.Errorf("unknown command %q\n%s", cmd, usage)
	}
	return nil
}

func (c *cli) printPoll(p *account.Poll) {
	state := "closed"
	switch now := c.prog.Now(); {
	case p.ActiveAt(now):
		state = "open, ends " + humanize.Time(time.Unix(p.End, 0))
	case now < p.Start:
		state = "opens " + humanize.Time(time.Unix(p.Start, 0))
	}
	fmt.Fprintf(c.out, "#%d %s (%s candidates, %s)\n", p.ID, p.Description, humanize.Comma(int64(p.Candidates)), state)
}

func want(cmd string, args []string, n int) error {
	if len(args) != n {
		return fmt.Errorf("%s takes %d argument(s), got %d", cmd, n, len(args))
	}
	return nil
}

func parseID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// parseTime accepts unix seconds or an RFC3339 timestamp.
func parseTime(s string) (int64, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: want unix seconds or RFC3339", s)
	}
	return t.Unix(), nil
}
