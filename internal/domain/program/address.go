package program

import (
	"votee/internal/platform/pda"
)

const (
	SeedCounter       = "counter"
	SeedRegistrations = "registerations"
	SeedVoter         = "voter"
)

// Addresses derives the program's account addresses.
type Addresses struct {
	ProgramID pda.Address
}

func (a Addresses) find(seeds ...[]byte) pda.Address {
	addr, _, err := pda.FindProgramAddress(seeds, a.ProgramID)
	if err != nil {
		// every seed list below is short and fixed-width
		panic(err)
	}
	return addr
}

func (a Addresses) Counter() pda.Address {
	return a.find([]byte(SeedCounter))
}

func (a Addresses) Registrations() pda.Address {
	return a.find([]byte(SeedRegistrations))
}

func (a Addresses) Poll(pollID uint64) pda.Address {
	return a.find(pda.U64(pollID))
}

func (a Addresses) Candidate(pollID, candidateID uint64) pda.Address {
	return a.find(pda.U64(pollID), pda.U64(candidateID))
}

func (a Addresses) Voter(pollID uint64, identity pda.Address) pda.Address {
	return a.find([]byte(SeedVoter), pda.U64(pollID), identity[:])
}
