package program

import "fmt"

// Error is a program failure reported to the caller. Errors are compared by identity with
// errors.Is, so callers match on the exported values below.
type Error struct {
	Code uint32
	Name string
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Msg)
}

func newError(code uint32, name, msg string) *Error {
	return &Error{Code: code, Name: name, Msg: msg}
}

var (
	ErrInvalidDates               = newError(6000, "InvalidDates", "Start date cannot be greater than end date")
	ErrCandidateAlreadyRegistered = newError(6001, "CandidateAlreadyRegistered", "Candidate cannot register twice")
	ErrCandidateNotRegistered     = newError(6002, "CandidateNotRegistered", "Candidate is not in the poll")
	ErrPollNotActive              = newError(6003, "PollNotActive", "Poll not currently active")
	ErrVoterAlreadyVoted          = newError(6004, "VoterAlreadyVoted", "Voter cannot vote twice")
	ErrPollNotFound               = newError(6005, "PollNotFound", "Poll does not exist or not found")
	ErrInvalidArgument            = newError(6006, "InvalidArgument", "Argument exceeds allowed size")
	ErrAccountAlreadyInitialized  = newError(6007, "AccountAlreadyInitialized", "Account already initialized")
	ErrArithmeticOverflow         = newError(6008, "ArithmeticOverflow", "Counter overflow")

	ErrAddressMismatch              = newError(2006, "AddressMismatch", "A seeds constraint was violated")
	ErrAccountDiscriminatorMismatch = newError(3002, "AccountDiscriminatorMismatch", "Account discriminator did not match")
	ErrAccountOwnedByWrongProgram   = newError(3007, "AccountOwnedByWrongProgram", "Account owned by a different program")
	ErrMissingSigner                = newError(3010, "MissingSigner", "A signer was not provided")
)
