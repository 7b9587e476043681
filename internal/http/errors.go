package api

import (
	"errors"
	"net/http"

	"votee/internal/domain/account"
	"votee/internal/domain/program"
	"votee/internal/domain/user"
	"votee/internal/platform/apperr"
	"votee/internal/platform/pda"
)

type programErrorMapping struct {
	err    *program.Error
	status int
	code   string
}

var programErrors = []programErrorMapping{
	{program.ErrInvalidDates, http.StatusBadRequest, "invalid_dates"},
	{program.ErrInvalidArgument, http.StatusBadRequest, "invalid_argument"},
	{program.ErrPollNotActive, http.StatusBadRequest, "poll_not_active"},
	{program.ErrCandidateNotRegistered, http.StatusBadRequest, "candidate_not_registered"},
	{program.ErrAddressMismatch, http.StatusBadRequest, "address_mismatch"},
	{program.ErrAccountDiscriminatorMismatch, http.StatusBadRequest, "account_discriminator_mismatch"},
	{program.ErrAccountOwnedByWrongProgram, http.StatusBadRequest, "account_owned_by_wrong_program"},
	{program.ErrMissingSigner, http.StatusUnauthorized, "missing_signer"},
	{program.ErrPollNotFound, http.StatusNotFound, "poll_not_found"},
	{program.ErrCandidateAlreadyRegistered, http.StatusConflict, "candidate_already_registered"},
	{program.ErrVoterAlreadyVoted, http.StatusConflict, "already_voted"},
	{program.ErrAccountAlreadyInitialized, http.StatusConflict, "already_initialized"},
	{program.ErrArithmeticOverflow, http.StatusConflict, "arithmetic_overflow"},
}

func errorResponse(w http.ResponseWriter, err error) {
	appErr := mapError(err)
	if appErr.StatusCode() >= http.StatusInternalServerError {
		slogLogger.Error("request failed", "error", err)
	}
	writeJSON(w, appErr.StatusCode(), appErr)
}

func mapError(err error) *apperr.AppError {
	if err == nil {
		return apperr.Internal("internal_error", "internal server error", nil)
	}

	var appErr *apperr.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	for _, m := range programErrors {
		if errors.Is(err, m.err) {
			return apperr.New(m.status, m.code, m.err.Msg, err).WithProgramCode(m.err.Code)
		}
	}

	switch {
	case errors.Is(err, account.ErrAccountNotInitialized):
		return apperr.NotFound("account_not_found", "account not initialized", err)
	case errors.Is(err, account.ErrAddressOccupied):
		return apperr.Conflict("address_occupied", "account address already in use", err)
	case errors.Is(err, pda.ErrInvalidAddress):
		return apperr.BadRequest("invalid_address", "invalid account address", err)
	case errors.Is(err, user.ErrInvalidCredentials):
		return apperr.Unauthorized("invalid_credentials", "invalid credentials", err)
	case errors.Is(err, user.ErrEmailTaken):
		return apperr.BadRequest("email_taken", "email already taken", err)
	case errors.Is(err, user.ErrMissingFields):
		return apperr.BadRequest("invalid_input", "email and password are required", err)
	case errors.Is(err, user.ErrNotFound):
		return apperr.NotFound("user_not_found", "user not found", err)
	default:
		return apperr.Internal("internal_error", http.StatusText(http.StatusInternalServerError), err)
	}
}

// programErrorName is the label used for metrics and instruction events.
func programErrorName(err error) string {
	if err == nil {
		return ""
	}
	var pe *program.Error
	if errors.As(err, &pe) {
		return pe.Name
	}
	if errors.Is(err, account.ErrAccountNotInitialized) {
		return "AccountNotInitialized"
	}
	return "HostError"
}
