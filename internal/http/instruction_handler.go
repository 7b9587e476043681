package api

import (
	"net/http"

	"github.com/google/uuid"

	"votee/internal/domain/account"
	"votee/internal/platform/pda"
	"votee/internal/worker"
)

type createPollRequest struct {
	Description string `json:"description"`
	Start       int64  `json:"start"`
	End         int64  `json:"end"`
	// Poll overrides the derived poll address.
	Poll *pda.Address `json:"poll,omitempty" swaggertype:"string"`
}

type registerCandidateRequest struct {
	Name string `json:"name"`
	// Candidate overrides the derived candidate address.
	Candidate *pda.Address `json:"candidate,omitempty" swaggertype:"string"`
}

type voteRequest struct {
	CandidateID uint64 `json:"candidate_id"`
}

type initializeResponse struct {
	TxID          string                 `json:"tx_id"`
	Counter       *account.Counter       `json:"counter"`
	Registrations *account.Registrations `json:"registerations"`
}

type createPollResponse struct {
	TxID string   `json:"tx_id"`
	Poll pollView `json:"poll"`
}

type registerCandidateResponse struct {
	TxID      string        `json:"tx_id"`
	Candidate candidateView `json:"candidate"`
}

type voteResponse struct {
	TxID      string         `json:"tx_id"`
	Voter     *account.Voter `json:"voter"`
	Candidate candidateView  `json:"candidate"`
}

// @Summary     Initialize the program
// @Description Creates the poll counter and the candidate registration counter.
// @Tags        instructions
// @Security    BearerAuth
// @Produce     json
// @Success     201  {object}  initializeResponse
// @Failure     401  {object}  apperr.AppError  "unauthorized"
// @Failure     409  {object}  apperr.AppError  "already initialized"
// @Router      /initialize [post]
func (h *Handler) handleInitialize(w http.ResponseWriter, r *http.Request) {
	payer := identityFromCtx(r)
	counter, regs, err := h.prog.Initialize(r.Context(), h.prog.InitializeAccountsFor(payer))
	txID := h.publish(worker.InstructionEvent{Instruction: "initialize", Payer: payer.String()}, err)
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, initializeResponse{TxID: txID, Counter: counter, Registrations: regs})
}

// @Summary     Create a poll
// @Description Start and end are unix seconds. The poll address is derived from the counter unless given.
// @Tags        instructions
// @Security    BearerAuth
// @Accept      json
// @Produce     json
// @Param       request  body      createPollRequest  true  "Poll payload"
// @Success     201      {object}  createPollResponse
// @Failure     400      {object}  apperr.AppError  "invalid dates or arguments"
// @Failure     401      {object}  apperr.AppError  "unauthorized"
// @Failure     404      {object}  apperr.AppError  "program not initialized"
// @Router      /polls [post]
func (h *Handler) handleCreatePoll(w http.ResponseWriter, r *http.Request) {
	var req createPollRequest
	if err := decodeJSON(r, &req); err != nil {
		errorResponse(w, err)
		return
	}

	payer := identityFromCtx(r)
	accts, err := h.prog.CreatePollAccountsFor(r.Context(), payer)
	if err != nil {
		errorResponse(w, err)
		return
	}
	if req.Poll != nil {
		accts.Poll = *req.Poll
	}

	p, err := h.prog.CreatePoll(r.Context(), accts, req.Description, req.Start, req.End)
	ev := worker.InstructionEvent{Instruction: "create_poll", Payer: payer.String()}
	if p != nil {
		ev.PollID = p.ID
	}
	txID := h.publish(ev, err)
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createPollResponse{TxID: txID, Poll: h.newPollView(p)})
}

// @Summary     Register a candidate
// @Tags        instructions
// @Security    BearerAuth
// @Accept      json
// @Produce     json
// @Param       id       path      int                       true  "Poll ID"
// @Param       request  body      registerCandidateRequest  true  "Candidate payload"
// @Success     201      {object}  registerCandidateResponse
// @Failure     400      {object}  apperr.AppError  "invalid arguments"
// @Failure     404      {object}  apperr.AppError  "poll not found"
// @Failure     409      {object}  apperr.AppError  "candidate already registered"
// @Router      /polls/{id}/candidates [post]
func (h *Handler) handleRegisterCandidate(w http.ResponseWriter, r *http.Request) {
	pollID, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, err)
		return
	}

	var req registerCandidateRequest
	if err := decodeJSON(r, &req); err != nil {
		errorResponse(w, err)
		return
	}

	payer := identityFromCtx(r)
	accts, err := h.prog.RegisterCandidateAccountsFor(r.Context(), payer, pollID)
	if err != nil {
		errorResponse(w, err)
		return
	}
	if req.Candidate != nil {
		accts.Candidate = *req.Candidate
	}

	c, err := h.prog.RegisterCandidate(r.Context(), accts, pollID, req.Name)
	ev := worker.InstructionEvent{Instruction: "register_candidate", Payer: payer.String(), PollID: pollID}
	if c != nil {
		ev.CandidateID = c.CID
	}
	txID := h.publish(ev, err)
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, registerCandidateResponse{TxID: txID, Candidate: h.newCandidateView(c)})
}

// @Summary     Vote for a candidate
// @Tags        instructions
// @Security    BearerAuth
// @Accept      json
// @Produce     json
// @Param       id       path      int          true  "Poll ID"
// @Param       request  body      voteRequest  true  "Vote payload"
// @Success     201      {object}  voteResponse
// @Failure     400      {object}  apperr.AppError  "poll not active or candidate not registered"
// @Failure     401      {object}  apperr.AppError  "unauthorized"
// @Failure     404      {object}  apperr.AppError  "poll not found"
// @Failure     409      {object}  apperr.AppError  "already voted"
// @Failure     429      {object}  apperr.AppError  "rate limited"
// @Router      /polls/{id}/vote [post]
func (h *Handler) handleVote(w http.ResponseWriter, r *http.Request) {
	pollID, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, err)
		return
	}

	var req voteRequest
	if err := decodeJSON(r, &req); err != nil {
		errorResponse(w, err)
		return
	}

	payer := identityFromCtx(r)
	voter, c, err := h.prog.Vote(r.Context(), h.prog.VoteAccountsFor(payer, pollID, req.CandidateID), pollID, req.CandidateID)
	txID := h.publish(worker.InstructionEvent{
		Instruction: "vote",
		Payer:       payer.String(),
		PollID:      pollID,
		CandidateID: req.CandidateID,
	}, err)
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, voteResponse{TxID: txID, Voter: voter, Candidate: h.newCandidateView(c)})
}

// publish stamps ev with a transaction id and the outcome, then hands it to the worker.
func (h *Handler) publish(ev worker.InstructionEvent, err error) string {
	ev.TxID = uuid.NewString()
	ev.Err = programErrorName(err)
	worker.Publish(h.events, ev)
	return ev.TxID
}
