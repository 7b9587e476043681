package api

import (
	"net/http"

	"votee/internal/domain/account"
	"votee/internal/platform/pda"
)

type pollView struct {
	account.Poll
	Address pda.Address `json:"address" swaggertype:"string"`
	Active  bool        `json:"active"`
}

type candidateView struct {
	account.Candidate
	Address pda.Address `json:"address" swaggertype:"string"`
}

type programResponse struct {
	ProgramID     pda.Address `json:"program_id" swaggertype:"string"`
	Counter       pda.Address `json:"counter" swaggertype:"string"`
	Registrations pda.Address `json:"registerations" swaggertype:"string"`
}

func (h *Handler) newPollView(p *account.Poll) pollView {
	return pollView{
		Poll:    *p,
		Address: h.prog.Addresses().Poll(p.ID),
		Active:  p.ActiveAt(h.prog.Now()),
	}
}

func (h *Handler) newCandidateView(c *account.Candidate) candidateView {
	return candidateView{
		Candidate: *c,
		Address:   h.prog.Addresses().Candidate(c.PollID, c.CID),
	}
}

// @Summary     Program addresses
// @Tags        accounts
// @Produce     json
// @Success     200  {object}  programResponse
// @Router      /program [get]
func (h *Handler) handleProgram(w http.ResponseWriter, r *http.Request) {
	addrs := h.prog.Addresses()
	writeJSON(w, http.StatusOK, programResponse{
		ProgramID:     addrs.ProgramID,
		Counter:       addrs.Counter(),
		Registrations: addrs.Registrations(),
	})
}

// @Summary     Poll counter
// @Tags        accounts
// @Produce     json
// @Success     200  {object}  account.Counter
// @Failure     404  {object}  apperr.AppError  "program not initialized"
// @Router      /counter [get]
func (h *Handler) handleCounter(w http.ResponseWriter, r *http.Request) {
	c, err := h.prog.Counter(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// @Summary     Candidate registration counter
// @Tags        accounts
// @Produce     json
// @Success     200  {object}  account.Registrations
// @Failure     404  {object}  apperr.AppError  "program not initialized"
// @Router      /registrations [get]
func (h *Handler) handleRegistrations(w http.ResponseWriter, r *http.Request) {
	regs, err := h.prog.Registrations(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, regs)
}

// @Summary     List polls
// @Tags        polls
// @Produce     json
// @Success     200  {array}   pollView
// @Router      /polls [get]
func (h *Handler) handleListPolls(w http.ResponseWriter, r *http.Request) {
	polls, err := h.prog.Polls(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}
	res := make([]pollView, 0, len(polls))
	for i := range polls {
		res = append(res, h.newPollView(&polls[i]))
	}
	writeJSON(w, http.StatusOK, res)
}

// @Summary     Get poll
// @Tags        polls
// @Produce     json
// @Param       id   path      int  true  "Poll ID"
// @Success     200  {object}  pollView
// @Failure     404  {object}  apperr.AppError  "poll not found"
// @Router      /polls/{id} [get]
func (h *Handler) handleGetPoll(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, err)
		return
	}
	p, err := h.prog.Poll(r.Context(), id)
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.newPollView(p))
}

// @Summary     List poll candidates
// @Tags        polls
// @Produce     json
// @Param       id   path      int  true  "Poll ID"
// @Success     200  {array}   candidateView
// @Failure     404  {object}  apperr.AppError  "poll not found"
// @Router      /polls/{id}/candidates [get]
func (h *Handler) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, err)
		return
	}
	cands, err := h.prog.Candidates(r.Context(), id)
	if err != nil {
		errorResponse(w, err)
		return
	}
	res := make([]candidateView, 0, len(cands))
	for i := range cands {
		res = append(res, h.newCandidateView(&cands[i]))
	}
	writeJSON(w, http.StatusOK, res)
}

// @Summary     Get candidate
// @Tags        polls
// @Produce     json
// @Param       id   path      int  true  "Poll ID"
// @Param       cid  path      int  true  "Candidate ID"
// @Success     200  {object}  candidateView
// @Failure     404  {object}  apperr.AppError  "candidate not found"
// @Router      /polls/{id}/candidates/{cid} [get]
func (h *Handler) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	pollID, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, err)
		return
	}
	cid, err := parseIDParam(r, "cid")
	if err != nil {
		errorResponse(w, err)
		return
	}
	c, err := h.prog.Candidate(r.Context(), pollID, cid)
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.newCandidateView(c))
}

// @Summary     Get voter record
// @Tags        polls
// @Produce     json
// @Param       id        path      int     true  "Poll ID"
// @Param       identity  path      string  true  "Voter identity (base58)"
// @Success     200       {object}  account.Voter
// @Failure     404       {object}  apperr.AppError  "voter has not voted"
// @Router      /polls/{id}/voters/{identity} [get]
func (h *Handler) handleGetVoter(w http.ResponseWriter, r *http.Request) {
	pollID, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, err)
		return
	}
	identity, err := parseAddressParam(r, "identity")
	if err != nil {
		errorResponse(w, err)
		return
	}
	v, err := h.prog.Voter(r.Context(), pollID, identity)
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// @Summary     Raw account
// @Description Returns the stored envelope. Data is the encoded record, base64 in JSON.
// @Tags        accounts
// @Produce     json
// @Param       address  path      string  true  "Account address (base58)"
// @Success     200      {object}  account.Account
// @Failure     400      {object}  apperr.AppError  "invalid address"
// @Failure     404      {object}  apperr.AppError  "account not found"
// @Router      /accounts/{address} [get]
func (h *Handler) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	addr, err := parseAddressParam(r, "address")
	if err != nil {
		errorResponse(w, err)
		return
	}
	acc, err := h.prog.Account(r.Context(), addr)
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, acc)
}
