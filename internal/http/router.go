package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"votee/internal/domain/program"
	"votee/internal/domain/user"
	"votee/internal/platform/apperr"
	jwtpkg "votee/internal/platform/jwt"
	"votee/internal/platform/pda"
	"votee/internal/worker"
)

// Options tune the parts of the API that differ between deployments.
type Options struct {
	VoteRate  rate.Limit
	VoteBurst int
	TokenTTL  time.Duration
}

func (o Options) withDefaults() Options {
	if o.VoteRate == 0 {
		o.VoteRate = rate.Every(time.Minute / 10)
	}
	if o.VoteBurst == 0 {
		o.VoteBurst = 3
	}
	if o.TokenTTL == 0 {
		o.TokenTTL = 24 * time.Hour
	}
	return o
}

type Handler struct {
	userSvc  *user.Service
	prog     *program.Service
	jwtMgr   *jwtpkg.Manager
	events   chan<- worker.InstructionEvent
	tokenTTL time.Duration
}

func NewRouter(
	userSvc *user.Service,
	prog *program.Service,
	jwtMgr *jwtpkg.Manager,
	events chan<- worker.InstructionEvent,
	opts Options,
) http.Handler {
	opts = opts.withDefaults()
	h := &Handler{
		userSvc:  userSvc,
		prog:     prog,
		jwtMgr:   jwtMgr,
		events:   events,
		tokenTTL: opts.TokenTTL,
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(RequestLogger)
	r.Use(CORSMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/ready", h.handleReady)
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", h.handleRegister)
		r.Post("/auth/login", h.handleLogin)

		r.Get("/program", h.handleProgram)
		r.Get("/counter", h.handleCounter)
		r.Get("/registrations", h.handleRegistrations)
		r.Get("/polls", h.handleListPolls)
		r.Get("/polls/{id}", h.handleGetPoll)
		r.Get("/polls/{id}/candidates", h.handleListCandidates)
		r.Get("/polls/{id}/candidates/{cid}", h.handleGetCandidate)
		r.Get("/polls/{id}/voters/{identity}", h.handleGetVoter)
		r.Get("/accounts/{address}", h.handleGetAccount)

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(jwtMgr))

			r.Get("/auth/me", h.handleMe)
			r.Post("/initialize", h.handleInitialize)
			r.Post("/polls", h.handleCreatePoll)
			r.Post("/polls/{id}/candidates", h.handleRegisterCandidate)
			r.With(RateLimitVotes(opts.VoteRate, opts.VoteBurst)).Post("/polls/{id}/vote", h.handleVote)
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return apperr.BadRequest("invalid_input", "invalid body", err)
	}
	return nil
}

func parseIDParam(r *http.Request, name string) (uint64, error) {
	idStr := chi.URLParam(r, name)
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		return 0, apperr.BadRequest("invalid_input", "invalid "+name, err)
	}
	return id, nil
}

func parseAddressParam(r *http.Request, name string) (pda.Address, error) {
	addr, err := pda.Parse(chi.URLParam(r, name))
	if err != nil {
		return pda.Zero, apperr.BadRequest("invalid_address", "invalid "+name, err)
	}
	return addr, nil
}

// @Summary     Readiness probe
// @Tags        health
// @Produce     json
// @Success     200  {object}  map[string]string
// @Failure     503  {object}  apperr.AppError
// @Router      /ready [get]
func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.prog.Ping(ctx); err != nil {
		errorResponse(w, apperr.Unavailable("store_unavailable", "account store not ready", err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
