package api

import (
	"net/http"

	"votee/internal/domain/user"
)

type authRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User  *user.User `json:"user"`
	Token string     `json:"token"`
}

// @Summary     Register a user
// @Description Creates a user and assigns it a fresh voter identity.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request  body      authRequest  true  "Credentials"
// @Success     201      {object}  authResponse
// @Failure     400      {object}  apperr.AppError  "invalid body or email taken"
// @Failure     500      {object}  apperr.AppError  "server error"
// @Router      /auth/register [post]
func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := decodeJSON(r, &req); err != nil {
		errorResponse(w, err)
		return
	}

	u, err := h.userSvc.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		errorResponse(w, err)
		return
	}

	h.writeToken(w, http.StatusCreated, u)
}

// @Summary     Log in
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request  body      authRequest  true  "Credentials"
// @Success     200      {object}  authResponse
// @Failure     400      {object}  apperr.AppError  "invalid body"
// @Failure     401      {object}  apperr.AppError  "invalid credentials"
// @Router      /auth/login [post]
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := decodeJSON(r, &req); err != nil {
		errorResponse(w, err)
		return
	}

	u, err := h.userSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		errorResponse(w, err)
		return
	}

	h.writeToken(w, http.StatusOK, u)
}

// @Summary     Current user
// @Tags        auth
// @Security    BearerAuth
// @Produce     json
// @Success     200  {object}  user.User
// @Failure     401  {object}  apperr.AppError  "unauthorized"
// @Failure     404  {object}  apperr.AppError  "user not found"
// @Router      /auth/me [get]
func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	u, err := h.userSvc.GetByID(r.Context(), userIDFromCtx(r))
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *Handler) writeToken(w http.ResponseWriter, status int, u *user.User) {
	token, err := h.jwtMgr.Generate(u.ID, u.Identity, h.tokenTTL)
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, status, authResponse{User: u, Token: token})
}
