package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/frostgate/svscoord/internal/api/middleware"
	"github.com/frostgate/svscoord/internal/api/request"
	"github.com/frostgate/svscoord/internal/api/response"
	"github.com/frostgate/svscoord/internal/model"
	"github.com/frostgate/svscoord/internal/services/auth"
)

// AuthHandler handles account and session endpoints
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Signup handles POST /api/v1/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req request.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	session, err := h.authService.Signup(r.Context(), model.PlayerID(req.PlayerID), req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AuthResponseFromSession(session))
}

// Login handles POST /api/v1/auth/login.
// The identifier is either a numeric player ID or an account email.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Identifier == "" {
		WriteError(w, NewInvalidRequestError("identifier is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	var (
		session *auth.Session
		err     error
	)
	if strings.Contains(req.Identifier, "@") {
		session, err = h.authService.Login(r.Context(), model.Email(req.Identifier), req.Password)
	} else {
		session, err = h.authService.LoginWithPlayerID(r.Context(), model.PlayerID(req.Identifier), req.Password)
	}
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromSession(session))
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	if session != nil {
		h.authService.InvalidateSession(session.Token)
	}
	response.NoContent(w)
}

// GetMe handles GET /api/v1/auth/me
func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	response.JSON(w, http.StatusOK, response.UserFromModel(user))
}
