package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/frostgate/svscoord/internal/api/middleware"
	"github.com/frostgate/svscoord/internal/api/request"
	"github.com/frostgate/svscoord/internal/api/response"
	"github.com/frostgate/svscoord/internal/model"
	"github.com/frostgate/svscoord/internal/services/directory"
)

// UserHandler handles member directory endpoints
type UserHandler struct {
	directory *directory.Controller
}

// NewUserHandler creates a new user handler
func NewUserHandler(dir *directory.Controller) *UserHandler {
	return &UserHandler{
		directory: dir,
	}
}

// List handles GET /api/v1/admin/users?status=pending
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		WriteError(w, NewInvalidRequestError("status query parameter is required"))
		return
	}

	users, err := h.directory.UsersByStatus(r.Context(), status)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.UsersFromModel(users))
}

// Placeholders handles GET /api/v1/admin/users/placeholders
func (h *UserHandler) Placeholders(w http.ResponseWriter, r *http.Request) {
	users, err := h.directory.Placeholders(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.UsersFromModel(users))
}

// Get handles GET /api/v1/admin/users/{email}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	email := model.Email(mux.Vars(r)["email"])

	user, err := h.directory.GetByEmail(r.Context(), email)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.UserFromModel(user))
}

// Approve handles POST /api/v1/admin/users/{email}/approve
func (h *UserHandler) Approve(w http.ResponseWriter, r *http.Request) {
	email := model.Email(mux.Vars(r)["email"])

	if err := h.directory.Approve(r.Context(), middleware.ActorFor(r.Context()), email); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Update handles PATCH /api/v1/admin/users/{email}
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	email := model.Email(mux.Vars(r)["email"])

	var req request.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	upd := directory.Update{
		IngameName: req.IngameName,
		Alliance:   req.Alliance,
		Role:       req.Role,
		Status:     req.Status,
	}
	if req.PlayerID != nil {
		pid := model.PlayerID(*req.PlayerID)
		upd.PlayerID = &pid
	}

	if err := h.directory.UpdateUser(r.Context(), middleware.ActorFor(r.Context()), email, upd); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Delete handles DELETE /api/v1/admin/users/{email}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	email := model.Email(mux.Vars(r)["email"])

	if err := h.directory.Delete(r.Context(), middleware.ActorFor(r.Context()), email); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// CompleteProfile handles PUT /api/v1/users/me/profile
func (h *UserHandler) CompleteProfile(w http.ResponseWriter, r *http.Request) {
	var req request.CompleteProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.IngameName == "" {
		WriteError(w, NewInvalidRequestError("ingame_name is required"))
		return
	}
	if req.Alliance == "" {
		WriteError(w, NewInvalidRequestError("alliance is required"))
		return
	}

	user := middleware.MustGetUser(r.Context())
	actor := model.Actor{Email: user.Email, Role: user.Role}
	if err := h.directory.CompleteProfile(r.Context(), actor, user.Email, req.IngameName, req.Alliance); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Promote handles POST /api/v1/users/me/submit.
// An external signup fills in its profile and queues for admin approval.
func (h *UserHandler) Promote(w http.ResponseWriter, r *http.Request) {
	var req request.PromoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}
	if req.IngameName == "" {
		WriteError(w, NewInvalidRequestError("ingame_name is required"))
		return
	}
	if req.Alliance == "" {
		WriteError(w, NewInvalidRequestError("alliance is required"))
		return
	}

	user := middleware.MustGetUser(r.Context())
	if err := h.directory.PromoteToPending(r.Context(), user.Email, model.PlayerID(req.PlayerID), req.IngameName, req.Alliance); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
