package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/frostgate/svscoord/internal/api/middleware"
	"github.com/frostgate/svscoord/internal/api/request"
	"github.com/frostgate/svscoord/internal/api/response"
	"github.com/frostgate/svscoord/internal/model"
	"github.com/frostgate/svscoord/internal/services/invite"
)

// InviteHandler handles invite management endpoints
type InviteHandler struct {
	invites *invite.Controller
}

// NewInviteHandler creates a new invite handler
func NewInviteHandler(invites *invite.Controller) *InviteHandler {
	return &InviteHandler{
		invites: invites,
	}
}

// Create handles POST /api/v1/admin/invites
func (h *InviteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Email == "" {
		WriteError(w, NewInvalidRequestError("email is required"))
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

	actor := middleware.ActorFor(r.Context())
	created, err := h.invites.Create(r.Context(), actor, model.Email(req.Email), model.PlayerID(req.PlayerID), req.IngameName, req.Alliance)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.InviteFromModel(created))
}

// Cancel handles DELETE /api/v1/admin/invites/{email}
func (h *InviteHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	email := model.Email(mux.Vars(r)["email"])

	if err := h.invites.Cancel(r.Context(), middleware.ActorFor(r.Context()), email); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// ListActive handles GET /api/v1/admin/invites
func (h *InviteHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	active, err := h.invites.ListActive(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.InvitesFromModel(active))
}
